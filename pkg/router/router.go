package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/api"
	"github.com/ledgerbook/backend/internal/auth"
	"github.com/ledgerbook/backend/internal/config"
	"github.com/ledgerbook/backend/pkg/controllers/healthz"
	"github.com/ledgerbook/backend/pkg/controllers/root"
	v1 "github.com/ledgerbook/backend/pkg/controllers/v1"
	"github.com/ledgerbook/backend/pkg/controllers/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var appVersion = "0.0.0"

type methodNotAllowed struct {
	Error string `json:"error"`
}

// Config sets up the router and its middlewares.
//
// The returned function unregisters the Prometheus metrics and must be
// called before another router is configured in the same process.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, methodNotAllowed{
			Error: "This HTTP method is not allowed for the endpoint you called",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", cfg.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", cfg.APIURL.String()).Str("Host", cfg.APIURL.Host).Str("Path", cfg.APIURL.Path).Msg("Router")
	log.Info().Str("version", appVersion).Msg("Router")

	api.SwaggerInfo.Host = cfg.APIURL.Host
	api.SwaggerInfo.BasePath = cfg.APIURL.Path
	api.SwaggerInfo.Title = "Ledgerbook"
	api.SwaggerInfo.Version = appVersion
	api.SwaggerInfo.Description = "The backend for Ledgerbook, an expense tracker with recurring expenses that are added to every month they are active in."

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, nil, err
	}

	return r, unregisterPrometheusMetrics, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup, cfg config.Config) {
	root.RegisterRoutes(group.Group(""))
	version.RegisterRoutes(group.Group("/version"), appVersion)
	healthz.RegisterRoutes(group.Group("/healthz"), co.DB)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	v1Group := group.Group("/v1")
	v1Group.Use(MetricsMiddleware(), auth.Middleware(auth.Options{
		Secret:   []byte(cfg.Auth.Secret),
		Disabled: cfg.Auth.Disabled,
		DevOwner: cfg.Auth.DevOwner,
	}))
	co.RegisterRoutes(v1Group)
}
