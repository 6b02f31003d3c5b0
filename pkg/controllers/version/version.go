// Package version reports which Ledgerbook build serves the API.
package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/pkg/httputil"
)

// buildVersion is injected by the linker into the router and handed over in RegisterRoutes.
var buildVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version string `json:"version" example:"1.4.2"` // Semantic version of the running build
}

// RegisterRoutes serves version on r.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	buildVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Lists the methods of the version endpoint in the "allow" header
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Ledgerbook version
// @Description	Returns the version of the running Ledgerbook build, useful to check which release a deployment runs
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Data: Object{
			Version: buildVersion,
		},
	})
}
