// Package root serves the entrypoint of the Ledgerbook API.
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/pkg/httputil"
	"github.com/ledgerbook/backend/pkg/models"
)

// Response lists where clients find the expense API and the service endpoints.
type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Docs    string `json:"docs" example:"https://ledgerbook.example.com/docs/index.html"` // Interactive API documentation
	Healthz string `json:"healthz" example:"https://ledgerbook.example.com/healthz"`      // Database reachability check
	Version string `json:"version" example:"https://ledgerbook.example.com/version"`      // Running Ledgerbook version
	Metrics string `json:"metrics" example:"https://ledgerbook.example.com/metrics"`      // Request and materialization metrics in Prometheus format
	V1      string `json:"v1" example:"https://ledgerbook.example.com/v1"`                // Expenses, recurring expenses and categories
}

// RegisterRoutes registers the entrypoint on r.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		API root
// @Description	Entrypoint for the Ledgerbook API. Links to the expense API and the service endpoints
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	// Links are absolute, based on the configured API URL
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Lists the methods of the entrypoint in the "allow" header
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
