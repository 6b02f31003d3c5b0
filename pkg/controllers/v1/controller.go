// Package v1 implements the v1 API for expenses and recurring expenses.
package v1

import (
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/auth"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/httputil"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/ledgerbook/backend/pkg/recurring"
	"gorm.io/gorm"
)

type Controller struct {
	DB     *gorm.DB
	Engine *recurring.Engine

	// Now is used to determine the month when a request does not specify one.
	// Defaults to time.Now.
	Now func() time.Time
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRoot)
		r.GET("", GetRoot)
		r.OPTIONS("/categories", OptionsCategories)
		r.GET("/categories", GetCategories)
	}

	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterRecurringExpenseRoutes(r.Group("/recurring-expenses"))
}

// currentMonth returns the month the request is made for.
func (co Controller) currentMonth(c *gin.Context) (types.Month, error) {
	now := time.Now
	if co.Now != nil {
		now = co.Now
	}

	return httputil.MonthFromQuery(c, now())
}

// requestOwner returns the owner of the request. If there is none,
// the request is aborted.
func requestOwner(c *gin.Context) (uuid.UUID, bool) {
	id, ok := auth.Owner(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{
			Error: auth.ErrTokenMissing.Error(),
		})
	}

	return id, ok
}

// patch copies the fields with the given names from the update to the
// resource. All fields must exist on the resource.
func patch(resource, update any, fields []string) error {
	dst := reflect.ValueOf(resource).Elem()
	src := reflect.ValueOf(update)

	for _, name := range fields {
		field := dst.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return fieldError(name)
		}

		field.Set(src.FieldByName(name))
	}

	return nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Expenses          string `json:"expenses" example:"https://example.com/api/v1/expenses"`                    // URL of the expense list endpoint
	RecurringExpenses string `json:"recurringExpenses" example:"https://example.com/api/v1/recurring-expenses"` // URL of the recurring expense list endpoint
	Categories        string `json:"categories" example:"https://example.com/api/v1/categories"`                // URL of the category list endpoint
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Expenses:          url + "/v1/expenses",
			RecurringExpenses: url + "/v1/recurring-expenses",
			Categories:        url + "/v1/categories",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type CategoryListResponse struct {
	Data []models.Category `json:"data"` // All expense categories in display order
}

// @Summary		Get categories
// @Description	Returns the expense categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoryListResponse{Data: models.Categories})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}
