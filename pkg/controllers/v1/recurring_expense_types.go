package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/ledgerbook/backend/pkg/recurring"
)

type RecurringExpenseEditable struct {
	models.ExpenseFields
	StartDate      time.Time           `json:"startDate" example:"2026-02-01T00:00:00Z"` // The first occurrence. The day must be between 1 and 28 and is used for all expenses. Cannot be changed
	DurationType   models.DurationType `json:"durationType" example:"indefinite"`        // indefinite, months or until_date
	DurationMonths *int                `json:"durationMonths" example:"12"`              // Number of months. Only for duration type months
	EndDate        *time.Time          `json:"endDate" example:"2026-12-01T00:00:00Z"`   // Last month. Only for duration type until_date
}

// model returns the database resource for the API representation of the editable fields
func (editable RecurringExpenseEditable) model() models.RecurringExpense {
	return models.RecurringExpense{
		ExpenseFields:  editable.ExpenseFields,
		StartDate:      editable.StartDate,
		DurationType:   editable.DurationType,
		DurationMonths: editable.DurationMonths,
		EndDate:        editable.EndDate,
	}
}

type RecurringExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring-expenses/7b8d2f2e-06e3-4e54-9a56-3a0a5c9bca47"`      // The recurring expense itself
	Stop string `json:"stop" example:"https://example.com/api/v1/recurring-expenses/7b8d2f2e-06e3-4e54-9a56-3a0a5c9bca47/stop"` // Stops the recurring expense
}

// RecurringExpense is the representation of a RecurringExpense in API v1.
type RecurringExpense struct {
	models.DefaultModel
	RecurringExpenseEditable
	IsActive  bool                  `json:"isActive" example:"true"`     // Stopped recurring expenses do not create expenses anymore
	LastMonth *types.Month          `json:"lastMonth" example:"2026-12"` // The last month with an expense. Not set for indefinite recurring expenses
	Links     RecurringExpenseLinks `json:"links"`
}

// newRecurringExpense returns the API v1 representation of the resource
func newRecurringExpense(c *gin.Context, model models.RecurringExpense) RecurringExpense {
	url := c.GetString(string(models.DBContextURL))

	r := RecurringExpense{
		DefaultModel: model.DefaultModel,
		RecurringExpenseEditable: RecurringExpenseEditable{
			ExpenseFields:  model.ExpenseFields,
			StartDate:      model.StartDate,
			DurationType:   model.DurationType,
			DurationMonths: model.DurationMonths,
			EndDate:        model.EndDate,
		},
		IsActive: model.IsActive,
		Links: RecurringExpenseLinks{
			Self: fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.ID),
			Stop: fmt.Sprintf("%s/v1/recurring-expenses/%s/stop", url, model.ID),
		},
	}

	if last, ok := recurring.LastMonth(model); ok {
		r.LastMonth = &last
	}

	return r
}

type RecurringExpenseResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *RecurringExpense `json:"data"`                                                          // The recurring expense data, if the request was successful
}

type RecurringExpenseListResponse struct {
	Error *string            `json:"error" example:"the query string contains unparseable data. Please check the values"` // The error, if any occurred
	Data  []RecurringExpense `json:"data"`                                                                                // List of recurring expenses, newest first
}

type RecurringExpenseQueryFilter struct {
	IsActive bool            `form:"active"`                    // Only active or only stopped recurring expenses
	Category models.Category `form:"category"`                  // Exact category
	Title    string          `form:"title" filterField:"false"` // Glob pattern for the title, e.g. "AWS*"
}

// model returns the database resource used for filtering
func (f RecurringExpenseQueryFilter) model() models.RecurringExpense {
	return models.RecurringExpense{
		ExpenseFields: models.ExpenseFields{
			Category: f.Category,
		},
		IsActive: f.IsActive,
	}
}
