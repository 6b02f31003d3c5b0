package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/models"
)

type ExpenseEditable struct {
	models.ExpenseFields
	Date time.Time `json:"date" example:"2026-02-14T00:00:00Z"` // Day of the expense. The time is ignored. Defaults to today
}

// model returns the database resource for a new one-off expense
func (editable ExpenseEditable) model(owner uuid.UUID) models.Expense {
	return models.Expense{
		OwnerID:       owner,
		ExpenseFields: editable.ExpenseFields,
		Date:          editable.Date,
		Type:          models.ExpenseOneOff,
	}
}

type ExpenseLinks struct {
	Self             string `json:"self" example:"https://example.com/api/v1/expenses/d430d7c3-d14c-4712-9336-ee56965a6673"`                       // The expense itself
	RecurringExpense string `json:"recurringExpense" example:"https://example.com/api/v1/recurring-expenses/7b8d2f2e-06e3-4e54-9a56-3a0a5c9bca47"` // The recurring expense the expense was created for. Empty for one-off expenses
}

// Expense is the representation of an Expense in API v1.
type Expense struct {
	models.DefaultModel
	models.ExpenseFields
	Date               time.Time          `json:"date" example:"2026-02-14T00:00:00Z"`                               // Day of the expense
	Month              types.Month        `json:"month" example:"2026-02"`                                           // Month of the expense
	Type               models.ExpenseType `json:"type" example:"recurring"`                                          // one_off or recurring
	RecurringExpenseID *uuid.UUID         `json:"recurringExpenseId" example:"7b8d2f2e-06e3-4e54-9a56-3a0a5c9bca47"` // The recurring expense the expense was created for
	Links              ExpenseLinks       `json:"links"`
}

// newExpense returns the API v1 representation of the resource
func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	links := ExpenseLinks{
		Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
	}

	if model.RecurringExpenseID != nil {
		links.RecurringExpense = fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.RecurringExpenseID)
	}

	return Expense{
		DefaultModel:       model.DefaultModel,
		ExpenseFields:      model.ExpenseFields,
		Date:               model.Date,
		Month:              model.Month,
		Type:               model.Type,
		RecurringExpenseID: model.RecurringExpenseID,
		Links:              links,
	}
}

type ExpenseResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Expense `json:"data"`                                                          // The expense data, if the request was successful
}

type ExpenseListResponse struct {
	Error *string     `json:"error" example:"1 recurring expense(s) could not be added to 2026-02: an error occurred on the server during your request"` // The error, if any occurred. Expenses that could be read are still returned
	Month types.Month `json:"month" example:"2026-02"`                                                                                                   // The month of the expenses
	Data  []Expense   `json:"data"`                                                                                                                      // List of expenses, newest first
}
