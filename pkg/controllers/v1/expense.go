package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/pkg/httputil"
	"github.com/ledgerbook/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenses)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// expense returns the expense with the ID in the path
func (co Controller) expense(c *gin.Context, owner uuid.UUID) (models.Expense, error) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		return models.Expense{}, err
	}

	var expense models.Expense
	err = co.DB.WithContext(c.Request.Context()).Where("owner_id = ? AND id = ?", owner, id).First(&expense).Error
	return expense, err
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	_, err := co.expense(c, owner)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *message(c, err),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get expenses of a month
// @Description	Returns all expenses of a month, newest first. Expenses for recurring expenses active in the month are created if they do not exist yet.
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseListResponse
// @Failure		400		{object}	ExpenseListResponse
// @Failure		500		{object}	ExpenseListResponse
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month"
// @Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	month, err := co.currentMonth(c)
	if err != nil {
		c.JSON(status(err), ExpenseListResponse{
			Error: message(c, err),
		})
		return
	}

	expenses, err := co.Engine.GetInstancesForMonth(c.Request.Context(), owner, month)

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	// Expenses that could be read are returned with the error
	if err != nil {
		c.JSON(status(err), ExpenseListResponse{
			Error: message(c, err),
			Month: month,
			Data:  data,
		})
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Month: month,
		Data:  data,
	})
}

// @Summary		Create expense
// @Description	Creates a one-off expense
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	var editable ExpenseEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	expense := editable.model(owner)
	err = co.DB.WithContext(c.Request.Context()).Create(&expense).Error
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusCreated, ExpenseResponse{Data: &data})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Failure		500	{object}	ExpenseResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	expense, err := co.expense(c, owner)
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Update expense
// @Description	Updates an existing expense. Only values to be updated need to be specified. Expenses of recurring expenses can only be moved within their month.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	expense, err := co.expense(c, owner)
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	var update ExpenseEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	month := expense.Month
	err = patch(&expense, update, updateFields)
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	// The month is the slot of the recurring expense
	if expense.RecurringExpenseID != nil && slices.Contains(updateFields, "Date") && !month.Contains(expense.Date) {
		c.JSON(status(errRecurringExpenseMonth), ExpenseResponse{
			Error: message(c, errRecurringExpenseMonth),
		})
		return
	}

	err = co.DB.WithContext(c.Request.Context()).Save(&expense).Error
	if err != nil {
		c.JSON(status(err), ExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Delete expense
// @Description	Deletes an expense. Deleting an expense of a recurring expense stops the recurring expense: its expenses in later months are deleted and no new ones are created.
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *message(c, err),
		})
		return
	}

	err = co.Engine.DeleteInstance(c.Request.Context(), owner, id)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *message(c, err),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
