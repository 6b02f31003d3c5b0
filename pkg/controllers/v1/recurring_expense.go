package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/pkg/httputil"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/ledgerbook/backend/pkg/recurring"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterRecurringExpenseRoutes registers the routes for recurring expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterRecurringExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringExpenses)
		r.GET("", co.GetRecurringExpenses)
		r.POST("", co.CreateRecurringExpense)
	}

	// Recurring expense with ID
	{
		r.OPTIONS("/:id", co.OptionsRecurringExpenseDetail)
		r.GET("/:id", co.GetRecurringExpense)
		r.PATCH("/:id", co.UpdateRecurringExpense)
		r.OPTIONS("/:id/stop", co.OptionsRecurringExpenseStop)
		r.POST("/:id/stop", co.StopRecurringExpense)
	}
}

// recurringExpense returns the recurring expense with the ID in the path
func (co Controller) recurringExpense(c *gin.Context) (models.RecurringExpense, error) {
	owner, _ := requestOwner(c)

	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		return models.RecurringExpense{}, err
	}

	return co.Engine.RecurringExpense(c.Request.Context(), owner, id)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Expenses
// @Success		204
// @Router			/v1/recurring-expenses [options]
func OptionsRecurringExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring-expenses/{id} [options]
func (co Controller) OptionsRecurringExpenseDetail(c *gin.Context) {
	if _, ok := requestOwner(c); !ok {
		return
	}

	_, err := co.recurringExpense(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *message(c, err),
		})
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring-expenses/{id}/stop [options]
func (co Controller) OptionsRecurringExpenseStop(c *gin.Context) {
	if _, ok := requestOwner(c); !ok {
		return
	}

	_, err := co.recurringExpense(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *message(c, err),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Get recurring expenses
// @Description	Returns a list of recurring expenses, newest first
// @Tags			Recurring Expenses
// @Produce		json
// @Success		200			{object}	RecurringExpenseListResponse
// @Failure		400			{object}	RecurringExpenseListResponse
// @Failure		500			{object}	RecurringExpenseListResponse
// @Param			active		query		bool	false	"Filter by activity state"
// @Param			category	query		string	false	"Filter by category"
// @Param			title		query		string	false	"Filter by title. Supports * as wildcard"
// @Router			/v1/recurring-expenses [get]
func (co Controller) GetRecurringExpenses(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	var filter RecurringExpenseQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(status(httputil.ErrInvalidQueryString), RecurringExpenseListResponse{
			Error: message(c, httputil.ErrInvalidQueryString),
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var recurringExpenses []models.RecurringExpense
	err := co.DB.
		WithContext(c.Request.Context()).
		Where("owner_id = ?", owner).
		Where(filter.model(), queryFields...).
		Order("created_at DESC").
		Find(&recurringExpenses).Error
	if err != nil {
		c.JSON(status(err), RecurringExpenseListResponse{
			Error: message(c, err),
		})
		return
	}

	filterTitle := slices.Contains(setFields, "Title")

	data := make([]RecurringExpense, 0, len(recurringExpenses))
	for _, r := range recurringExpenses {
		if filterTitle && !glob.Glob(filter.Title, r.Title) {
			continue
		}

		data = append(data, newRecurringExpense(c, r))
	}

	c.JSON(http.StatusOK, RecurringExpenseListResponse{Data: data})
}

// @Summary		Create recurring expense
// @Description	Creates a recurring expense. If it is active in the month, its expense for the month is created immediately.
// @Tags			Recurring Expenses
// @Accept			json
// @Produce		json
// @Success		201					{object}	RecurringExpenseResponse
// @Failure		400					{object}	RecurringExpenseResponse
// @Failure		500					{object}	RecurringExpenseResponse
// @Param			month				query		string						false	"The month in YYYY-MM format. Defaults to the current month"
// @Param			recurringExpense	body		RecurringExpenseEditable	true	"Recurring expense"
// @Router			/v1/recurring-expenses [post]
func (co Controller) CreateRecurringExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	month, err := co.currentMonth(c)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	var editable RecurringExpenseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	r, err := co.Engine.Create(c.Request.Context(), owner, editable.model(), month)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newRecurringExpense(c, r)
	c.JSON(http.StatusCreated, RecurringExpenseResponse{Data: &data})
}

// @Summary		Get recurring expense
// @Description	Returns a specific recurring expense
// @Tags			Recurring Expenses
// @Produce		json
// @Success		200	{object}	RecurringExpenseResponse
// @Failure		400	{object}	RecurringExpenseResponse
// @Failure		404	{object}	RecurringExpenseResponse
// @Failure		500	{object}	RecurringExpenseResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring-expenses/{id} [get]
func (co Controller) GetRecurringExpense(c *gin.Context) {
	if _, ok := requestOwner(c); !ok {
		return
	}

	r, err := co.recurringExpense(c)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newRecurringExpense(c, r)
	c.JSON(http.StatusOK, RecurringExpenseResponse{Data: &data})
}

// @Summary		Update recurring expense
// @Description	Updates a recurring expense. Only values to be updated need to be specified. The expense of the month is updated, expenses of later months are recreated from the updated recurring expense. Stopped recurring expenses cannot be updated.
// @Tags			Recurring Expenses
// @Accept			json
// @Produce		json
// @Success		200					{object}	RecurringExpenseResponse
// @Failure		400					{object}	RecurringExpenseResponse
// @Failure		404					{object}	RecurringExpenseResponse
// @Failure		409					{object}	RecurringExpenseResponse
// @Failure		500					{object}	RecurringExpenseResponse
// @Param			id					path		string						true	"ID formatted as string"
// @Param			month				query		string						false	"The month in YYYY-MM format. Defaults to the current month"
// @Param			recurringExpense	body		RecurringExpenseEditable	true	"Recurring expense"
// @Router			/v1/recurring-expenses/{id} [patch]
func (co Controller) UpdateRecurringExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	month, err := co.currentMonth(c)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	r, err := co.recurringExpense(c)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, RecurringExpenseEditable{})
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	var update RecurringExpenseEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	changes := recurring.Changes{
		ExpenseFields:  r.ExpenseFields,
		DurationType:   r.DurationType,
		DurationMonths: r.DurationMonths,
		EndDate:        r.EndDate,
	}

	err = patch(&changes, update, updateFields)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	clearDurationFields(&changes, updateFields)

	r, err = co.Engine.Update(c.Request.Context(), owner, r.ID, changes, month)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newRecurringExpense(c, r)
	c.JSON(http.StatusOK, RecurringExpenseResponse{Data: &data})
}

// @Summary		Stop recurring expense
// @Description	Stops a recurring expense. Expenses after the month are deleted, the expense of the month and earlier ones are kept.
// @Tags			Recurring Expenses
// @Produce		json
// @Success		200		{object}	RecurringExpenseResponse
// @Failure		400		{object}	RecurringExpenseResponse
// @Failure		404		{object}	RecurringExpenseResponse
// @Failure		500		{object}	RecurringExpenseResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month"
// @Router			/v1/recurring-expenses/{id}/stop [post]
func (co Controller) StopRecurringExpense(c *gin.Context) {
	owner, ok := requestOwner(c)
	if !ok {
		return
	}

	month, err := co.currentMonth(c)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	r, err := co.Engine.Stop(c.Request.Context(), owner, id, month)
	if err != nil {
		c.JSON(status(err), RecurringExpenseResponse{
			Error: message(c, err),
		})
		return
	}

	data := newRecurringExpense(c, r)
	c.JSON(http.StatusOK, RecurringExpenseResponse{Data: &data})
}

// clearDurationFields unsets the stored duration fields that do not belong to a
// changed duration type, unless they are set in the request.
func clearDurationFields(changes *recurring.Changes, updateFields []string) {
	if !slices.Contains(updateFields, "DurationType") {
		return
	}

	if changes.DurationType != models.DurationMonths && !slices.Contains(updateFields, "DurationMonths") {
		changes.DurationMonths = nil
	}

	if changes.DurationType != models.DurationUntilDate && !slices.Contains(updateFields, "EndDate") {
		changes.EndDate = nil
	}
}
