package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	v1 "github.com/ledgerbook/backend/pkg/controllers/v1"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/ledgerbook/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRecurringExpensesCreate() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")

	assert.True(suite.T(), r.Data.IsActive)
	assert.Nil(suite.T(), r.Data.LastMonth, "indefinite recurring expenses have no last month")
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/recurring-expenses/%s", r.Data.ID), r.Data.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop", r.Data.ID), r.Data.Links.Stop)

	// The expense of the viewed month exists right away
	var expense models.Expense
	err := suite.db.Where("recurring_expense_id = ?", r.Data.ID).First(&expense).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), types.NewMonth(2026, 1), expense.Month)
	assert.Equal(suite.T(), models.ExpenseRecurring, expense.Type)
}

func (suite *TestSuiteStandard) TestRecurringExpensesCreateDefaultMonth() {
	// The controller's clock is in February 2026
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{
		ExpenseFields: awsHosting(),
		StartDate:     time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	}, "")

	e, ok := suite.instance(suite.T(), r.Data.ID, "2026-02")
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), e.Date)
}

func (suite *TestSuiteStandard) TestRecurringExpensesCreateLastMonth() {
	months := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{
		ExpenseFields:  awsHosting(),
		StartDate:      time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC),
		DurationType:   models.DurationMonths,
		DurationMonths: intPtr(3),
	}, "2026-11")
	require.NotNil(suite.T(), months.Data.LastMonth)
	assert.Equal(suite.T(), types.NewMonth(2027, 1), *months.Data.LastMonth)

	until := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{
		ExpenseFields: awsHosting(),
		StartDate:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		DurationType:  models.DurationUntilDate,
		EndDate:       timePtr(time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC)),
	}, "2026-01")
	require.NotNil(suite.T(), until.Data.LastMonth)
	assert.Equal(suite.T(), types.NewMonth(2026, 6), *until.Data.LastMonth)
	assert.Equal(suite.T(), time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *until.Data.EndDate, "the end date is normalized to the first of the month")
}

// TestRecurringExpensesCreateNotActive verifies that no expense is created when
// the recurring expense starts after the viewed month.
func (suite *TestSuiteStandard) TestRecurringExpensesCreateNotActive() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{
		ExpenseFields: awsHosting(),
		StartDate:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}, "2026-02")

	var count int64
	suite.db.Model(&models.Expense{}).Where("recurring_expense_id = ?", r.Data.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestRecurringExpensesCreateInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"Broken JSON", `{ "title": 2 `},
		{"Wrong type", `{ "durationMonths": "twelve" }`},
		{"Start day 29", map[string]any{"title": "AWS", "amountOriginal": "120", "currencyOriginal": "GBP", "category": "Other", "startDate": "2026-01-29T00:00:00Z", "durationType": "indefinite"}},
		{"Amount zero", map[string]any{"title": "AWS", "amountOriginal": "0", "currencyOriginal": "GBP", "category": "Other", "startDate": "2026-01-01T00:00:00Z", "durationType": "indefinite"}},
		{"Unknown currency", map[string]any{"title": "AWS", "amountOriginal": "1", "currencyOriginal": "QQQ", "category": "Other", "startDate": "2026-01-01T00:00:00Z", "durationType": "indefinite"}},
		{"Unknown category", map[string]any{"title": "AWS", "amountOriginal": "1", "currencyOriginal": "GBP", "category": "Groceries", "startDate": "2026-01-01T00:00:00Z", "durationType": "indefinite"}},
		{"Months without count", map[string]any{"title": "AWS", "amountOriginal": "1", "currencyOriginal": "GBP", "category": "Other", "startDate": "2026-01-01T00:00:00Z", "durationType": "months"}},
		{"Months zero", map[string]any{"title": "AWS", "amountOriginal": "1", "currencyOriginal": "GBP", "category": "Other", "startDate": "2026-01-01T00:00:00Z", "durationType": "months", "durationMonths": 0}},
		{"End before start", map[string]any{"title": "AWS", "amountOriginal": "1", "currencyOriginal": "GBP", "category": "Other", "startDate": "2026-03-01T00:00:00Z", "durationType": "until_date", "endDate": "2026-02-01T00:00:00Z"}},
		{"Unknown duration type", map[string]any{"title": "AWS", "amountOriginal": "1", "currencyOriginal": "GBP", "category": "Other", "startDate": "2026-01-01T00:00:00Z", "durationType": "forever"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.request(t, http.MethodPost, "http://example.com/v1/recurring-expenses", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var response v1.RecurringExpenseResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.NotNil(t, response.Error)
			assert.Nil(t, response.Data)
		})
	}

	var count int64
	suite.db.Model(&models.RecurringExpense{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "no recurring expense may be saved for invalid data")
}

func (suite *TestSuiteStandard) TestRecurringExpensesInvalidMonth() {
	recorder := suite.request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-expenses?month=February", map[string]any{})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecurringExpensesGetSingle() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing", r.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No recurring expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH No recurring expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"PATCH Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodPatch},
		{"OPTIONS Existing", r.Data.ID.String(), http.StatusNoContent, http.MethodOptions},
		{"OPTIONS No recurring expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodOptions},
		{"OPTIONS Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodOptions},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.request(t, tt.method, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s", tt.id), `{ "notes": "x" }`)
			test.AssertHTTPStatus(t, &recorder, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH", recorder.Header().Get("allow"))
			}
		})
	}

	recorder := suite.request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop", r.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestRecurringExpensesGetFilter() {
	aws := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")

	fields := awsHosting()
	fields.Title = "Figma"
	fields.Category = models.CategorySoftware
	figma := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{ExpenseFields: fields}, "2026-01")

	fields.Title = "AWS Backup"
	fields.Category = models.CategoryHosting
	backup := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{ExpenseFields: fields}, "2026-01")

	recorder := suite.request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop?month=2026-01", backup.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	tests := []struct {
		name  string
		query string
		want  []uuid.UUID
	}{
		{"All", "", []uuid.UUID{backup.Data.ID, figma.Data.ID, aws.Data.ID}},
		{"Active", "active=true", []uuid.UUID{figma.Data.ID, aws.Data.ID}},
		{"Stopped", "active=false", []uuid.UUID{backup.Data.ID}},
		{"Category", "category=" + url.QueryEscape(string(models.CategoryHosting)), []uuid.UUID{backup.Data.ID, aws.Data.ID}},
		{"Title exact", "title=Figma", []uuid.UUID{figma.Data.ID}},
		{"Title glob", "title=" + url.QueryEscape("AWS*"), []uuid.UUID{backup.Data.ID, aws.Data.ID}},
		{"Title and active", "active=true&title=" + url.QueryEscape("AWS*"), []uuid.UUID{aws.Data.ID}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.request(t, http.MethodGet, "http://example.com/v1/recurring-expenses?"+tt.query, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.RecurringExpenseListResponse
			test.DecodeResponse(t, &recorder, &response)

			ids := make([]uuid.UUID, 0, len(response.Data))
			for _, r := range response.Data {
				ids = append(ids, r.ID)
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}

	recorder = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/recurring-expenses?active=maybe", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

// TestRecurringExpensesUpdate follows a price change of a subscription: the
// change applies to the viewed month and all later ones, earlier months
// keep the old amount.
func (suite *TestSuiteStandard) TestRecurringExpensesUpdate() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")

	// Look at the next months so that their expenses exist
	for _, month := range []string{"2026-02", "2026-03", "2026-04"} {
		_, ok := suite.instance(suite.T(), r.Data.ID, month)
		require.True(suite.T(), ok, "expense for %s missing", month)
	}
	march, _ := suite.instance(suite.T(), r.Data.ID, "2026-03")

	recorder := suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s?month=2026-02", r.Data.ID), map[string]any{
		"amountOriginal": "150",
		"amountGbp":      "150",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.RecurringExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(updated.Data.AmountOriginal))
	assert.Equal(suite.T(), "AWS Hosting", updated.Data.Title, "fields not in the request must not change")

	// Later months are removed
	var count int64
	suite.db.Model(&models.Expense{}).Where("recurring_expense_id = ? AND month > ?", r.Data.ID, types.NewMonth(2026, 2)).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	jan, ok := suite.instance(suite.T(), r.Data.ID, "2026-01")
	require.True(suite.T(), ok)
	assert.True(suite.T(), decimal.NewFromInt(120).Equal(jan.AmountOriginal), "earlier months keep the old amount")

	feb, ok := suite.instance(suite.T(), r.Data.ID, "2026-02")
	require.True(suite.T(), ok)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(feb.AmountOriginal), "the viewed month has the new amount")
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(feb.AmountGBP))

	newMarch, ok := suite.instance(suite.T(), r.Data.ID, "2026-03")
	require.True(suite.T(), ok)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(newMarch.AmountOriginal), "later months are recreated with the new amount")
	assert.NotEqual(suite.T(), march.ID, newMarch.ID)
}

func (suite *TestSuiteStandard) TestRecurringExpensesUpdateDuration() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")

	recorder := suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s?month=2026-01", r.Data.ID), map[string]any{
		"durationType":   "months",
		"durationMonths": 2,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.RecurringExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	require.NotNil(suite.T(), updated.Data.LastMonth)
	assert.Equal(suite.T(), types.NewMonth(2026, 2), *updated.Data.LastMonth)

	_, ok := suite.instance(suite.T(), r.Data.ID, "2026-02")
	assert.True(suite.T(), ok)

	_, ok = suite.instance(suite.T(), r.Data.ID, "2026-03")
	assert.False(suite.T(), ok, "the recurring expense ended in February")
}

// TestRecurringExpensesUpdateDurationType verifies that changing the duration
// type clears the duration fields of the previous type.
func (suite *TestSuiteStandard) TestRecurringExpensesUpdateDurationType() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{
		ExpenseFields:  awsHosting(),
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationType:   models.DurationMonths,
		DurationMonths: intPtr(2),
	}, "2026-01")
	path := fmt.Sprintf("http://example.com/v1/recurring-expenses/%s?month=2026-01", r.Data.ID)

	recorder := suite.request(suite.T(), http.MethodPatch, path, map[string]any{"durationType": "indefinite"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.RecurringExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), models.DurationIndefinite, updated.Data.DurationType)
	assert.Nil(suite.T(), updated.Data.DurationMonths)
	assert.Nil(suite.T(), updated.Data.EndDate)
	assert.Nil(suite.T(), updated.Data.LastMonth)

	_, ok := suite.instance(suite.T(), r.Data.ID, "2026-06")
	assert.True(suite.T(), ok, "the recurring expense does not end anymore")

	recorder = suite.request(suite.T(), http.MethodPatch, path, map[string]any{
		"durationType": "until_date",
		"endDate":      "2026-03-01T00:00:00Z",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Nil(suite.T(), updated.Data.DurationMonths)
	require.NotNil(suite.T(), updated.Data.LastMonth)
	assert.Equal(suite.T(), types.NewMonth(2026, 3), *updated.Data.LastMonth)

	recorder = suite.request(suite.T(), http.MethodPatch, path, map[string]any{
		"durationType":   "months",
		"durationMonths": 4,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Nil(suite.T(), updated.Data.EndDate, "the end date of until_date is cleared")
	require.NotNil(suite.T(), updated.Data.DurationMonths)
	assert.Equal(suite.T(), 4, *updated.Data.DurationMonths)

	// Fields sent with the request are kept and validated
	recorder = suite.request(suite.T(), http.MethodPatch, path, map[string]any{
		"durationType":   "indefinite",
		"durationMonths": 3,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecurringExpensesUpdateFails() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")
	path := fmt.Sprintf("http://example.com/v1/recurring-expenses/%s", r.Data.ID)

	tests := []struct {
		name string
		body any
	}{
		{"Start date", map[string]any{"startDate": "2026-03-01T00:00:00Z"}},
		{"Empty body", ""},
		{"Broken JSON", `{ "notes": `},
		{"Negative amount", map[string]any{"amountOriginal": "-5"}},
		{"Months without count", map[string]any{"durationType": "months"}},
		{"Unknown category", map[string]any{"category": "Groceries"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.request(t, http.MethodPatch, path, tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}

	// Nothing changed
	recorder := suite.request(suite.T(), http.MethodGet, path, "")
	var response v1.RecurringExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), r.Data.StartDate, response.Data.StartDate)
	assert.Equal(suite.T(), models.CategoryHosting, response.Data.Category)
}

func (suite *TestSuiteStandard) TestRecurringExpensesUpdateStopped() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")

	recorder := suite.request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop?month=2026-01", r.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s", r.Data.ID), map[string]any{"notes": "still running?"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestRecurringExpensesStop() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")
	for _, month := range []string{"2026-02", "2026-03"} {
		suite.expenses(suite.T(), month)
	}

	recorder := suite.request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop", r.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var stopped v1.RecurringExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &stopped)
	assert.False(suite.T(), stopped.Data.IsActive)

	// The controller's clock is in February 2026
	_, ok := suite.instance(suite.T(), r.Data.ID, "2026-02")
	assert.True(suite.T(), ok, "the expense of the current month is kept")

	_, ok = suite.instance(suite.T(), r.Data.ID, "2026-03")
	assert.False(suite.T(), ok, "later expenses are removed and not created again")

	// Stopping again succeeds
	recorder = suite.request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop", r.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestRecurringExpensesStopFails() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Not found", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestRecurringExpensesDBClosed() {
	r := suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{}, "2026-01")
	suite.CloseDB()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"List", http.MethodGet, "http://example.com/v1/recurring-expenses", ""},
		{"Get", http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s", r.Data.ID), ""},
		{"Stop", http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring-expenses/%s/stop", r.Data.ID), ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
		})
	}
}
