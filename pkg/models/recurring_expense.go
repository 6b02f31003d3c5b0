package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseFields are the financial fields shared by recurring expenses and expenses.
//
// Expenses get a copy of these fields when they are created for a recurring expense,
// they never reference the recurring expense's values at read time.
type ExpenseFields struct {
	Title            string          `json:"title" example:"AWS Hosting"`
	AmountOriginal   decimal.Decimal `json:"amountOriginal" gorm:"type:DECIMAL(20,8)" example:"120"` // Amount in the original currency
	CurrencyOriginal string          `json:"currencyOriginal" gorm:"size:3" example:"GBP"`           // ISO 4217 code of the original currency
	AmountGBP        decimal.Decimal `json:"amountGbp" gorm:"type:DECIMAL(20,8)" example:"120"`      // Amount converted to GBP at ConversionDate
	ExchangeRate     decimal.Decimal `json:"exchangeRate" gorm:"type:DECIMAL(20,8)" example:"1"`     // Rate used for the conversion
	ConversionDate   *time.Time      `json:"conversionDate" example:"2026-02-01T00:00:00Z"`          // Day the conversion was looked up
	Category         Category        `json:"category" example:"Hosting & Infrastructure"`            // One of the expense categories
	Notes            string          `json:"notes" example:"Production account"`                     // Free text
}

// normalize trims strings and enforces the field constraints.
func (f *ExpenseFields) normalize() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Notes = strings.TrimSpace(f.Notes)

	if !f.AmountOriginal.IsPositive() {
		return ErrAmountNotPositive
	}

	if f.ExchangeRate.IsNegative() {
		return ErrExchangeRateNegative
	}

	code, err := ValidateCurrency(f.CurrencyOriginal)
	if err != nil {
		return err
	}
	f.CurrencyOriginal = code

	if !f.Category.Valid() {
		return ErrCategoryInvalid
	}

	if f.ConversionDate != nil {
		d := f.ConversionDate.In(time.UTC)
		f.ConversionDate = &d
	}

	return nil
}

// RecurringExpense is the template that expenses are created from
// for every month in which it is active.
type RecurringExpense struct {
	DefaultModel
	OwnerID uuid.UUID `json:"ownerId" gorm:"index" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // The user the recurring expense belongs to
	ExpenseFields
	StartDate      time.Time    `json:"startDate" example:"2026-02-01T00:00:00Z"` // The first occurrence. The day of month is used for all expenses
	DurationType   DurationType `json:"durationType" example:"indefinite"`        // How long the recurring expense runs
	DurationMonths *int         `json:"durationMonths" example:"12"`              // Number of months, only for duration type 'months'
	EndDate        *time.Time   `json:"endDate" example:"2026-12-01T00:00:00Z"`   // Last month, only for duration type 'until_date'. The day is always 1
	IsActive       bool         `json:"isActive" gorm:"index" example:"true"`     // Stopped recurring expenses never become active again
}

func (r RecurringExpense) Self() string {
	return "Recurring Expense"
}

// AfterFind updates the timestamps and dates to use UTC.
func (r *RecurringExpense) AfterFind(tx *gorm.DB) (err error) {
	err = r.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	r.StartDate = r.StartDate.In(time.UTC)
	if r.EndDate != nil {
		e := r.EndDate.In(time.UTC)
		r.EndDate = &e
	}

	return nil
}

// BeforeSave validates the recurring expense. Malformed duration fields are
// rejected, never coerced.
func (r *RecurringExpense) BeforeSave(_ *gorm.DB) error {
	return r.Validate()
}

// Validate checks the recurring expense and normalizes its dates and strings.
func (r *RecurringExpense) Validate() error {
	if r.OwnerID == uuid.Nil {
		return ErrRecurringExpenseOwnerNotSet
	}

	if err := r.ExpenseFields.normalize(); err != nil {
		return err
	}

	if r.StartDate.IsZero() {
		return ErrStartDateMissing
	}

	year, month, day := r.StartDate.Date()
	if day < 1 || day > 28 {
		return ErrStartDayOutOfRange
	}
	r.StartDate = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	switch r.DurationType {
	case DurationIndefinite:
		if r.DurationMonths != nil || r.EndDate != nil {
			return ErrDurationFieldsInconsistent
		}
	case DurationMonths:
		if r.EndDate != nil {
			return ErrDurationFieldsInconsistent
		}

		if r.DurationMonths == nil || *r.DurationMonths < 1 {
			return ErrDurationMonthsNotPositive
		}
	case DurationUntilDate:
		if r.DurationMonths != nil {
			return ErrDurationFieldsInconsistent
		}

		if r.EndDate == nil || r.EndDate.IsZero() {
			return ErrEndDateMissing
		}

		end := types.MonthOf(*r.EndDate)
		if end.Before(r.StartMonth()) {
			return ErrEndBeforeStart
		}

		endDate := end.FirstDay()
		r.EndDate = &endDate
	default:
		return ErrDurationTypeInvalid
	}

	return nil
}

// StartMonth returns the month of the first occurrence.
func (r RecurringExpense) StartMonth() types.Month {
	return types.MonthOf(r.StartDate)
}

// StartDay returns the day of month that every expense is dated on.
func (r RecurringExpense) StartDay() int {
	return r.StartDate.Day()
}
