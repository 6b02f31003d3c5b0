package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"gorm.io/gorm"
)

// Expense is a single, dated expense. Expenses of type recurring are created
// for a RecurringExpense, one per month in which it is active.
type Expense struct {
	DefaultModel
	OwnerID uuid.UUID `json:"ownerId" gorm:"index;uniqueIndex:idx_expense_recurring_month,priority:1" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // The user the expense belongs to
	ExpenseFields
	Date               time.Time   `json:"date" gorm:"index" example:"2026-02-01T00:00:00Z"`                                                                                  // Day the expense occurs on
	Month              types.Month `json:"month" gorm:"uniqueIndex:idx_expense_recurring_month,priority:3" example:"2026-02"`                                                 // Month of Date. Derived, always the first of the month
	Type               ExpenseType `json:"type" example:"recurring"`                                                                                                          // one_off or recurring
	RecurringExpenseID *uuid.UUID  `json:"recurringExpenseId" gorm:"index;uniqueIndex:idx_expense_recurring_month,priority:2" example:"7b8d2f2e-06e3-4e54-9a56-3a0a5c9bca47"` // The recurring expense this expense was created for
}

func (e Expense) Self() string {
	return "Expense"
}

// AfterFind updates the timestamps and the date to use UTC.
func (e *Expense) AfterFind(tx *gorm.DB) (err error) {
	err = e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	e.Date = e.Date.In(time.UTC)
	return nil
}

// BeforeSave validates the expense and derives the month from the date.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	return e.Validate()
}

// Validate checks the expense and normalizes its fields.
func (e *Expense) Validate() error {
	if e.OwnerID == uuid.Nil {
		return ErrExpenseOwnerNotSet
	}

	if err := e.ExpenseFields.normalize(); err != nil {
		return err
	}

	// Ensure that the recurring expense ID is nil and not a pointer to a nil UUID
	if e.RecurringExpenseID != nil && *e.RecurringExpenseID == uuid.Nil {
		e.RecurringExpenseID = nil
	}

	if e.Type == "" {
		e.Type = ExpenseOneOff
	}

	switch e.Type {
	case ExpenseOneOff:
		if e.RecurringExpenseID != nil {
			return ErrExpenseTypeLink
		}
	case ExpenseRecurring:
		if e.RecurringExpenseID == nil {
			return ErrExpenseTypeLink
		}
	default:
		return ErrExpenseTypeInvalid
	}

	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	year, month, day := e.Date.Date()
	e.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	e.Month = types.MonthOf(e.Date)

	return nil
}
