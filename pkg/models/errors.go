package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrInstanceAlreadyMaterialized is returned when an expense for a recurring
	// expense already exists in the same month.
	ErrInstanceAlreadyMaterialized = errors.New("the recurring expense already has an expense in this month")
)

// ErrValidation is wrapped by every error that rejects malformed resource data.
var ErrValidation = errors.New("invalid data")

type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func (e *validationError) Unwrap() error {
	return ErrValidation
}

func invalid(msg string) error {
	return &validationError{msg: msg}
}

// Recurring expense errors
var (
	ErrDurationTypeInvalid         = invalid("the duration type must be one of 'indefinite', 'months' or 'until_date'")
	ErrDurationMonthsNotPositive   = invalid("the duration in months must be a positive integer when the duration type is 'months'")
	ErrEndDateMissing              = invalid("the end date must be set when the duration type is 'until_date'")
	ErrDurationFieldsInconsistent  = invalid("only the duration field matching the duration type may be set")
	ErrEndBeforeStart              = invalid("the end date must not be in a month before the start date")
	ErrStartDateMissing            = invalid("the start date must be set")
	ErrStartDayOutOfRange          = invalid("the day of the start date must be between 1 and 28")
	ErrRecurringExpenseOwnerNotSet = invalid("the recurring expense must belong to an owner")
)

// Expense errors
var (
	ErrAmountNotPositive    = invalid("the amount must be positive")
	ErrCategoryInvalid      = invalid("the category is not one of the supported expense categories")
	ErrCurrencyInvalid      = invalid("the currency must be a valid ISO 4217 currency code")
	ErrExpenseTypeInvalid   = invalid("the expense type must be one of 'one_off' or 'recurring'")
	ErrExpenseTypeLink      = invalid("recurring expenses must reference a recurring expense, one-off expenses must not")
	ErrExpenseOwnerNotSet   = invalid("the expense must belong to an owner")
	ErrExchangeRateNegative = invalid("the exchange rate must not be negative")
)
