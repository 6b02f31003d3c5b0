package models

import (
	"strings"

	"golang.org/x/text/currency"
)

// ValidateCurrency checks that code is an ISO 4217 currency code and
// returns it in its canonical upper case form.
func ValidateCurrency(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return "", ErrCurrencyInvalid
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", ErrCurrencyInvalid
	}

	return unit.String(), nil
}
