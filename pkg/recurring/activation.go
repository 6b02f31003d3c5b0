// Package recurring creates expenses for recurring expenses and keeps
// them consistent when recurring expenses are changed or stopped.
package recurring

import (
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/models"
)

// IsActive reports whether the recurring expense has an occurrence in month.
//
// Stopped recurring expenses and recurring expenses with missing duration
// fields are never active.
func IsActive(r models.RecurringExpense, month types.Month) bool {
	if !r.IsActive {
		return false
	}

	key := month.Key()
	start := r.StartMonth().Key()
	if key < start {
		return false
	}

	last, ok := lastMonthKey(r, start)
	if !ok {
		return false
	}

	return key <= last
}

// lastMonthKey returns the key of the last month the recurring expense is active in.
// For indefinite recurring expenses, this is unbounded.
func lastMonthKey(r models.RecurringExpense, start int) (int, bool) {
	switch r.DurationType {
	case models.DurationIndefinite:
		return int(^uint(0) >> 1), true
	case models.DurationMonths:
		if r.DurationMonths == nil || *r.DurationMonths < 1 {
			return 0, false
		}
		return start + *r.DurationMonths - 1, true
	case models.DurationUntilDate:
		if r.EndDate == nil || r.EndDate.IsZero() {
			return 0, false
		}
		return types.MonthOf(*r.EndDate).Key(), true
	}

	return 0, false
}

// LastMonth returns the last month the recurring expense is active in.
// ok is false for indefinite and malformed recurring expenses.
func LastMonth(r models.RecurringExpense) (month types.Month, ok bool) {
	if r.DurationType == models.DurationIndefinite {
		return types.Month{}, false
	}

	last, ok := lastMonthKey(r, r.StartMonth().Key())
	if !ok {
		return types.Month{}, false
	}

	return types.MonthFromKey(last), true
}
