package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Engine creates the expenses of recurring expenses and applies changes
// to recurring expenses together with their expenses.
type Engine struct {
	db    *gorm.DB
	group singleflight.Group
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// GetInstancesForMonth returns all expenses of the owner in month, newest first.
// Missing expenses for recurring expenses active in month are created before.
func (e *Engine) GetInstancesForMonth(ctx context.Context, owner uuid.UUID, month types.Month) ([]models.Expense, error) {
	return e.Sync(ctx, owner, month)
}

// Sync creates the expenses for all recurring expenses of the owner that are
// active in month and do not have an expense in that month yet. It returns
// all expenses of the month.
//
// Concurrent syncs for the same owner and month share one run. The run is not
// cancelled with the context of the caller that started it. Syncs that
// still overlap, e.g. from different processes, are resolved by the unique
// index on expenses: the losing insert is skipped.
//
// If some expenses could not be created, the expenses of the month are
// returned together with a *SyncError.
func (e *Engine) Sync(ctx context.Context, owner uuid.UUID, month types.Month) ([]models.Expense, error) {
	key := fmt.Sprintf("%s/%s", owner, month)

	// Other callers may share the run, one of them leaving must not fail it
	runCtx := context.WithoutCancel(ctx)
	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		return e.sync(runCtx, owner, month)
	})

	// Callers sharing a run must not share the slice
	expenses, _ := v.([]models.Expense)
	return slices.Clone(expenses), err
}

func (e *Engine) sync(ctx context.Context, owner uuid.UUID, month types.Month) ([]models.Expense, error) {
	timer := prometheus.NewTimer(syncDuration)
	defer timer.ObserveDuration()

	db := e.db.WithContext(ctx)

	var templates []models.RecurringExpense
	err := db.Where("owner_id = ? AND is_active = ?", owner, true).Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("loading recurring expenses: %w", err)
	}

	expenses, err := monthExpenses(db, owner, month)
	if err != nil {
		return nil, err
	}

	existing := make(map[uuid.UUID]bool, len(expenses))
	for _, expense := range expenses {
		if expense.RecurringExpenseID != nil {
			existing[*expense.RecurringExpenseID] = true
		}
	}

	var missing []models.Expense
	for _, r := range templates {
		if existing[r.ID] || !IsActive(r, month) {
			continue
		}
		missing = append(missing, instanceFor(r, month))
	}

	if len(missing) == 0 {
		return expenses, nil
	}

	created, failed, firstErr := insert(db, missing)
	log.Debug().
		Str("owner", owner.String()).
		Str("month", month.String()).
		Int("created", created).
		Int("failed", failed).
		Msg("synced recurring expenses")

	expenses, err = monthExpenses(db, owner, month)
	if err != nil {
		return nil, err
	}

	if failed > 0 {
		return expenses, &SyncError{Month: month, Failed: failed, Err: firstErr}
	}

	return expenses, nil
}

// insert creates all rows in one statement. If that fails, every row is
// created on its own so that one failing row does not prevent the others.
// Rows that already exist are skipped.
func insert(db *gorm.DB, rows []models.Expense) (created, failed int, first error) {
	err := db.Create(&rows).Error
	if err == nil {
		materializedCount.Add(float64(len(rows)))
		return len(rows), 0, nil
	}

	log.Debug().Err(err).Int("count", len(rows)).Msg("batch insert failed, inserting expenses one by one")

	for _, row := range rows {
		err := db.Create(&row).Error
		switch {
		case err == nil:
			created++
			materializedCount.Inc()
		case errors.Is(err, models.ErrInstanceAlreadyMaterialized):
			log.Debug().Str("recurring_expense", row.RecurringExpenseID.String()).Str("month", row.Month.String()).Msg("expense already exists")
		default:
			failed++
			materializeFailures.Inc()
			if first == nil {
				first = err
			}
			log.Error().Err(err).Str("recurring_expense", row.RecurringExpenseID.String()).Msg("could not create expense for recurring expense")
		}
	}

	return created, failed, first
}

// monthExpenses returns all expenses of the owner in the month, newest first.
func monthExpenses(db *gorm.DB, owner uuid.UUID, month types.Month) ([]models.Expense, error) {
	var expenses []models.Expense
	err := db.
		Where("owner_id = ? AND month = ?", owner, month).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	return expenses, nil
}

// instanceFor returns the expense of the recurring expense in month.
// The financial fields are copied.
func instanceFor(r models.RecurringExpense, month types.Month) models.Expense {
	id := r.ID
	fields := r.ExpenseFields
	if fields.ConversionDate != nil {
		d := *fields.ConversionDate
		fields.ConversionDate = &d
	}

	return models.Expense{
		OwnerID:            r.OwnerID,
		ExpenseFields:      fields,
		Date:               month.Day(r.StartDay()),
		Type:               models.ExpenseRecurring,
		RecurringExpenseID: &id,
	}
}
