package recurring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Changes are the fields of a recurring expense that can be edited.
// The start date and the activity state are fixed after creation.
type Changes struct {
	models.ExpenseFields
	DurationType   models.DurationType
	DurationMonths *int
	EndDate        *time.Time
}

// RecurringExpense returns a recurring expense of the owner.
func (e *Engine) RecurringExpense(ctx context.Context, owner, id uuid.UUID) (models.RecurringExpense, error) {
	return find(e.db.WithContext(ctx), owner, id)
}

// Create stores a new, active recurring expense for the owner. If it is active
// in the current month, the expense for the current month is created with it.
func (e *Engine) Create(ctx context.Context, owner uuid.UUID, r models.RecurringExpense, current types.Month) (models.RecurringExpense, error) {
	r.DefaultModel = models.DefaultModel{}
	r.OwnerID = owner
	r.IsActive = true

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&r).Error; err != nil {
			return stepError(StepTemplate, err)
		}

		if !IsActive(r, current) {
			return nil
		}

		instance := instanceFor(r, current)
		if err := tx.Create(&instance).Error; err != nil {
			return stepError(StepCurrentInstance, err)
		}
		materializedCount.Inc()

		return nil
	})
	if err != nil {
		return models.RecurringExpense{}, err
	}

	log.Debug().Str("id", r.ID.String()).Str("owner", owner.String()).Msg("created recurring expense")
	return r, nil
}

// Update changes a recurring expense and propagates the change:
// The expense of the current month gets the new financial fields,
// expenses after the current month are removed so that the next sync
// creates them from the updated recurring expense. Earlier expenses are
// never changed.
//
// Stopped recurring expenses cannot be updated.
func (e *Engine) Update(ctx context.Context, owner, id uuid.UUID, changes Changes, current types.Month) (models.RecurringExpense, error) {
	var r models.RecurringExpense

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		r, err = find(tx, owner, id)
		if err != nil {
			return err
		}

		if !r.IsActive {
			return ErrTemplateStopped
		}

		r.ExpenseFields = changes.ExpenseFields
		r.DurationType = changes.DurationType
		r.DurationMonths = changes.DurationMonths
		r.EndDate = changes.EndDate

		if err := tx.Save(&r).Error; err != nil {
			return stepError(StepTemplate, err)
		}

		err = tx.Model(&models.Expense{}).
			Where("owner_id = ? AND recurring_expense_id = ? AND month = ?", owner, id, current).
			UpdateColumns(fieldColumns(r.ExpenseFields, tx.NowFunc())).Error
		if err != nil {
			return stepError(StepCurrentInstance, err)
		}

		return stepError(StepFutureInstances, deleteAfter(tx, owner, id, current))
	})
	if err != nil {
		return models.RecurringExpense{}, err
	}

	log.Debug().Str("id", id.String()).Str("month", current.String()).Msg("updated recurring expense")
	return r, nil
}

// Stop deactivates a recurring expense. Expenses after the current month
// are removed, the expense of the current month and earlier ones are kept.
//
// Stopping a stopped recurring expense only removes the expenses after
// the current month.
func (e *Engine) Stop(ctx context.Context, owner, id uuid.UUID, current types.Month) (r models.RecurringExpense, err error) {
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err = stop(tx, owner, id, current)
		return err
	})
	if err != nil {
		return models.RecurringExpense{}, err
	}

	log.Debug().Str("id", id.String()).Str("month", current.String()).Msg("stopped recurring expense")
	return r, nil
}

// DeleteInstance deletes an expense of the owner. If the expense was created
// for a recurring expense, the recurring expense is stopped as of the
// expense's month: expenses in later months are removed and no new ones
// are created.
func (e *Engine) DeleteInstance(ctx context.Context, owner, id uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var instance models.Expense
		err := tx.Where("owner_id = ? AND id = ?", owner, id).First(&instance).Error
		if err != nil {
			return err
		}

		if instance.RecurringExpenseID != nil {
			_, err := stop(tx, owner, *instance.RecurringExpenseID, instance.Month)

			// An expense without its recurring expense is deleted like a one-off expense
			if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
				return err
			}
		}

		return stepError(StepInstance, tx.Delete(&instance).Error)
	})
}

func stop(tx *gorm.DB, owner, id uuid.UUID, current types.Month) (models.RecurringExpense, error) {
	r, err := find(tx, owner, id)
	if err != nil {
		return r, err
	}

	err = tx.Model(&models.RecurringExpense{}).
		Where("id = ?", r.ID).
		UpdateColumns(map[string]interface{}{"is_active": false, "updated_at": tx.NowFunc()}).Error
	if err != nil {
		return r, stepError(StepTemplate, err)
	}
	r.IsActive = false

	return r, stepError(StepFutureInstances, deleteAfter(tx, owner, id, current))
}

func find(db *gorm.DB, owner, id uuid.UUID) (models.RecurringExpense, error) {
	var r models.RecurringExpense
	err := db.Where("owner_id = ? AND id = ?", owner, id).First(&r).Error
	return r, err
}

// deleteAfter removes all expenses of the recurring expense in months after month.
func deleteAfter(tx *gorm.DB, owner, id uuid.UUID, month types.Month) error {
	result := tx.
		Where("owner_id = ? AND recurring_expense_id = ? AND month >= ?", owner, id, month.Next()).
		Delete(&models.Expense{})

	if result.Error == nil && result.RowsAffected > 0 {
		log.Debug().Str("recurring_expense", id.String()).Int64("count", result.RowsAffected).Msg("removed future expenses")
	}

	return result.Error
}

// fieldColumns returns the columns of the financial fields for UpdateColumns.
func fieldColumns(f models.ExpenseFields, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"title":             f.Title,
		"amount_original":   f.AmountOriginal,
		"currency_original": f.CurrencyOriginal,
		"amount_gbp":        f.AmountGBP,
		"exchange_rate":     f.ExchangeRate,
		"conversion_date":   f.ConversionDate,
		"category":          f.Category,
		"notes":             f.Notes,
		"updated_at":        now,
	}
}
