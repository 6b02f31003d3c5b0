package recurring_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/ledgerbook/backend/pkg/recurring"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestSyncIdempotent() {
	r := suite.createRecurringExpense(models.RecurringExpense{})
	march := types.NewMonth(2026, 3)

	first, err := suite.engine.Sync(suite.T().Context(), suite.owner, march)
	suite.Require().Nil(err)
	suite.Require().Len(first, 1)

	for range 3 {
		again, err := suite.engine.Sync(suite.T().Context(), suite.owner, march)
		suite.Require().Nil(err)
		suite.Require().Len(again, 1)
		suite.Assert().Equal(first[0].ID, again[0].ID)
	}

	suite.Assert().Len(suite.instances(r.ID), 2, "January from creation and March from the syncs")
}

func (suite *TestSuiteStandard) TestSyncConcurrent() {
	r := suite.createRecurringExpense(models.RecurringExpense{})
	june := types.NewMonth(2026, 6)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.engine.Sync(suite.T().Context(), suite.owner, june)
			suite.Assert().Nil(err)
		}()
	}
	wg.Wait()

	instances := suite.instances(r.ID)
	suite.Assert().Len(instances, 2)
	suite.Assert().Contains(instances, june)
}

// TestSyncLosesRace creates the expense of one recurring expense between
// reading the month and inserting the missing expenses.
func (suite *TestSuiteStandard) TestSyncLosesRace() {
	a := suite.createRecurringExpense(models.RecurringExpense{})
	b := suite.createRecurringExpense(models.RecurringExpense{StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)})
	may := types.NewMonth(2026, 5)

	var once sync.Once
	var racing models.Expense
	err := suite.db.Callback().Query().After("gorm:query").Register("test:concurrent_insert", func(db *gorm.DB) {
		if db.Statement.Table != "expenses" {
			return
		}

		once.Do(func() {
			id := a.ID
			racing = models.Expense{
				OwnerID:            suite.owner,
				ExpenseFields:      awsHosting(),
				Date:               may.Day(1),
				Type:               models.ExpenseRecurring,
				RecurringExpenseID: &id,
			}
			suite.Require().Nil(suite.db.Session(&gorm.Session{NewDB: true}).Create(&racing).Error)
		})
	})
	suite.Require().Nil(err)

	expenses, err := suite.engine.Sync(suite.T().Context(), suite.owner, may)
	suite.Require().Nil(err, "an expense that already exists is not a failure")
	suite.Require().Len(expenses, 2)

	instancesA := suite.instances(a.ID)
	suite.Require().Contains(instancesA, may)
	suite.Assert().Equal(racing.ID, instancesA[may].ID, "the concurrently created expense is kept")
	suite.Assert().Contains(suite.instances(b.ID), may)
}

// TestSyncPartialFailure verifies that expenses that can be created are
// created and returned when others fail.
func (suite *TestSuiteStandard) TestSyncPartialFailure() {
	ok := suite.createRecurringExpense(models.RecurringExpense{})

	fields := awsHosting()
	fields.Title = "Broken"
	broken := suite.createRecurringExpense(models.RecurringExpense{ExpenseFields: fields})

	errDisk := errors.New("disk I/O error")
	err := suite.db.Callback().Create().Before("gorm:create").Register("test:fail_insert", func(db *gorm.DB) {
		switch dest := db.Statement.Dest.(type) {
		case *models.Expense:
			if dest.Title == "Broken" {
				_ = db.AddError(errDisk)
			}
		case *[]models.Expense:
			for _, e := range *dest {
				if e.Title == "Broken" {
					_ = db.AddError(errDisk)
					return
				}
			}
		}
	})
	suite.Require().Nil(err)

	april := types.NewMonth(2026, 4)
	expenses, err := suite.engine.Sync(suite.T().Context(), suite.owner, april)

	var syncErr *recurring.SyncError
	suite.Require().True(errors.As(err, &syncErr), "expected a *SyncError, got %v", err)
	suite.Assert().Equal(1, syncErr.Failed)
	suite.Assert().Equal(april, syncErr.Month)
	suite.Assert().ErrorIs(err, errDisk)

	suite.Require().Len(expenses, 1, "the expense that could be created is returned")
	suite.Assert().Equal(ok.ID, *expenses[0].RecurringExpenseID)
	suite.Assert().NotContains(suite.instances(broken.ID), april)
}

func (suite *TestSuiteStandard) TestSyncCallerCancelled() {
	r := suite.createRecurringExpense(models.RecurringExpense{})

	ctx, cancel := context.WithCancel(suite.T().Context())
	cancel()

	expenses, err := suite.engine.Sync(ctx, suite.owner, types.NewMonth(2026, 3))
	suite.Require().Nil(err, "the run does not depend on the caller's context")
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal(r.ID, *expenses[0].RecurringExpenseID)
}

func (suite *TestSuiteStandard) TestSyncSkipsExisting() {
	r := suite.createRecurringExpense(models.RecurringExpense{})
	feb := types.NewMonth(2026, 2)

	// An expense for the slot that was created elsewhere
	id := r.ID
	existing := models.Expense{
		OwnerID:            suite.owner,
		ExpenseFields:      awsHosting(),
		Date:               feb.Day(1),
		Type:               models.ExpenseRecurring,
		RecurringExpenseID: &id,
	}
	existing.Notes = "created by another session"
	suite.Require().Nil(suite.db.Create(&existing).Error)

	expenses, err := suite.engine.Sync(suite.T().Context(), suite.owner, feb)
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal(existing.ID, expenses[0].ID)
}

func (suite *TestSuiteStandard) TestSyncReturnsMonthNewestFirst() {
	suite.createRecurringExpense(models.RecurringExpense{StartDate: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)})
	suite.createRecurringExpense(models.RecurringExpense{StartDate: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)})

	oneOff := models.Expense{
		OwnerID:       suite.owner,
		ExpenseFields: awsHosting(),
		Date:          time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}
	oneOff.Title = "Conference ticket"
	suite.Require().Nil(suite.db.Create(&oneOff).Error)

	// Expenses of other owners and other months are not returned
	other := oneOff
	other.ID = uuid.Nil
	other.OwnerID = uuid.New()
	suite.Require().Nil(suite.db.Create(&other).Error)

	expenses, err := suite.engine.GetInstancesForMonth(suite.T().Context(), suite.owner, types.NewMonth(2026, 2))
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 3)

	suite.Assert().Equal(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), expenses[0].Date)
	suite.Assert().Equal(oneOff.ID, expenses[1].ID)
	suite.Assert().Equal(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), expenses[2].Date)
}

func (suite *TestSuiteStandard) TestSyncInactiveMonths() {
	r := suite.createRecurringExpense(models.RecurringExpense{
		StartDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DurationType:   models.DurationMonths,
		DurationMonths: intPtr(3),
	})

	suite.syncRange(types.NewMonth(2025, 11), types.NewMonth(2026, 6))

	instances := suite.instances(r.ID)
	suite.Assert().Len(instances, 3)
	for _, m := range []types.Month{types.NewMonth(2026, 1), types.NewMonth(2026, 2), types.NewMonth(2026, 3)} {
		suite.Require().Contains(instances, m)
		suite.Assert().Equal(m.Day(15), instances[m].Date)
	}
}

func (suite *TestSuiteStandard) TestSyncCopiesFields() {
	r := suite.createRecurringExpense(models.RecurringExpense{
		ExpenseFields: models.ExpenseFields{
			Title:            "Figma",
			AmountOriginal:   decimal.NewFromInt(45),
			CurrencyOriginal: "usd",
			AmountGBP:        decimal.RequireFromString("35.55"),
			ExchangeRate:     decimal.RequireFromString("0.79"),
			Category:         models.CategorySoftware,
			Notes:            "Team plan",
		},
	})

	expenses, err := suite.engine.Sync(suite.T().Context(), suite.owner, types.NewMonth(2026, 4))
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)

	e := expenses[0]
	suite.Assert().Equal(models.ExpenseRecurring, e.Type)
	suite.Assert().Equal(r.ID, *e.RecurringExpenseID)
	suite.Assert().Equal("Figma", e.Title)
	suite.Assert().Equal("USD", e.CurrencyOriginal)
	suite.Assert().True(decimal.RequireFromString("35.55").Equal(e.AmountGBP))
	suite.Assert().Equal(models.CategorySoftware, e.Category)
	suite.Assert().Equal("Team plan", e.Notes)
}

func (suite *TestSuiteStandard) TestSyncDBClosed() {
	suite.CloseDB()

	_, err := suite.engine.Sync(suite.T().Context(), suite.owner, types.NewMonth(2026, 1))
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestEndToEnd() {
	feb := types.NewMonth(2026, 2)
	march := types.NewMonth(2026, 3)

	r, err := suite.engine.Create(suite.T().Context(), suite.owner, models.RecurringExpense{
		ExpenseFields: awsHosting(),
		StartDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DurationType:  models.DurationIndefinite,
	}, feb)
	suite.Require().Nil(err)
	suite.Assert().True(r.IsActive)

	expenses, err := suite.engine.GetInstancesForMonth(suite.T().Context(), suite.owner, feb)
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), expenses[0].Date)

	expenses, err = suite.engine.GetInstancesForMonth(suite.T().Context(), suite.owner, march)
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), expenses[0].Date)
	suite.Assert().Equal(r.ID, *expenses[0].RecurringExpenseID)

	suite.Assert().Len(suite.instances(r.ID), 2)
}
