package recurring

import (
	"errors"
	"fmt"

	"github.com/ledgerbook/backend/internal/types"
)

var ErrTemplateStopped = errors.New("the recurring expense has been stopped and can no longer be changed")

// Step identifies a sub-step of a change to a recurring expense.
type Step string

const (
	StepTemplate        Step = "template"
	StepCurrentInstance Step = "current-instance"
	StepFutureInstances Step = "future-instances"
	StepInstance        Step = "instance"
)

func (s Step) description() string {
	switch s {
	case StepTemplate:
		return "saving the recurring expense failed"
	case StepCurrentInstance:
		return "updating the expense of the current month failed"
	case StepFutureInstances:
		return "removing future expenses failed"
	case StepInstance:
		return "deleting the expense failed"
	}

	return string(s)
}

// StepError is returned when one sub-step of a change fails.
// All sub-steps of a change share one transaction, so nothing
// from the change has been written when a StepError is returned.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step.description(), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(step Step, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Err: err}
}

// SyncError reports expenses that could not be created during a sync.
// The expenses of the month that could be read are still returned
// alongside it.
type SyncError struct {
	Month  types.Month
	Failed int
	Err    error // The first failure
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%d recurring expense(s) could not be added to %s: %s", e.Failed, e.Month, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
