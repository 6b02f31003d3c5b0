package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/pkg/httputil"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

var (
	errFieldNotEditable      = errors.New("this field cannot be changed")
	errRecurringExpenseMonth = errors.New("the date of an expense for a recurring expense must stay in the month of the expense")
)

func fieldError(name string) error {
	return fmt.Errorf("%w: %s", errFieldNotEditable, name)
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, errFieldNotEditable) || errors.Is(err, errRecurringExpenseMonth) {
		return http.StatusBadRequest
	}

	return httputil.Status(err)
}

// message returns the error message for the response
func message(c *gin.Context, err error) *string {
	s := err.Error()
	if status(err) == http.StatusInternalServerError {
		s = httputil.Message(c, err)
	}

	return &s
}
