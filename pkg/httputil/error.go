package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/pkg/models"
	"github.com/ledgerbook/backend/pkg/recurring"
	"github.com/rs/zerolog/log"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// Status returns the HTTP status for an error.
//
// Errors of a sub-step of a recurring expense change have the status of
// their cause.
func Status(err error) int {
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInstanceAlreadyMaterialized), errors.Is(err, recurring.ErrTemplateStopped):
		return http.StatusConflict
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrRequestBodyEmpty),
		errors.Is(err, ErrInvalidUUID),
		errors.Is(err, ErrInvalidMonth),
		errors.Is(err, ErrInvalidQueryString),
		errors.As(err, &typeErr):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Message returns the error message for the response. Messages of
// server errors are replaced since they do not help users.
func Message(c *gin.Context, err error) string {
	if Status(err) != http.StatusInternalServerError || errors.Is(err, models.ErrGeneral) {
		return err.Error()
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return fmt.Sprintf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
}

// NewError writes the error with its status.
func NewError(c *gin.Context, err error) {
	c.JSON(Status(err), HTTPError{
		Error: Message(c, err),
	})
}
