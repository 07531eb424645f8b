package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/search"
	"github.com/jonathan/contract-board/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError reports the first invalid field of a validator error
func validationError(err error) *ErrValidation {
	fields := types.FieldErrors(err)
	if len(fields) == 0 {
		return &ErrValidation{Message: "invalid request"}
	}
	return &ErrValidation{Field: fields[0].Field, Message: fields[0].Message}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verr *ErrValidation
	switch {
	case errors.As(err, &verr),
		errors.Is(err, search.ErrInvalidCriteria),
		errors.Is(err, db.ErrSalaryRange):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrCompanyNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrDuplicateEmail), errors.Is(err, db.ErrProfileExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and writes it. Internal errors are logged
// and replaced with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
