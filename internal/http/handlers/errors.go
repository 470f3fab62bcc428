package handlers

import (
	"errors"
	"net/http"

	"github.com/preston-bernstein/activities-service/internal/app/enrollment"
	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

const (
	detailEmailRequired     = "Email is required"
	detailEmailInvalid      = "Invalid email address"
	detailInvalidInput      = "Invalid input"
	detailInvalidBody       = "invalid request body"
	detailAlreadyRegistered = "Student is already signed up"
	detailCapacityExceeded  = "Activity is full"
	detailNotRegistered     = "Student is not registered for this activity"
	detailNotFound          = "Activity not found"
	detailInternal          = "internal error"
)

var errInvalidBody = errors.New("invalid request body")

// statusForError maps service errors to a status code and client-facing detail.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, detailInvalidBody
	case errors.Is(err, enrollment.ErrEmailRequired):
		return http.StatusBadRequest, detailEmailRequired
	case errors.Is(err, enrollment.ErrEmailInvalid):
		return http.StatusBadRequest, detailEmailInvalid
	case errors.Is(err, activities.ErrInvalidInput):
		return http.StatusBadRequest, detailInvalidInput
	case errors.Is(err, activities.ErrNotFound):
		return http.StatusNotFound, detailNotFound
	case errors.Is(err, activities.ErrAlreadyRegistered):
		return http.StatusBadRequest, detailAlreadyRegistered
	case errors.Is(err, activities.ErrCapacityExceeded):
		return http.StatusBadRequest, detailCapacityExceeded
	case errors.Is(err, activities.ErrNotRegistered):
		return http.StatusBadRequest, detailNotRegistered
	default:
		return http.StatusInternalServerError, detailInternal
	}
}
