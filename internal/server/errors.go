package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/diploma-scanner/internal/fetch"
	"github.com/jonathan/diploma-scanner/internal/gallery"
	"github.com/jonathan/diploma-scanner/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		emptyErr      *ingestion.EmptyInputError
		tooLargeErr   *http.MaxBytesError
		galleryErr    *gallery.Error
		fetchErr      *fetch.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &emptyErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &galleryErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
