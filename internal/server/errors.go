package server

import (
	"errors"
	"net/http"

	"github.com/tempsuisse/platform/internal/ai"
	"github.com/tempsuisse/platform/internal/cv"
	"github.com/tempsuisse/platform/internal/export"
)

// HTTPStatus maps domain errors to HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, cv.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, cv.ErrFieldDisabled):
		return http.StatusConflict
	case errors.Is(err, cv.ErrDuplicateSkill):
		return http.StatusConflict
	case errors.Is(err, cv.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, export.ErrNoArtifact):
		return http.StatusNotFound
	case errors.Is(err, ai.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
