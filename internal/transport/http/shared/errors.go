package shared

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	domain "hradmin/internal/domain/shared"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
)

// WriteError maps domain failures onto responses. notFound is the entity
// specific message for missing records. Unexpected errors are logged and
// answered with a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &validation):
		api.FailValidation(w, validation)
	case errors.Is(err, domain.ErrNotFound):
		api.Fail(w, http.StatusNotFound, notFound)
	case errors.As(err, &conflict):
		api.Fail(w, http.StatusConflict, conflict.Message)
	case errors.As(err, &tooLarge):
		api.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large.")
	case errors.Is(err, ErrInvalidPayload):
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.")
	default:
		requestctx.Logger(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		api.Fail(w, http.StatusInternalServerError, "Server error.")
	}
}
