package handlers

import (
	"context"
	"errors"
	"net/http"

	apierrors "api/internal/errors"
	"api/internal/helpers"
	m "api/internal/middlewares"
	"api/internal/models"

	"go.uber.org/zap"
)

// QueryHandler adapts a service method reading query params decoded by the
// ValidateQuery middleware. The request context is forwarded so a client
// disconnect aborts pending database work.
func QueryHandler[P any, T any](
	fn func(ctx context.Context, logger *zap.Logger, claims models.UserClaims, params P) (T, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(zap.String("path", r.URL.Path))

		claims, _ := helpers.GetUserClaims(r.Context())
		params := m.GetQueryParams[P](r)

		result, err := fn(r.Context(), logger, claims, params)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		helpers.RespondWithJSON(w, 200, result)
	}
}

// GetHandler adapts a parameterless service method.
func GetHandler[T any](
	fn func(ctx context.Context, logger *zap.Logger) (T, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(zap.String("path", r.URL.Path))

		result, err := fn(r.Context(), logger)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		helpers.RespondWithJSON(w, 200, result)
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		helpers.RespondWithError(w, apiErr.Status, apiErr.Codes)
		return
	}

	logger.Error("Unhandled service error", zap.Error(err))
	helpers.RespondWithError(w, 500, []string{"INTERNAL_SERVER_ERROR"})
}
