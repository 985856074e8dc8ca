package services

import (
	"context"

	apierrors "api/internal/errors"
	"api/internal/handlers"
	"api/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthService serves the unauthenticated liveness probe.
type HealthService struct {
	DB *gorm.DB
}

func (s HealthService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", handlers.GetHandler(s.GetHealth))

	return r
}

func (s HealthService) GetHealth(ctx context.Context, logger *zap.Logger) (models.HealthResponse, error) {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return models.HealthResponse{}, apierrors.NewAPIError(503, "DATABASE_UNAVAILABLE")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Database ping failed", zap.Error(err))
		return models.HealthResponse{}, apierrors.NewAPIError(503, "DATABASE_UNAVAILABLE")
	}

	return models.HealthResponse{Status: "ok"}, nil
}
