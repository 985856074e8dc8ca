package services

import (
	"context"
	"errors"
	"time"

	apierrors "api/internal/errors"
	"api/internal/handlers"
	m "api/internal/middlewares"
	"api/internal/models"
	"api/internal/sql"
	"api/internal/stats"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StatsService struct {
	DB     *gorm.DB
	engine *stats.Engine
}

func NewStatsService(db *gorm.DB) StatsService {
	return StatsService{
		DB:     db,
		engine: stats.NewEngine(sql.CatalogCountStore{DB: db}),
	}
}

func (s StatsService) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(m.ValidateQuery[models.CatalogStatsParams]).
		Get("/catalog", handlers.QueryHandler(s.GetCatalogStats))

	return r
}

// GetCatalogStats serves GET /stats/catalog: catalog totals with optional
// breakdowns over source, media type and public type, scoped to an optional
// inclusive date window.
func (s StatsService) GetCatalogStats(
	ctx context.Context,
	logger *zap.Logger,
	claims models.UserClaims,
	params models.CatalogStatsParams,
) (stats.StatsResponse, error) {
	if !claims.CanReadCatalog() {
		return stats.StatsResponse{}, apierrors.NewAPIError(403, "FORBIDDEN")
	}

	period, err := parsePeriod(params.StartDate, params.EndDate)
	if err != nil {
		return stats.StatsResponse{}, apierrors.NewAPIError(400, apierrors.ErrInvalidDateFormat)
	}

	response, err := s.engine.ComputeStats(ctx, stats.StatsRequest{
		Period:       period,
		BySource:     models.Flag(params.BySource),
		ByMediaType:  models.Flag(params.ByMediaType),
		ByPublicType: models.Flag(params.ByPublicType),
	})
	if err != nil {
		if errors.Is(err, stats.ErrInconsistentAggregation) {
			logger.Error("Catalog counts failed consistency check", zap.Error(err))
			return stats.StatsResponse{}, apierrors.NewAPIError(500, apierrors.ErrInconsistentAggregation)
		}
		return stats.StatsResponse{}, err
	}

	return response, nil
}

// parsePeriod builds the counting window from the raw date params. No
// params means no window at all; a single bound widens the other side to
// the epoch or to now.
func parsePeriod(startDate, endDate string) (*stats.Period, error) {
	if startDate == "" && endDate == "" {
		return nil, nil
	}

	period := stats.Period{Start: time.Unix(0, 0).UTC(), End: time.Now().UTC()}

	if startDate != "" {
		start, err := parseDateBound(startDate, false)
		if err != nil {
			return nil, err
		}
		period.Start = start
	}

	if endDate != "" {
		end, err := parseDateBound(endDate, true)
		if err != nil {
			return nil, err
		}
		period.End = end
	}

	return &period, nil
}

// parseDateBound accepts RFC 3339 timestamps or plain dates. A plain date
// maps to the start of the day, or its last second for an end bound.
func parseDateBound(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}

	if endOfDay {
		return day.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
	}
	return day, nil
}
