package get_loyalty_analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/analytics/models"
)

type AnalyticsService interface {
	Seasonal(ctx context.Context, userID uuid.UUID) (*models.SeasonalResponse, error)
	Points(ctx context.Context, userID uuid.UUID) (*models.PointsResponse, error)
	Cohorts(ctx context.Context, userID uuid.UUID) (*models.CohortResponse, error)
	Segments(ctx context.Context, userID uuid.UUID) (*models.SegmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
