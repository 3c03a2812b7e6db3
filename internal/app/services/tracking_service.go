package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/repositories"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

// TrackingService defines the interface for email click tracking operations
type TrackingService interface {
	CreateTrackingToken(ctx context.Context, applicationID, projectID primitive.ObjectID) (string, error)
	TrackClick(ctx context.Context, token string) (*models.EmailTracking, error)
	GetGlobalClickStats(ctx context.Context) (models.ClickStats, []repositories.ProjectClickStats, error)
}

type trackingStore interface {
	Create(ctx context.Context, tracking *models.EmailTracking) error
	TrackClick(ctx context.Context, token string, now time.Time) (*models.EmailTracking, error)
	GlobalStats(ctx context.Context) (models.ClickStats, error)
	PerProjectStats(ctx context.Context) ([]repositories.ProjectClickStats, error)
}

// trackingServiceImpl implements TrackingService
type trackingServiceImpl struct {
	trackingRepo trackingStore
	logger       zerolog.Logger
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(trackingRepo trackingStore, logger zerolog.Logger) TrackingService {
	return &trackingServiceImpl{trackingRepo: trackingRepo, logger: logger}
}

// CreateTrackingToken mints an opaque token and stores the tracking record
// for one outbound notification email.
func (s *trackingServiceImpl) CreateTrackingToken(ctx context.Context, applicationID, projectID primitive.ObjectID) (string, error) {
	tracking := &models.EmailTracking{
		Token:         uuid.NewString(),
		ApplicationID: applicationID,
		ProjectID:     projectID,
	}

	if err := s.trackingRepo.Create(ctx, tracking); err != nil {
		s.logger.Error().Err(err).Str("operation", "createTrackingToken").Str("applicationId", applicationID.Hex()).Msg("Failed to create tracking record")
		return "", fmt.Errorf("failed to create tracking token: %w", err)
	}

	return tracking.Token, nil
}

// TrackClick records one click against the token's record and returns the
// updated record. Unknown tokens map to not-found.
func (s *trackingServiceImpl) TrackClick(ctx context.Context, token string) (*models.EmailTracking, error) {
	tracking, err := s.trackingRepo.TrackClick(ctx, token, time.Now())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTrackingTokenNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("operation", "trackClick").Msg("Failed to record click")
		return nil, fmt.Errorf("failed to record click: %w", err)
	}
	return tracking, nil
}

// GetGlobalClickStats returns overall engagement plus the per-project split.
func (s *trackingServiceImpl) GetGlobalClickStats(ctx context.Context) (models.ClickStats, []repositories.ProjectClickStats, error) {
	global, err := s.trackingRepo.GlobalStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getGlobalClickStats").Msg("Failed to load global click stats")
		return models.ClickStats{}, nil, fmt.Errorf("failed to load click stats: %w", err)
	}

	perProject, err := s.trackingRepo.PerProjectStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getGlobalClickStats").Msg("Failed to load per-project click stats")
		return models.ClickStats{}, nil, fmt.Errorf("failed to load click stats: %w", err)
	}

	return global, perProject, nil
}
