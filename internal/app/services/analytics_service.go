package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/repositories"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

// AnalyticsService defines the interface for application analytics operations
type AnalyticsService interface {
	RecordStatusChange(ctx context.Context, projectID primitive.ObjectID, oldStatus *models.ApplicationStatus, newStatus models.ApplicationStatus) error
	GetProjectAnalytics(ctx context.Context, professorID, projectID string) (*dto.ProjectAnalyticsResponse, error)
	GetGlobalAnalytics(ctx context.Context) (*dto.GlobalAnalyticsResponse, error)
}

type analyticsStore interface {
	ApplyDelta(ctx context.Context, projectID primitive.ObjectID, delta repositories.AnalyticsDelta) error
	GetByProject(ctx context.Context, projectID primitive.ObjectID) (*models.ApplicationAnalytics, error)
	ListAll(ctx context.Context) ([]*models.ApplicationAnalytics, error)
}

type clickStatsReader interface {
	GlobalStats(ctx context.Context) (models.ClickStats, error)
	ProjectStats(ctx context.Context, projectID primitive.ObjectID) (models.ClickStats, error)
}

type projectCounter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	CountAll(ctx context.Context) (int64, error)
}

// analyticsServiceImpl implements AnalyticsService
type analyticsServiceImpl struct {
	analyticsRepo analyticsStore
	trackingRepo  clickStatsReader
	projectRepo   projectCounter
	logger        zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsRepo analyticsStore, trackingRepo clickStatsReader, projectRepo projectCounter, logger zerolog.Logger) AnalyticsService {
	return &analyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		trackingRepo:  trackingRepo,
		projectRepo:   projectRepo,
		logger:        logger,
	}
}

// MetricsDelta derives the counter increments for one application event.
// A nil oldStatus means a fresh submission and counts one application.
// A move into ACCEPTED counts one interview and one accepted offer; a move
// into REJECTED counts one declined offer. Counters only ever increase.
func MetricsDelta(oldStatus *models.ApplicationStatus, newStatus models.ApplicationStatus) repositories.AnalyticsDelta {
	var delta repositories.AnalyticsDelta
	if oldStatus == nil {
		delta.Applications = 1
	}
	if oldStatus != nil && *oldStatus == newStatus {
		return delta
	}
	switch newStatus {
	case models.ApplicationStatusAccepted:
		delta.Interviews = 1
		delta.AcceptedOffers = 1
	case models.ApplicationStatusRejected:
		delta.DeclinedOffers = 1
	}
	return delta
}

// RecordStatusChange applies the counter increments implied by a submission
// or status change to the project's analytics document.
func (s *analyticsServiceImpl) RecordStatusChange(ctx context.Context, projectID primitive.ObjectID, oldStatus *models.ApplicationStatus, newStatus models.ApplicationStatus) error {
	delta := MetricsDelta(oldStatus, newStatus)
	if delta.IsZero() {
		return nil
	}

	if err := s.analyticsRepo.ApplyDelta(ctx, projectID, delta); err != nil {
		s.logger.Error().Err(err).Str("operation", "recordStatusChange").Str("projectId", projectID.Hex()).Msg("Failed to record analytics")
		return fmt.Errorf("failed to record analytics: %w", err)
	}
	return nil
}

// GetProjectAnalytics returns a project's counters and email engagement. Only
// the owner may read them; anyone else sees not-found.
func (s *analyticsServiceImpl) GetProjectAnalytics(ctx context.Context, professorID, projectID string) (*dto.ProjectAnalyticsResponse, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, apperrors.ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getProjectAnalytics").Str("projectId", projectID).Msg("Failed to load project")
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	if project == nil || project.ProfessorID.Hex() != professorID {
		return nil, apperrors.ErrProjectNotFound
	}

	analytics, err := s.analyticsRepo.GetByProject(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getProjectAnalytics").Str("projectId", projectID).Msg("Failed to load counters")
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	if analytics == nil {
		analytics = &models.ApplicationAnalytics{ProjectID: id}
	}

	clicks, err := s.trackingRepo.ProjectStats(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getProjectAnalytics").Str("projectId", projectID).Msg("Failed to load click stats")
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	resp := buildProjectAnalytics(analytics, clicks)
	return &resp, nil
}

// GetGlobalAnalytics aggregates counters and engagement across every project.
func (s *analyticsServiceImpl) GetGlobalAnalytics(ctx context.Context) (*dto.GlobalAnalyticsResponse, error) {
	all, err := s.analyticsRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getGlobalAnalytics").Msg("Failed to list counters")
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	totalProjects, err := s.projectRepo.CountAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getGlobalAnalytics").Msg("Failed to count projects")
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	clicks, err := s.trackingRepo.GlobalStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "getGlobalAnalytics").Msg("Failed to load click stats")
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	resp := &dto.GlobalAnalyticsResponse{
		TotalProjects: totalProjects,
		Email:         buildEngagement(clicks),
	}
	for _, a := range all {
		resp.TotalApplications += a.TotalApplications
		resp.TotalInterviews += a.TotalInterviews
		resp.TotalAcceptedOffers += a.TotalAcceptedOffers
		resp.TotalDeclinedOffers += a.TotalDeclinedOffers
		resp.Projects = append(resp.Projects, buildProjectAnalytics(a, models.ClickStats{}))
	}
	resp.InterviewRate = ratePercent(resp.TotalInterviews, resp.TotalApplications)
	resp.OfferAcceptanceRate = ratePercent(resp.TotalAcceptedOffers, resp.TotalAcceptedOffers+resp.TotalDeclinedOffers)

	return resp, nil
}

func buildProjectAnalytics(analytics *models.ApplicationAnalytics, clicks models.ClickStats) dto.ProjectAnalyticsResponse {
	return dto.ProjectAnalyticsResponse{
		ProjectID:           analytics.ProjectID.Hex(),
		TotalApplications:   analytics.TotalApplications,
		TotalInterviews:     analytics.TotalInterviews,
		TotalAcceptedOffers: analytics.TotalAcceptedOffers,
		TotalDeclinedOffers: analytics.TotalDeclinedOffers,
		InterviewRate:       ratePercent(analytics.TotalInterviews, analytics.TotalApplications),
		OfferAcceptanceRate: ratePercent(analytics.TotalAcceptedOffers, analytics.TotalAcceptedOffers+analytics.TotalDeclinedOffers),
		Email:               buildEngagement(clicks),
	}
}

func buildEngagement(clicks models.ClickStats) dto.EmailEngagement {
	return dto.EmailEngagement{
		EmailsSent:            clicks.EmailsSent,
		TotalClicks:           clicks.TotalClicks,
		UniqueViews:           clicks.UniqueViews,
		ViewRate:              ratePercent(clicks.UniqueViews, clicks.EmailsSent),
		AverageClicksPerEmail: ratio(clicks.TotalClicks, clicks.EmailsSent),
	}
}

// ratePercent guards the zero denominator; an empty population has a 0 rate.
func ratePercent(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

func ratio(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
