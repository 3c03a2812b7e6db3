package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/email"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/filestorage"
)

// ResumeDownload carries the bytes of a stored resume together with the
// metadata needed to serve it.
type ResumeDownload struct {
	Content  []byte
	MimeType string
	FileName string
}

// ApplicationService defines the interface for student application operations
type ApplicationService interface {
	Create(ctx context.Context, projectID string, req *dto.CreateApplicationRequest, resume *multipart.FileHeader) (*dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, professorID, projectID, applicationID string, newStatus models.ApplicationStatus) (*dto.ApplicationResponse, error)
	FindProjectApplications(ctx context.Context, professorID, projectID string, status *models.ApplicationStatus) ([]dto.ApplicationResponse, error)
	GetResume(ctx context.Context, professorID, projectID, applicationID string) (*ResumeDownload, error)
	GetResumeByToken(ctx context.Context, projectID, applicationID, token string) (*ResumeDownload, error)
}

type applicationStore interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID, status *models.ApplicationStatus) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error
}

type projectGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
}

type professorGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Professor, error)
}

type trackingTokenCreator interface {
	CreateTrackingToken(ctx context.Context, applicationID, projectID primitive.ObjectID) (string, error)
}

type statusRecorder interface {
	RecordStatusChange(ctx context.Context, projectID primitive.ObjectID, oldStatus *models.ApplicationStatus, newStatus models.ApplicationStatus) error
}

type mailer interface {
	SendApplicationConfirmation(data email.ConfirmationData) error
	SendApplicationNotification(data email.NotificationData) error
	SendStatusUpdate(data email.StatusUpdateData) error
}

type downloadLinker interface {
	GenerateDownloadURL(professorID, projectID, applicationID string) (string, error)
	VerifyToken(tokenString string) *auth.DownloadClaims
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo applicationStore
	projectRepo     projectGetter
	professorRepo   professorGetter
	analytics       statusRecorder
	tracking        trackingTokenCreator
	mail            mailer
	downloadTokens  downloadLinker
	fileStorage     filestorage.FileStorage
	trackingBaseURL string
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService. trackingBaseURL is
// the public prefix of the click-tracking endpoint.
func NewApplicationService(
	applicationRepo applicationStore,
	projectRepo projectGetter,
	professorRepo professorGetter,
	analytics statusRecorder,
	tracking trackingTokenCreator,
	mail mailer,
	downloadTokens downloadLinker,
	fileStorage filestorage.FileStorage,
	trackingBaseURL string,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		projectRepo:     projectRepo,
		professorRepo:   professorRepo,
		analytics:       analytics,
		tracking:        tracking,
		mail:            mail,
		downloadTokens:  downloadTokens,
		fileStorage:     fileStorage,
		trackingBaseURL: strings.TrimRight(trackingBaseURL, "/"),
		logger:          logger,
	}
}

// Create submits a student application against a project. The project must be
// PUBLISHED, visible, and inside its deadline; the resume must pass the
// upload rules. Persisting the application is the commit point: analytics and
// both emails run afterwards as best-effort side effects, a failure there is
// logged and never unrolls the stored application.
func (s *applicationServiceImpl) Create(ctx context.Context, projectID string, req *dto.CreateApplicationRequest, resume *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	pid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, apperrors.ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByID(ctx, pid)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "createApplication").Str("projectId", projectID).Msg("Failed to load project")
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	if project.Status != models.ProjectStatusPublished || !project.IsVisible {
		return nil, apperrors.ErrProjectNotAcceptingApplications
	}
	if project.ApplicationDeadline != nil && time.Now().After(*project.ApplicationDeadline) {
		return nil, apperrors.ErrDeadlinePassed
	}

	storedName, err := s.fileStorage.SaveFile(resume)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidFile) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("operation", "createApplication").Str("projectId", projectID).Msg("Failed to store resume")
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application := &models.Application{
		ProjectID:      pid,
		Student:        req.ToStudentInfo(),
		Availability:   req.Availability,
		AdditionalInfo: req.AdditionalInfo,
		ResumeFile:     storedName,
		ResumeMimeType: resume.Header.Get("Content-Type"),
		Status:         models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if delErr := s.fileStorage.DeleteFile(storedName); delErr != nil {
			s.logger.Error().Err(delErr).Str("fileName", storedName).Msg("Failed to delete orphaned resume")
		}
		s.logger.Error().Err(err).Str("operation", "createApplication").Str("projectId", projectID).Msg("Failed to insert application")
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.runSubmissionSideEffects(ctx, project, application)

	resp := dto.FromApplication(application)
	return &resp, nil
}

// runSubmissionSideEffects records analytics and sends the confirmation and
// professor-notification emails. Each step logs its own failure and the next
// one still runs.
func (s *applicationServiceImpl) runSubmissionSideEffects(ctx context.Context, project *models.Project, application *models.Application) {
	appID := application.ID.Hex()

	if err := s.analytics.RecordStatusChange(ctx, project.ID, nil, application.Status); err != nil {
		s.logger.Error().Err(err).Str("applicationId", appID).Msg("Failed to record submission analytics")
	}

	studentName := application.Student.FirstName + " " + application.Student.LastName
	if err := s.mail.SendApplicationConfirmation(email.ConfirmationData{
		StudentName:  studentName,
		StudentEmail: application.Student.Email,
		ProjectTitle: project.Title,
	}); err != nil {
		s.logger.Error().Err(err).Str("applicationId", appID).Msg("Failed to send confirmation email")
	}

	professor, err := s.professorRepo.GetByID(ctx, project.ProfessorID)
	if err != nil || professor == nil {
		s.logger.Error().Err(err).Str("professorId", project.ProfessorID.Hex()).Msg("Failed to load professor for notification")
		return
	}

	downloadURL, err := s.downloadTokens.GenerateDownloadURL(professor.ID.Hex(), project.ID.Hex(), appID)
	if err != nil {
		s.logger.Error().Err(err).Str("applicationId", appID).Msg("Failed to generate resume download link")
		return
	}

	trackingURL := ""
	token, err := s.tracking.CreateTrackingToken(ctx, application.ID, project.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("applicationId", appID).Msg("Failed to create tracking token")
	} else {
		trackingURL = fmt.Sprintf("%s/track/%s", s.trackingBaseURL, token)
	}

	if err := s.mail.SendApplicationNotification(email.NotificationData{
		ProfessorName:  professor.FullName(),
		ProfessorEmail: professor.Email,
		ProjectTitle:   project.Title,
		StudentName:    studentName,
		StudentEmail:   application.Student.Email,
		StudentMajor:   application.Student.Major,
		DownloadURL:    downloadURL,
		TrackingURL:    trackingURL,
	}); err != nil {
		s.logger.Error().Err(err).Str("applicationId", appID).Msg("Failed to send notification email")
	}
}

// UpdateStatus moves an owned application to a new status. The transition
// table is enforced before anything is written; the student email afterwards
// is best-effort.
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, professorID, projectID, applicationID string, newStatus models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	project, application, err := s.loadOwnedApplication(ctx, professorID, projectID, applicationID)
	if err != nil {
		return nil, err
	}

	oldStatus := application.Status
	if !oldStatus.CanTransitionTo(newStatus) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatusTransition,
			fmt.Sprintf("cannot change status from %s to %s", oldStatus, newStatus))
	}

	if err := s.applicationRepo.UpdateStatus(ctx, application.ID, newStatus); err != nil {
		if apperrors.Is(err, apperrors.ErrApplicationNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("operation", "updateApplicationStatus").Str("applicationId", applicationID).Msg("Failed to update status")
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	application.Status = newStatus
	application.UpdatedAt = time.Now()

	if err := s.analytics.RecordStatusChange(ctx, project.ID, &oldStatus, newStatus); err != nil {
		s.logger.Error().Err(err).Str("applicationId", applicationID).Msg("Failed to record status analytics")
	}

	if err := s.mail.SendStatusUpdate(email.StatusUpdateData{
		StudentName:  application.Student.FirstName + " " + application.Student.LastName,
		StudentEmail: application.Student.Email,
		ProjectTitle: project.Title,
		NewStatus:    string(newStatus),
	}); err != nil {
		s.logger.Error().Err(err).Str("applicationId", applicationID).Msg("Failed to send status update email")
	}

	resp := dto.FromApplication(application)
	return &resp, nil
}

// FindProjectApplications lists an owned project's applications, optionally
// filtered by status, newest first.
func (s *applicationServiceImpl) FindProjectApplications(ctx context.Context, professorID, projectID string, status *models.ApplicationStatus) ([]dto.ApplicationResponse, error) {
	project, err := s.loadOwnedProject(ctx, professorID, projectID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByProject(ctx, project.ID, status)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "findProjectApplications").Str("projectId", projectID).Msg("Failed to list applications")
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, dto.FromApplication(a))
	}
	return responses, nil
}

// GetResume serves an application's resume to the owning professor.
func (s *applicationServiceImpl) GetResume(ctx context.Context, professorID, projectID, applicationID string) (*ResumeDownload, error) {
	_, application, err := s.loadOwnedApplication(ctx, professorID, projectID, applicationID)
	if err != nil {
		return nil, err
	}
	return s.readResume(application)
}

// GetResumeByToken serves a resume against a signed download token from a
// notification email. The token must verify, name this application, and
// belong to the project's owner; expired tokens never verify.
func (s *applicationServiceImpl) GetResumeByToken(ctx context.Context, projectID, applicationID, token string) (*ResumeDownload, error) {
	claims := s.downloadTokens.VerifyToken(token)
	if claims == nil || claims.ApplicationID != applicationID {
		return nil, apperrors.ErrInvalidDownloadToken
	}

	_, application, err := s.loadOwnedApplication(ctx, claims.ProfessorID, projectID, applicationID)
	if err != nil {
		return nil, err
	}
	return s.readResume(application)
}

func (s *applicationServiceImpl) readResume(application *models.Application) (*ResumeDownload, error) {
	content, mimeType, err := s.fileStorage.GetFile(application.ResumeFile)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResumeNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("fileName", application.ResumeFile).Msg("Failed to read resume")
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	name := fmt.Sprintf("%s_%s_resume%s",
		application.Student.FirstName, application.Student.LastName,
		filepath.Ext(application.ResumeFile))

	return &ResumeDownload{Content: content, MimeType: mimeType, FileName: name}, nil
}

// loadOwnedApplication resolves the project/application pair and verifies the
// professor owns the project and the application belongs to it. Any mismatch
// reads as not-found.
func (s *applicationServiceImpl) loadOwnedApplication(ctx context.Context, professorID, projectID, applicationID string) (*models.Project, *models.Application, error) {
	project, err := s.loadOwnedProject(ctx, professorID, projectID)
	if err != nil {
		return nil, nil, err
	}

	aid, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, nil, apperrors.ErrApplicationNotFound
	}

	application, err := s.applicationRepo.GetByID(ctx, aid)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "loadApplication").Str("applicationId", applicationID).Msg("Failed to load application")
		return nil, nil, fmt.Errorf("failed to load application: %w", err)
	}
	if application == nil || application.ProjectID != project.ID {
		return nil, nil, apperrors.ErrApplicationNotFound
	}

	return project, application, nil
}

func (s *applicationServiceImpl) loadOwnedProject(ctx context.Context, professorID, projectID string) (*models.Project, error) {
	pid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, apperrors.ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByID(ctx, pid)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "loadProject").Str("projectId", projectID).Msg("Failed to load project")
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil || project.ProfessorID.Hex() != professorID {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}
