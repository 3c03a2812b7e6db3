package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/repositories"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/filestorage"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/helpers"
)

// ProjectService defines the interface for research project operations
type ProjectService interface {
	Create(ctx context.Context, professorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, projectID, requesterID string) (*dto.ProjectResponse, error)
	List(ctx context.Context, filter *dto.ProjectFilterRequest) ([]dto.ProjectResponse, int64, error)
	ListOwn(ctx context.Context, professorID string, filter *dto.ProjectFilterRequest) ([]dto.ProjectResponse, int64, error)
	Update(ctx context.Context, professorID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, professorID, projectID string) error
	AddFile(ctx context.Context, professorID, projectID string, fileHeader *multipart.FileHeader) (*dto.ProjectResponse, error)
	RemoveFile(ctx context.Context, professorID, projectID, fileName string) error
}

type projectStore interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	List(ctx context.Context, filter repositories.ProjectFilter) ([]*models.Project, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddFile(ctx context.Context, id primitive.ObjectID, file models.ProjectFile) error
	RemoveFile(ctx context.Context, id primitive.ObjectID, fileName string) error
}

// projectServiceImpl implements ProjectService
type projectServiceImpl struct {
	projectRepo projectStore
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo projectStore, fileStorage filestorage.FileStorage, logger zerolog.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Create stores a new project owned by the professor. Status defaults to
// DRAFT; only DRAFT and PUBLISHED are accepted at creation.
func (s *projectServiceImpl) Create(ctx context.Context, professorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	ownerID, err := primitive.ObjectIDFromHex(professorID)
	if err != nil {
		return nil, apperrors.ErrProfessorNotFound
	}

	status := models.ProjectStatusDraft
	if req.Status != "" {
		status = models.ProjectStatus(req.Status)
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	project := &models.Project{
		ProfessorID:         ownerID,
		Title:               req.Title,
		Description:         req.Description,
		Categories:          req.Categories,
		Requirements:        req.Requirements,
		Status:              status,
		Positions:           req.Positions,
		ApplicationDeadline: req.ApplicationDeadline,
		IsVisible:           visible,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("operation", "createProject").Str("professorId", professorID).Msg("Failed to create project")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	resp := dto.FromProject(project)
	return &resp, nil
}

// GetByID returns a project. Unpublished or invisible projects are only
// returned to their owner; anyone else sees not-found.
func (s *projectServiceImpl) GetByID(ctx context.Context, projectID, requesterID string) (*dto.ProjectResponse, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	publiclyVisible := project.Status == models.ProjectStatusPublished && project.IsVisible
	if !publiclyVisible && project.ProfessorID.Hex() != requesterID {
		return nil, apperrors.ErrProjectNotFound
	}

	resp := dto.FromProject(project)
	return &resp, nil
}

// List returns published, visible projects matching the filter.
func (s *projectServiceImpl) List(ctx context.Context, filter *dto.ProjectFilterRequest) ([]dto.ProjectResponse, int64, error) {
	skip, limit := helpers.SkipLimit(filter.Page, filter.PageSize)

	published := models.ProjectStatusPublished
	repoFilter := repositories.ProjectFilter{
		Status:      &published,
		Category:    filter.Category,
		Search:      filter.Search,
		VisibleOnly: true,
		Skip:        skip,
		Limit:       limit,
	}

	projects, total, err := s.projectRepo.List(ctx, repoFilter)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "listProjects").Msg("Failed to list projects")
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return toProjectResponses(projects), total, nil
}

// ListOwn returns the professor's projects, in every status unless the
// filter narrows to one.
func (s *projectServiceImpl) ListOwn(ctx context.Context, professorID string, filter *dto.ProjectFilterRequest) ([]dto.ProjectResponse, int64, error) {
	ownerID, err := primitive.ObjectIDFromHex(professorID)
	if err != nil {
		return nil, 0, apperrors.ErrProfessorNotFound
	}

	skip, limit := helpers.SkipLimit(filter.Page, filter.PageSize)
	repoFilter := repositories.ProjectFilter{
		ProfessorID: &ownerID,
		Skip:        skip,
		Limit:       limit,
	}
	if filter.Status != nil {
		status := models.ProjectStatus(*filter.Status)
		repoFilter.Status = &status
	}

	projects, total, err := s.projectRepo.List(ctx, repoFilter)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "listOwnProjects").Str("professorId", professorID).Msg("Failed to list projects")
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return toProjectResponses(projects), total, nil
}

// Update applies a partial update to an owned project.
func (s *projectServiceImpl) Update(ctx context.Context, professorID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.loadOwnedProject(ctx, professorID, projectID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Categories != nil {
		fields["categories"] = *req.Categories
	}
	if req.Requirements != nil {
		fields["requirements"] = *req.Requirements
	}
	if req.Status != nil {
		fields["status"] = models.ProjectStatus(*req.Status)
	}
	if req.Positions != nil {
		fields["positions"] = *req.Positions
	}
	if req.ApplicationDeadline != nil {
		fields["applicationDeadline"] = *req.ApplicationDeadline
	}
	if req.IsVisible != nil {
		fields["isVisible"] = *req.IsVisible
	}

	if len(fields) > 0 {
		if err := s.projectRepo.UpdateFields(ctx, project.ID, fields); err != nil {
			if apperrors.Is(err, apperrors.ErrProjectNotFound) {
				return nil, err
			}
			s.logger.Error().Err(err).Str("operation", "updateProject").Str("projectId", projectID).Msg("Failed to update project")
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
	}

	updated, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProject(updated)
	return &resp, nil
}

// Delete removes an owned project and its attached files. File cleanup is
// best-effort; a failed disk delete never blocks the document delete.
func (s *projectServiceImpl) Delete(ctx context.Context, professorID, projectID string) error {
	project, err := s.loadOwnedProject(ctx, professorID, projectID)
	if err != nil {
		return err
	}

	for _, f := range project.Files {
		if err := s.fileStorage.DeleteFile(f.FileName); err != nil {
			s.logger.Error().Err(err).Str("projectId", projectID).Str("fileName", f.FileName).Msg("Failed to delete project file from storage")
		}
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		if apperrors.Is(err, apperrors.ErrProjectNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("operation", "deleteProject").Str("projectId", projectID).Msg("Failed to delete project")
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddFile validates and stores an attachment on an owned project.
func (s *projectServiceImpl) AddFile(ctx context.Context, professorID, projectID string, fileHeader *multipart.FileHeader) (*dto.ProjectResponse, error) {
	project, err := s.loadOwnedProject(ctx, professorID, projectID)
	if err != nil {
		return nil, err
	}

	storedName, err := s.fileStorage.SaveFile(fileHeader)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidFile) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("operation", "addProjectFile").Str("projectId", projectID).Msg("Failed to save file")
		return nil, fmt.Errorf("failed to add file: %w", err)
	}

	file := models.ProjectFile{
		FileName:     storedName,
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		UploadedAt:   time.Now(),
	}

	if err := s.projectRepo.AddFile(ctx, project.ID, file); err != nil {
		s.logger.Error().Err(err).Str("operation", "addProjectFile").Str("projectId", projectID).Msg("Failed to attach file")
		return nil, fmt.Errorf("failed to add file: %w", err)
	}

	updated, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProject(updated)
	return &resp, nil
}

// RemoveFile detaches a file from an owned project and deletes it from disk.
func (s *projectServiceImpl) RemoveFile(ctx context.Context, professorID, projectID, fileName string) error {
	project, err := s.loadOwnedProject(ctx, professorID, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.RemoveFile(ctx, project.ID, fileName); err != nil {
		if apperrors.Is(err, apperrors.ErrProjectNotFound, apperrors.ErrProjectFileNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("operation", "removeProjectFile").Str("projectId", projectID).Msg("Failed to detach file")
		return fmt.Errorf("failed to remove file: %w", err)
	}

	if err := s.fileStorage.DeleteFile(fileName); err != nil {
		s.logger.Error().Err(err).Str("projectId", projectID).Str("fileName", fileName).Msg("Failed to delete file from storage")
	}

	return nil
}

// loadOwnedProject loads a project and verifies ownership. A mismatch is
// reported as not-found so callers cannot probe for foreign projects.
func (s *projectServiceImpl) loadOwnedProject(ctx context.Context, professorID, projectID string) (*models.Project, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ProfessorID.Hex() != professorID {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *projectServiceImpl) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, apperrors.ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "loadProject").Str("projectId", projectID).Msg("Failed to load project")
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func toProjectResponses(projects []*models.Project) []dto.ProjectResponse {
	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, dto.FromProject(p))
	}
	return responses
}
