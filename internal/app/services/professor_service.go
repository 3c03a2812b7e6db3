package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	pkgAuth "github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
)

// emailDomain restricts registration to university accounts.
const emailDomain = "miami.edu"

// ProfessorService defines the interface for professor account operations
type ProfessorService interface {
	Register(ctx context.Context, req *dto.RegisterProfessorRequest) (*dto.ProfessorResponse, error)
	GetProfile(ctx context.Context, professorID string) (*dto.ProfessorResponse, error)
	UpdateProfile(ctx context.Context, professorID string, req *dto.UpdateProfileRequest) (*dto.ProfessorResponse, error)
	ChangePassword(ctx context.Context, professorID string, req *dto.ChangePasswordRequest) error
	SetActive(ctx context.Context, professorID string, active bool) error
}

type professorStore interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByEmail(ctx context.Context, email string) (*models.Professor, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Professor, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// professorServiceImpl implements ProfessorService
type professorServiceImpl struct {
	professorRepo professorStore
	adminPassword string
	logger        zerolog.Logger
}

// NewProfessorService creates a new ProfessorService. adminPassword gates
// registration.
func NewProfessorService(professorRepo professorStore, adminPassword string, logger zerolog.Logger) ProfessorService {
	return &professorServiceImpl{
		professorRepo: professorRepo,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// Register creates a professor account. Registration is gated by the admin
// password and restricted to the university email domain.
func (s *professorServiceImpl) Register(ctx context.Context, req *dto.RegisterProfessorRequest) (*dto.ProfessorResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.AdminPassword), []byte(s.adminPassword)) != 1 {
		return nil, apperrors.ErrInvalidAdminPassword
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.HasSuffix(email, "@"+emailDomain) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("email must belong to the %s domain", emailDomain))
	}

	hash, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "registerProfessor").Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to register professor: %w", err)
	}

	professor := &models.Professor{
		Email:         email,
		Password:      hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Department:    req.Department,
		Title:         req.Title,
		ResearchAreas: req.ResearchAreas,
		Office:        req.Office,
		Publications:  req.Publications,
		Bio:           req.Bio,
		IsActive:      true,
	}

	if err := s.professorRepo.Create(ctx, professor); err != nil {
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("operation", "registerProfessor").Str("email", email).Msg("Failed to create professor")
		return nil, fmt.Errorf("failed to register professor: %w", err)
	}

	resp := dto.FromProfessor(professor)
	return &resp, nil
}

// GetProfile returns the logged-in professor's account.
func (s *professorServiceImpl) GetProfile(ctx context.Context, professorID string) (*dto.ProfessorResponse, error) {
	professor, err := s.loadProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProfessor(professor)
	return &resp, nil
}

// UpdateProfile applies a partial update. Email and identity fields are
// immutable.
func (s *professorServiceImpl) UpdateProfile(ctx context.Context, professorID string, req *dto.UpdateProfileRequest) (*dto.ProfessorResponse, error) {
	professor, err := s.loadProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["lastName"] = *req.LastName
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Office != nil {
		fields["office"] = *req.Office
	}
	if req.ResearchAreas != nil {
		fields["researchAreas"] = *req.ResearchAreas
	}
	if req.Publications != nil {
		fields["publications"] = *req.Publications
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}

	if len(fields) > 0 {
		if err := s.professorRepo.UpdateFields(ctx, professor.ID, fields); err != nil {
			if apperrors.Is(err, apperrors.ErrProfessorNotFound) {
				return nil, err
			}
			s.logger.Error().Err(err).Str("operation", "updateProfile").Str("professorId", professorID).Msg("Failed to update profile")
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	updated, err := s.loadProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProfessor(updated)
	return &resp, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *professorServiceImpl) ChangePassword(ctx context.Context, professorID string, req *dto.ChangePasswordRequest) error {
	professor, err := s.loadProfessor(ctx, professorID)
	if err != nil {
		return err
	}

	if !pkgAuth.CheckPassword(professor.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := pkgAuth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "changePassword").Str("professorId", professorID).Msg("Failed to hash password")
		return fmt.Errorf("failed to change password: %w", err)
	}

	if err := s.professorRepo.UpdatePassword(ctx, professor.ID, hash); err != nil {
		s.logger.Error().Err(err).Str("operation", "changePassword").Str("professorId", professorID).Msg("Failed to store password")
		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}

// SetActive toggles the account's active flag. Inactive professors cannot
// log in.
func (s *professorServiceImpl) SetActive(ctx context.Context, professorID string, active bool) error {
	professor, err := s.loadProfessor(ctx, professorID)
	if err != nil {
		return err
	}

	if err := s.professorRepo.SetActive(ctx, professor.ID, active); err != nil {
		s.logger.Error().Err(err).Str("operation", "setActive").Str("professorId", professorID).Msg("Failed to toggle account")
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

func (s *professorServiceImpl) loadProfessor(ctx context.Context, professorID string) (*models.Professor, error) {
	id, err := primitive.ObjectIDFromHex(professorID)
	if err != nil {
		return nil, apperrors.ErrProfessorNotFound
	}

	professor, err := s.professorRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "loadProfessor").Str("professorId", professorID).Msg("Failed to load professor")
		return nil, fmt.Errorf("failed to load professor: %w", err)
	}
	if professor == nil {
		return nil, apperrors.ErrProfessorNotFound
	}
	return professor, nil
}
