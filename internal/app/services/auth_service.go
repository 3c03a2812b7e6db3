package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	pkgAuth "github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type professorByEmailFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.Professor, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	professorRepo professorByEmailFinder
	jwtService    *pkgAuth.JWTService
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(professorRepo professorByEmailFinder, jwtService *pkgAuth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		professorRepo: professorRepo,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// Login validates professor credentials and issues a bearer token. The
// response never carries the password hash. Wrong email and wrong password
// are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	professor, err := s.professorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "login").Msg("Failed to look up professor")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if professor == nil || !pkgAuth.CheckPassword(professor.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !professor.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(professor)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "login").Str("professorId", professor.ID.Hex()).Msg("Failed to generate access token")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Professor:   dto.FromProfessor(professor),
	}, nil
}
