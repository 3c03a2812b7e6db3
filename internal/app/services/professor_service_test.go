package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	pkgAuth "github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
)

const testAdminPassword = "let-me-in"

type fakeProfessorStore struct {
	mu         sync.Mutex
	professors map[primitive.ObjectID]*models.Professor
}

func newFakeProfessorStore() *fakeProfessorStore {
	return &fakeProfessorStore{professors: map[primitive.ObjectID]*models.Professor{}}
}

func (f *fakeProfessorStore) Create(_ context.Context, professor *models.Professor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.professors {
		if p.Email == professor.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	professor.ID = primitive.NewObjectID()
	professor.CreatedAt = time.Now()
	copied := *professor
	f.professors[professor.ID] = &copied
	return nil
}

func (f *fakeProfessorStore) GetByEmail(_ context.Context, email string) (*models.Professor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.professors {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProfessorStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Professor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.professors[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeProfessorStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.professors[id]
	if !ok {
		return apperrors.ErrProfessorNotFound
	}
	if v, ok := fields["firstName"]; ok {
		p.FirstName = v.(string)
	}
	if v, ok := fields["lastName"]; ok {
		p.LastName = v.(string)
	}
	if v, ok := fields["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := fields["office"]; ok {
		p.Office = v.(string)
	}
	if v, ok := fields["researchAreas"]; ok {
		p.ResearchAreas = v.([]string)
	}
	if v, ok := fields["publications"]; ok {
		p.Publications = v.([]string)
	}
	if v, ok := fields["bio"]; ok {
		p.Bio = v.(string)
	}
	return nil
}

func (f *fakeProfessorStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.professors[id]
	if !ok {
		return apperrors.ErrProfessorNotFound
	}
	p.Password = passwordHash
	return nil
}

func (f *fakeProfessorStore) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.professors[id]
	if !ok {
		return apperrors.ErrProfessorNotFound
	}
	p.IsActive = active
	return nil
}

func validRegistration() *dto.RegisterProfessorRequest {
	return &dto.RegisterProfessorRequest{
		AdminPassword: testAdminPassword,
		Email:         "a.morrow@miami.edu",
		Password:      "correct-horse-battery",
		FirstName:     "Alex",
		LastName:      "Morrow",
		Department:    "Computer Science",
	}
}

func TestRegisterProfessor(t *testing.T) {
	store := newFakeProfessorStore()
	service := NewProfessorService(store, testAdminPassword, zerolog.Nop())

	resp, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.Equal(t, "a.morrow@miami.edu", resp.Email)
	require.True(t, resp.IsActive)

	stored, err := store.GetByEmail(context.Background(), resp.Email)
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse-battery", stored.Password)
	require.True(t, pkgAuth.CheckPassword(stored.Password, "correct-horse-battery"))
}

func TestRegisterProfessorNormalizesEmail(t *testing.T) {
	store := newFakeProfessorStore()
	service := NewProfessorService(store, testAdminPassword, zerolog.Nop())

	req := validRegistration()
	req.Email = "  A.Morrow@Miami.EDU "
	resp, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "a.morrow@miami.edu", resp.Email)
}

func TestRegisterProfessorWrongAdminPassword(t *testing.T) {
	service := NewProfessorService(newFakeProfessorStore(), testAdminPassword, zerolog.Nop())

	req := validRegistration()
	req.AdminPassword = "guess"
	_, err := service.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrInvalidAdminPassword)
}

func TestRegisterProfessorRejectsForeignDomain(t *testing.T) {
	service := NewProfessorService(newFakeProfessorStore(), testAdminPassword, zerolog.Nop())

	req := validRegistration()
	req.Email = "someone@gmail.com"
	_, err := service.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRegisterProfessorDuplicateEmail(t *testing.T) {
	store := newFakeProfessorStore()
	service := NewProfessorService(store, testAdminPassword, zerolog.Nop())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), validRegistration())
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUpdateProfileAppliesPartialChanges(t *testing.T) {
	store := newFakeProfessorStore()
	service := NewProfessorService(store, testAdminPassword, zerolog.Nop())

	created, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	title := "Associate Professor"
	areas := []string{"marine genomics"}
	resp, err := service.UpdateProfile(context.Background(), created.ID, &dto.UpdateProfileRequest{
		Title:         &title,
		ResearchAreas: &areas,
	})
	require.NoError(t, err)
	require.Equal(t, "Associate Professor", resp.Title)
	require.Equal(t, areas, resp.ResearchAreas)
	require.Equal(t, "Alex", resp.FirstName)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	store := newFakeProfessorStore()
	service := NewProfessorService(store, testAdminPassword, zerolog.Nop())

	created, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), created.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "another-password",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = service.ChangePassword(context.Background(), created.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "another-password",
	})
	require.NoError(t, err)

	stored, err := store.GetByEmail(context.Background(), "a.morrow@miami.edu")
	require.NoError(t, err)
	require.True(t, pkgAuth.CheckPassword(stored.Password, "another-password"))
}

func TestGetProfileUnknownProfessor(t *testing.T) {
	service := NewProfessorService(newFakeProfessorStore(), testAdminPassword, zerolog.Nop())

	_, err := service.GetProfile(context.Background(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, apperrors.ErrProfessorNotFound)

	_, err = service.GetProfile(context.Background(), "not-a-hex-id")
	require.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
}
