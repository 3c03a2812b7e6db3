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
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/repositories"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

type fakeProjectStore struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]*models.Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[primitive.ObjectID]*models.Project{}}
}

func (f *fakeProjectStore) Create(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeProjectStore) List(_ context.Context, filter repositories.ProjectFilter) ([]*models.Project, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Project
	for _, p := range f.projects {
		if filter.ProfessorID != nil && p.ProfessorID != *filter.ProfessorID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.VisibleOnly && !p.IsVisible {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return apperrors.ErrProjectNotFound
	}
	if v, ok := fields["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := fields["status"]; ok {
		p.Status = v.(models.ProjectStatus)
	}
	if v, ok := fields["positions"]; ok {
		p.Positions = v.(int)
	}
	if v, ok := fields["isVisible"]; ok {
		p.IsVisible = v.(bool)
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return apperrors.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) AddFile(_ context.Context, id primitive.ObjectID, file models.ProjectFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return apperrors.ErrProjectNotFound
	}
	p.Files = append(p.Files, file)
	return nil
}

func (f *fakeProjectStore) RemoveFile(_ context.Context, id primitive.ObjectID, fileName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return apperrors.ErrProjectNotFound
	}
	for i, file := range p.Files {
		if file.FileName == fileName {
			p.Files = append(p.Files[:i], p.Files[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrProjectFileNotFound
}

func newProjectFixture() (ProjectService, *fakeProjectStore, *fakeFileStorage) {
	store := newFakeProjectStore()
	storage := newFakeFileStorage()
	return NewProjectService(store, storage, zerolog.Nop()), store, storage
}

func TestCreateProjectDefaultsToDraft(t *testing.T) {
	service, _, _ := newProjectFixture()
	owner := primitive.NewObjectID()

	resp, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Coral Reef Genomics",
		Description: "Sequencing reef-building corals",
		Positions:   2,
	})
	require.NoError(t, err)
	require.Equal(t, string(models.ProjectStatusDraft), resp.Status)
	require.True(t, resp.IsVisible)
	require.False(t, resp.AcceptsApplications)
}

func TestGetProjectHidesDraftsFromStrangers(t *testing.T) {
	service, _, _ := newProjectFixture()
	owner := primitive.NewObjectID()

	created, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Draft Project",
		Description: "Not published yet",
		Positions:   1,
	})
	require.NoError(t, err)

	// Owner sees the draft
	resp, err := service.GetByID(context.Background(), created.ID, owner.Hex())
	require.NoError(t, err)
	require.Equal(t, created.ID, resp.ID)

	// Anyone else gets not-found
	_, err = service.GetByID(context.Background(), created.ID, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	_, err = service.GetByID(context.Background(), created.ID, "")
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestListReturnsOnlyPublishedVisibleProjects(t *testing.T) {
	service, store, _ := newProjectFixture()
	owner := primitive.NewObjectID()

	published, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Published",
		Description: "Visible to students",
		Positions:   1,
		Status:      string(models.ProjectStatusPublished),
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Draft",
		Description: "Still private",
		Positions:   1,
	})
	require.NoError(t, err)

	hidden := false
	hiddenResp, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Hidden",
		Description: "Published but invisible",
		Positions:   1,
		Status:      string(models.ProjectStatusPublished),
		IsVisible:   &hidden,
	})
	require.NoError(t, err)
	_ = hiddenResp

	list, total, err := service.List(context.Background(), &dto.ProjectFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	require.Equal(t, published.ID, list[0].ID)

	require.Len(t, store.projects, 3)
}

func TestListOwnFiltersByStatus(t *testing.T) {
	service, _, _ := newProjectFixture()
	owner := primitive.NewObjectID()

	published, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Published",
		Description: "Live project",
		Positions:   1,
		Status:      string(models.ProjectStatusPublished),
	})
	require.NoError(t, err)

	draft, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Draft",
		Description: "Still private",
		Positions:   1,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), primitive.NewObjectID().Hex(), &dto.CreateProjectRequest{
		Title:       "Foreign",
		Description: "Someone else's draft",
		Positions:   1,
	})
	require.NoError(t, err)

	// No status filter: every own project, drafts included
	list, total, err := service.ListOwn(context.Background(), owner.Hex(), &dto.ProjectFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, list, 2)

	status := string(models.ProjectStatusDraft)
	list, total, err = service.ListOwn(context.Background(), owner.Hex(), &dto.ProjectFilterRequest{Status: &status, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	require.Equal(t, draft.ID, list[0].ID)
	require.NotEqual(t, published.ID, list[0].ID)
}

func TestUpdateProjectOwnershipMiss(t *testing.T) {
	service, _, _ := newProjectFixture()
	owner := primitive.NewObjectID()

	created, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "Mine",
		Description: "Owned project",
		Positions:   1,
	})
	require.NoError(t, err)

	title := "Stolen"
	_, err = service.Update(context.Background(), primitive.NewObjectID().Hex(), created.ID, &dto.UpdateProjectRequest{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestDeleteProjectRemovesStoredFiles(t *testing.T) {
	service, store, storage := newProjectFixture()
	owner := primitive.NewObjectID()

	created, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "With Files",
		Description: "Has an attachment",
		Positions:   1,
	})
	require.NoError(t, err)

	updated, err := service.AddFile(context.Background(), owner.Hex(), created.ID, sampleResume())
	require.NoError(t, err)
	require.Len(t, updated.Files, 1)

	require.NoError(t, service.Delete(context.Background(), owner.Hex(), created.ID))
	require.Empty(t, store.projects)
	require.Contains(t, storage.deleted, "stored-resume.pdf")
}

func TestRemoveFileUnknownName(t *testing.T) {
	service, _, _ := newProjectFixture()
	owner := primitive.NewObjectID()

	created, err := service.Create(context.Background(), owner.Hex(), &dto.CreateProjectRequest{
		Title:       "No Files",
		Description: "Nothing attached",
		Positions:   1,
	})
	require.NoError(t, err)

	err = service.RemoveFile(context.Background(), owner.Hex(), created.ID, "missing.pdf")
	require.ErrorIs(t, err, apperrors.ErrProjectFileNotFound)
}
