package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/email"
)

type fakeApplicationStore struct {
	mu           sync.Mutex
	applications map[primitive.ObjectID]*models.Application
	createErr    error
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: map[primitive.ObjectID]*models.Application{}}
}

func (f *fakeApplicationStore) Create(_ context.Context, application *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	application.ID = primitive.NewObjectID()
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	copied := *application
	f.applications[application.ID] = &copied
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.applications[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeApplicationStore) ListByProject(_ context.Context, projectID primitive.ObjectID, status *models.ApplicationStatus) ([]*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Application
	for _, a := range f.applications {
		if a.ProjectID != projectID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

type fakeProjectGetter struct {
	projects map[primitive.ObjectID]*models.Project
}

func (f *fakeProjectGetter) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	if p, ok := f.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

type fakeProfessorGetter struct {
	professors map[primitive.ObjectID]*models.Professor
}

func (f *fakeProfessorGetter) GetByID(_ context.Context, id primitive.ObjectID) (*models.Professor, error) {
	if p, ok := f.professors[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

type recordedDelta struct {
	projectID primitive.ObjectID
	oldStatus *models.ApplicationStatus
	newStatus models.ApplicationStatus
}

type fakeStatusRecorder struct {
	mu      sync.Mutex
	calls   []recordedDelta
	failure error
}

func (f *fakeStatusRecorder) RecordStatusChange(_ context.Context, projectID primitive.ObjectID, oldStatus *models.ApplicationStatus, newStatus models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	f.calls = append(f.calls, recordedDelta{projectID: projectID, oldStatus: oldStatus, newStatus: newStatus})
	return nil
}

type fakeTrackingCreator struct {
	tokens  int
	failure error
}

func (f *fakeTrackingCreator) CreateTrackingToken(_ context.Context, _, _ primitive.ObjectID) (string, error) {
	if f.failure != nil {
		return "", f.failure
	}
	f.tokens++
	return "track-token", nil
}

type fakeMailer struct {
	mu            sync.Mutex
	confirmations []email.ConfirmationData
	notifications []email.NotificationData
	statusUpdates []email.StatusUpdateData
	failure       error
}

func (f *fakeMailer) SendApplicationConfirmation(data email.ConfirmationData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}

func (f *fakeMailer) SendApplicationNotification(data email.NotificationData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	f.notifications = append(f.notifications, data)
	return nil
}

func (f *fakeMailer) SendStatusUpdate(data email.StatusUpdateData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	f.statusUpdates = append(f.statusUpdates, data)
	return nil
}

type fakeDownloadLinker struct {
	claims map[string]*auth.DownloadClaims
}

func (f *fakeDownloadLinker) GenerateDownloadURL(professorID, projectID, applicationID string) (string, error) {
	return "http://api.test/projects/" + projectID + "/applications/" + applicationID + "/resume?token=signed", nil
}

func (f *fakeDownloadLinker) VerifyToken(tokenString string) *auth.DownloadClaims {
	return f.claims[tokenString]
}

type fakeFileStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	saveErr error
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: map[string][]byte{}}
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := "stored-" + fileHeader.Filename
	f.files[name] = []byte("resume content")
	return name, nil
}

func (f *fakeFileStorage) GetFile(fileName string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if content, ok := f.files[fileName]; ok {
		return content, "application/pdf", nil
	}
	return nil, "", apperrors.ErrResumeNotFound
}

func (f *fakeFileStorage) DeleteFile(fileName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, fileName)
	f.deleted = append(f.deleted, fileName)
	return nil
}

type applicationFixture struct {
	service      ApplicationService
	applications *fakeApplicationStore
	projects     *fakeProjectGetter
	professors   *fakeProfessorGetter
	analytics    *fakeStatusRecorder
	tracking     *fakeTrackingCreator
	mailer       *fakeMailer
	downloads    *fakeDownloadLinker
	storage      *fakeFileStorage
	professor    *models.Professor
	project      *models.Project
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()

	professor := &models.Professor{
		ID:        primitive.NewObjectID(),
		Email:     "a.morrow@miami.edu",
		FirstName: "Alex",
		LastName:  "Morrow",
		IsActive:  true,
	}
	deadline := time.Now().Add(48 * time.Hour)
	project := &models.Project{
		ID:                  primitive.NewObjectID(),
		ProfessorID:         professor.ID,
		Title:               "Coral Reef Genomics",
		Status:              models.ProjectStatusPublished,
		Positions:           2,
		ApplicationDeadline: &deadline,
		IsVisible:           true,
	}

	f := &applicationFixture{
		applications: newFakeApplicationStore(),
		projects:     &fakeProjectGetter{projects: map[primitive.ObjectID]*models.Project{project.ID: project}},
		professors:   &fakeProfessorGetter{professors: map[primitive.ObjectID]*models.Professor{professor.ID: professor}},
		analytics:    &fakeStatusRecorder{},
		tracking:     &fakeTrackingCreator{},
		mailer:       &fakeMailer{},
		downloads:    &fakeDownloadLinker{claims: map[string]*auth.DownloadClaims{}},
		storage:      newFakeFileStorage(),
		professor:    professor,
		project:      project,
	}
	f.service = NewApplicationService(
		f.applications, f.projects, f.professors,
		f.analytics, f.tracking, f.mailer, f.downloads, f.storage,
		"http://api.test/api/v1", zerolog.Nop(),
	)
	return f
}

func sampleRequest() *dto.CreateApplicationRequest {
	req := &dto.CreateApplicationRequest{}
	req.Student.FirstName = "Jordan"
	req.Student.LastName = "Lee"
	req.Student.Email = "j.lee@miami.edu"
	req.Student.CNumber = "C12345678"
	req.Student.Major = "Biology"
	return req
}

func sampleResume() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "resume.pdf",
		Size:     2048,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
	}
}

func TestCreateApplication(t *testing.T) {
	f := newApplicationFixture(t)

	resp, err := f.service.Create(context.Background(), f.project.ID.Hex(), sampleRequest(), sampleResume())
	require.NoError(t, err)
	require.Equal(t, string(models.ApplicationStatusPending), resp.Status)
	require.Equal(t, f.project.ID.Hex(), resp.ProjectID)

	stored, err := f.applications.GetByID(context.Background(), mustObjectID(t, resp.ID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "stored-resume.pdf", stored.ResumeFile)

	// One application counted, nothing else
	require.Len(t, f.analytics.calls, 1)
	require.Nil(t, f.analytics.calls[0].oldStatus)
	require.Equal(t, models.ApplicationStatusPending, f.analytics.calls[0].newStatus)

	// Exactly one email to the student and one to the professor
	require.Len(t, f.mailer.confirmations, 1)
	require.Equal(t, "j.lee@miami.edu", f.mailer.confirmations[0].StudentEmail)
	require.Len(t, f.mailer.notifications, 1)
	notification := f.mailer.notifications[0]
	require.Equal(t, "a.morrow@miami.edu", notification.ProfessorEmail)
	require.Contains(t, notification.DownloadURL, "/resume?token=")
	require.Equal(t, "http://api.test/api/v1/track/track-token", notification.TrackingURL)
	require.Equal(t, 1, f.tracking.tokens)
}

func TestCreateApplicationRejectsDraftProject(t *testing.T) {
	f := newApplicationFixture(t)
	f.project.Status = models.ProjectStatusDraft

	_, err := f.service.Create(context.Background(), f.project.ID.Hex(), sampleRequest(), sampleResume())
	require.ErrorIs(t, err, apperrors.ErrProjectNotAcceptingApplications)

	require.Empty(t, f.applications.applications)
	require.Empty(t, f.storage.files)
	require.Empty(t, f.analytics.calls)
	require.Empty(t, f.mailer.confirmations)
	require.Empty(t, f.mailer.notifications)
}

func TestCreateApplicationRejectsPassedDeadline(t *testing.T) {
	f := newApplicationFixture(t)
	past := time.Now().Add(-time.Hour)
	f.project.ApplicationDeadline = &past

	_, err := f.service.Create(context.Background(), f.project.ID.Hex(), sampleRequest(), sampleResume())
	require.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
	require.Empty(t, f.applications.applications)
}

func TestCreateApplicationUnknownProject(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.service.Create(context.Background(), primitive.NewObjectID().Hex(), sampleRequest(), sampleResume())
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestCreateApplicationSurvivesSideEffectFailures(t *testing.T) {
	f := newApplicationFixture(t)
	f.mailer.failure = errors.New("smtp down")
	f.analytics.failure = errors.New("analytics down")
	f.tracking.failure = errors.New("tracking down")

	resp, err := f.service.Create(context.Background(), f.project.ID.Hex(), sampleRequest(), sampleResume())
	require.NoError(t, err)

	stored, err := f.applications.GetByID(context.Background(), mustObjectID(t, resp.ID))
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateApplicationCleansUpResumeOnInsertFailure(t *testing.T) {
	f := newApplicationFixture(t)
	f.applications.createErr = errors.New("write failed")

	_, err := f.service.Create(context.Background(), f.project.ID.Hex(), sampleRequest(), sampleResume())
	require.Error(t, err)
	require.Contains(t, f.storage.deleted, "stored-resume.pdf")
}

func TestUpdateStatusAcceptsPendingApplication(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	resp, err := f.service.UpdateStatus(context.Background(),
		f.professor.ID.Hex(), f.project.ID.Hex(), application.ID,
		models.ApplicationStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, string(models.ApplicationStatusAccepted), resp.Status)

	last := f.analytics.calls[len(f.analytics.calls)-1]
	require.NotNil(t, last.oldStatus)
	require.Equal(t, models.ApplicationStatusPending, *last.oldStatus)
	require.Equal(t, models.ApplicationStatusAccepted, last.newStatus)

	require.Len(t, f.mailer.statusUpdates, 1)
	require.Equal(t, "ACCEPTED", f.mailer.statusUpdates[0].NewStatus)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	_, err := f.service.UpdateStatus(context.Background(),
		f.professor.ID.Hex(), f.project.ID.Hex(), application.ID,
		models.ApplicationStatusRejected)
	require.NoError(t, err)

	// REJECTED is terminal
	_, err = f.service.UpdateStatus(context.Background(),
		f.professor.ID.Hex(), f.project.ID.Hex(), application.ID,
		models.ApplicationStatusAccepted)
	require.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)

	stored, err := f.applications.GetByID(context.Background(), mustObjectID(t, application.ID))
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusRejected, stored.Status)
}

func TestUpdateStatusHidesForeignProjects(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	_, err := f.service.UpdateStatus(context.Background(),
		primitive.NewObjectID().Hex(), f.project.ID.Hex(), application.ID,
		models.ApplicationStatusAccepted)
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestFindProjectApplicationsFiltersByStatus(t *testing.T) {
	f := newApplicationFixture(t)
	first := submitApplication(t, f)
	submitApplication(t, f)

	_, err := f.service.UpdateStatus(context.Background(),
		f.professor.ID.Hex(), f.project.ID.Hex(), first.ID,
		models.ApplicationStatusAccepted)
	require.NoError(t, err)

	accepted := models.ApplicationStatusAccepted
	list, err := f.service.FindProjectApplications(context.Background(), f.professor.ID.Hex(), f.project.ID.Hex(), &accepted)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, first.ID, list[0].ID)

	all, err := f.service.FindProjectApplications(context.Background(), f.professor.ID.Hex(), f.project.ID.Hex(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetResumeServesOwner(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	resume, err := f.service.GetResume(context.Background(), f.professor.ID.Hex(), f.project.ID.Hex(), application.ID)
	require.NoError(t, err)
	require.Equal(t, []byte("resume content"), resume.Content)
	require.Equal(t, "application/pdf", resume.MimeType)
	require.Equal(t, "Jordan_Lee_resume.pdf", resume.FileName)
}

func TestGetResumeHidesForeignApplications(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	_, err := f.service.GetResume(context.Background(), primitive.NewObjectID().Hex(), f.project.ID.Hex(), application.ID)
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestGetResumeByToken(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	f.downloads.claims["good"] = &auth.DownloadClaims{
		ProfessorID:   f.professor.ID.Hex(),
		ApplicationID: application.ID,
	}

	resume, err := f.service.GetResumeByToken(context.Background(), f.project.ID.Hex(), application.ID, "good")
	require.NoError(t, err)
	require.Equal(t, []byte("resume content"), resume.Content)
}

func TestGetResumeByTokenRejectsInvalidToken(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	_, err := f.service.GetResumeByToken(context.Background(), f.project.ID.Hex(), application.ID, "bogus")
	require.ErrorIs(t, err, apperrors.ErrInvalidDownloadToken)
}

func TestGetResumeByTokenRejectsMismatchedApplication(t *testing.T) {
	f := newApplicationFixture(t)
	application := submitApplication(t, f)

	f.downloads.claims["other"] = &auth.DownloadClaims{
		ProfessorID:   f.professor.ID.Hex(),
		ApplicationID: primitive.NewObjectID().Hex(),
	}

	_, err := f.service.GetResumeByToken(context.Background(), f.project.ID.Hex(), application.ID, "other")
	require.ErrorIs(t, err, apperrors.ErrInvalidDownloadToken)
}

func submitApplication(t *testing.T, f *applicationFixture) *dto.ApplicationResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), f.project.ID.Hex(), sampleRequest(), sampleResume())
	require.NoError(t, err)
	return resp
}

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}
