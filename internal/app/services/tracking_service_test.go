package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/repositories"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

type fakeTrackingStore struct {
	byToken map[string]*models.EmailTracking
}

func newFakeTrackingStore() *fakeTrackingStore {
	return &fakeTrackingStore{byToken: map[string]*models.EmailTracking{}}
}

func (f *fakeTrackingStore) Create(_ context.Context, tracking *models.EmailTracking) error {
	tracking.ID = primitive.NewObjectID()
	tracking.CreatedAt = time.Now()
	copied := *tracking
	f.byToken[tracking.Token] = &copied
	return nil
}

func (f *fakeTrackingStore) TrackClick(_ context.Context, token string, now time.Time) (*models.EmailTracking, error) {
	tracking, ok := f.byToken[token]
	if !ok {
		return nil, apperrors.ErrTrackingTokenNotFound
	}
	tracking.Clicks++
	tracking.HasBeenViewed = true
	tracking.LastClickedAt = &now
	tracking.ClickTimestamps = append(tracking.ClickTimestamps, now)
	if tracking.FirstClickedAt == nil {
		tracking.FirstClickedAt = &now
	}
	copied := *tracking
	return &copied, nil
}

func (f *fakeTrackingStore) GlobalStats(_ context.Context) (models.ClickStats, error) {
	var stats models.ClickStats
	for _, tr := range f.byToken {
		stats.EmailsSent++
		stats.TotalClicks += int64(tr.Clicks)
		if tr.HasBeenViewed {
			stats.UniqueViews++
		}
	}
	return stats, nil
}

func (f *fakeTrackingStore) PerProjectStats(_ context.Context) ([]repositories.ProjectClickStats, error) {
	byProject := map[primitive.ObjectID]*repositories.ProjectClickStats{}
	for _, tr := range f.byToken {
		s, ok := byProject[tr.ProjectID]
		if !ok {
			s = &repositories.ProjectClickStats{ProjectID: tr.ProjectID}
			byProject[tr.ProjectID] = s
		}
		s.EmailsSent++
		s.TotalClicks += int64(tr.Clicks)
		if tr.HasBeenViewed {
			s.UniqueViews++
		}
	}
	var out []repositories.ProjectClickStats
	for _, s := range byProject {
		out = append(out, *s)
	}
	return out, nil
}

func TestCreateTrackingTokenIsUnique(t *testing.T) {
	store := newFakeTrackingStore()
	service := NewTrackingService(store, zerolog.Nop())

	applicationID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()

	first, err := service.CreateTrackingToken(context.Background(), applicationID, projectID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := service.CreateTrackingToken(context.Background(), applicationID, projectID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.Equal(t, applicationID, store.byToken[first].ApplicationID)
	require.Equal(t, projectID, store.byToken[first].ProjectID)
}

func TestTrackClickAccumulates(t *testing.T) {
	store := newFakeTrackingStore()
	service := NewTrackingService(store, zerolog.Nop())

	token, err := service.CreateTrackingToken(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	require.NoError(t, err)

	first, err := service.TrackClick(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, 1, first.Clicks)
	require.True(t, first.HasBeenViewed)
	require.NotNil(t, first.FirstClickedAt)

	second, err := service.TrackClick(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, 2, second.Clicks)
	require.Len(t, second.ClickTimestamps, 2)

	// First click time never moves
	require.Equal(t, *first.FirstClickedAt, *second.FirstClickedAt)
	require.False(t, second.LastClickedAt.Before(*first.LastClickedAt))
}

func TestTrackClickUnknownToken(t *testing.T) {
	service := NewTrackingService(newFakeTrackingStore(), zerolog.Nop())

	_, err := service.TrackClick(context.Background(), "no-such-token")
	require.ErrorIs(t, err, apperrors.ErrTrackingTokenNotFound)
}

func TestGetGlobalClickStats(t *testing.T) {
	store := newFakeTrackingStore()
	service := NewTrackingService(store, zerolog.Nop())

	projectA := primitive.NewObjectID()
	projectB := primitive.NewObjectID()

	tokenA, err := service.CreateTrackingToken(context.Background(), primitive.NewObjectID(), projectA)
	require.NoError(t, err)
	_, err = service.CreateTrackingToken(context.Background(), primitive.NewObjectID(), projectB)
	require.NoError(t, err)

	_, err = service.TrackClick(context.Background(), tokenA)
	require.NoError(t, err)
	_, err = service.TrackClick(context.Background(), tokenA)
	require.NoError(t, err)

	global, perProject, err := service.GetGlobalClickStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), global.EmailsSent)
	require.Equal(t, int64(2), global.TotalClicks)
	require.Equal(t, int64(1), global.UniqueViews)
	require.Len(t, perProject, 2)
}
