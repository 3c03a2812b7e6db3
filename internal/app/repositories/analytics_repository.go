package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/db"
)

// AnalyticsDelta is the set of counter increments produced by one
// application event.
type AnalyticsDelta struct {
	Applications   int64
	Interviews     int64
	AcceptedOffers int64
	DeclinedOffers int64
}

// IsZero reports whether the delta would change nothing.
func (d AnalyticsDelta) IsZero() bool {
	return d == AnalyticsDelta{}
}

// AnalyticsRepository handles document-store access for per-project
// application counters.
type AnalyticsRepository struct {
	collection *mongo.Collection
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(database *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{collection: database.Collection(db.CollectionAnalytics)}
}

// ApplyDelta upserts the project's counter document and applies the
// increments atomically. The document is created lazily on the first
// application against the project.
func (r *AnalyticsRepository) ApplyDelta(ctx context.Context, projectID primitive.ObjectID, delta AnalyticsDelta) error {
	inc := bson.M{}
	if delta.Applications != 0 {
		inc["totalApplications"] = delta.Applications
	}
	if delta.Interviews != 0 {
		inc["totalInterviews"] = delta.Interviews
	}
	if delta.AcceptedOffers != 0 {
		inc["totalAcceptedOffers"] = delta.AcceptedOffers
	}
	if delta.DeclinedOffers != 0 {
		inc["totalDeclinedOffers"] = delta.DeclinedOffers
	}
	if len(inc) == 0 {
		return nil
	}

	update := bson.M{
		"$inc":         inc,
		"$set":         bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"projectId": projectID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to apply analytics delta: %w", err)
	}
	return nil
}

// GetByProject returns a project's counters; (nil, nil) when no application
// has been recorded yet.
func (r *AnalyticsRepository) GetByProject(ctx context.Context, projectID primitive.ObjectID) (*models.ApplicationAnalytics, error) {
	var analytics models.ApplicationAnalytics
	err := r.collection.FindOne(ctx, bson.M{"projectId": projectID}).Decode(&analytics)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find analytics: %w", err)
	}
	return &analytics, nil
}

// ListAll returns every project counter document.
func (r *AnalyticsRepository) ListAll(ctx context.Context) ([]*models.ApplicationAnalytics, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics: %w", err)
	}

	var all []*models.ApplicationAnalytics
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode analytics: %w", err)
	}

	return all, nil
}
