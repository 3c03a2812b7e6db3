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
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

// ProjectClickStats is one row of the per-project engagement breakdown.
type ProjectClickStats struct {
	ProjectID    primitive.ObjectID `bson:"_id"`
	ProjectTitle string             `bson:"projectTitle"`
	EmailsSent   int64              `bson:"emailsSent"`
	TotalClicks  int64              `bson:"totalClicks"`
	UniqueViews  int64              `bson:"uniqueViews"`
}

// TrackingRepository handles document-store access for email tracking records.
type TrackingRepository struct {
	collection *mongo.Collection
}

// NewTrackingRepository creates a new TrackingRepository.
func NewTrackingRepository(database *mongo.Database) *TrackingRepository {
	return &TrackingRepository{collection: database.Collection(db.CollectionEmailTracking)}
}

// Create inserts a tracking record for a freshly sent notification.
func (r *TrackingRepository) Create(ctx context.Context, tracking *models.EmailTracking) error {
	tracking.CreatedAt = time.Now()

	res, err := r.collection.InsertOne(ctx, tracking)
	if err != nil {
		return fmt.Errorf("failed to insert tracking record: %w", err)
	}

	tracking.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// TrackClick records one click in a single atomic update: the click counter
// increments, the view flag flips on, the timestamp is appended, and
// firstClickedAt is set only when absent ($min over monotone timestamps
// keeps the earliest value). Returns the updated record, or
// apperrors.ErrTrackingTokenNotFound for an unknown token.
func (r *TrackingRepository) TrackClick(ctx context.Context, token string, now time.Time) (*models.EmailTracking, error) {
	update := clickUpdate(now)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tracking models.EmailTracking
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"token": token}, update, opts).Decode(&tracking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTrackingTokenNotFound
		}
		return nil, fmt.Errorf("failed to record click: %w", err)
	}

	return &tracking, nil
}

// clickUpdate builds the single update document applied per click. $min on
// firstClickedAt keeps the earliest timestamp, so only the first click ever
// sets it.
func clickUpdate(now time.Time) bson.M {
	return bson.M{
		"$inc":  bson.M{"clicks": 1},
		"$set":  bson.M{"hasBeenViewed": true, "lastClickedAt": now},
		"$push": bson.M{"clickTimestamps": now},
		"$min":  bson.M{"firstClickedAt": now},
	}
}

// GlobalStats aggregates engagement over every tracking record.
func (r *TrackingRepository) GlobalStats(ctx context.Context) (models.ClickStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"emailsSent":  bson.M{"$sum": 1},
			"totalClicks": bson.M{"$sum": "$clicks"},
			"uniqueViews": bson.M{"$sum": bson.M{"$cond": bson.A{"$hasBeenViewed", 1, 0}}},
		}}},
	}
	return r.aggregateStats(ctx, pipeline)
}

// ProjectStats aggregates engagement for one project.
func (r *TrackingRepository) ProjectStats(ctx context.Context, projectID primitive.ObjectID) (models.ClickStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"projectId": projectID}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"emailsSent":  bson.M{"$sum": 1},
			"totalClicks": bson.M{"$sum": "$clicks"},
			"uniqueViews": bson.M{"$sum": bson.M{"$cond": bson.A{"$hasBeenViewed", 1, 0}}},
		}}},
	}
	return r.aggregateStats(ctx, pipeline)
}

// PerProjectStats groups engagement by project and joins the project title.
func (r *TrackingRepository) PerProjectStats(ctx context.Context) ([]ProjectClickStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$projectId",
			"emailsSent":  bson.M{"$sum": 1},
			"totalClicks": bson.M{"$sum": "$clicks"},
			"uniqueViews": bson.M{"$sum": bson.M{"$cond": bson.A{"$hasBeenViewed", 1, 0}}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         db.CollectionProjects,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "project",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"projectTitle": bson.M{"$first": "$project.title"},
		}}},
		{{Key: "$project", Value: bson.M{"project": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate per-project click stats: %w", err)
	}

	var stats []ProjectClickStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode per-project click stats: %w", err)
	}

	return stats, nil
}

func (r *TrackingRepository) aggregateStats(ctx context.Context, pipeline mongo.Pipeline) (models.ClickStats, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.ClickStats{}, fmt.Errorf("failed to aggregate click stats: %w", err)
	}

	var results []models.ClickStats
	if err := cursor.All(ctx, &results); err != nil {
		return models.ClickStats{}, fmt.Errorf("failed to decode click stats: %w", err)
	}

	if len(results) == 0 {
		return models.ClickStats{}, nil
	}
	return results[0], nil
}
