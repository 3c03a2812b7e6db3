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

// ApplicationRepository handles document-store access for student applications.
type ApplicationRepository struct {
	collection *mongo.Collection
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(database *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{collection: database.Collection(db.CollectionApplications)}
}

// Create inserts a new application.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	now := time.Now()
	application.CreatedAt = now
	application.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, application)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}

	application.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID finds an application by ID; returns (nil, nil) when absent.
func (r *ApplicationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &application, nil
}

// ListByProject returns a project's applications, optionally filtered by
// status, newest first.
func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID, status *models.ApplicationStatus) ([]*models.Application, error) {
	query := bson.M{"projectId": projectID}
	if status != nil {
		query["status"] = *status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	var applications []*models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}

	return applications, nil
}

// UpdateStatus persists a status change.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
