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

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	ProfessorID *primitive.ObjectID
	Status      *models.ProjectStatus
	Category    *string
	Search      *string
	VisibleOnly bool
	Skip        int64
	Limit       int64
}

// ProjectRepository handles document-store access for research projects.
type ProjectRepository struct {
	collection *mongo.Collection
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(database *mongo.Database) *ProjectRepository {
	return &ProjectRepository{collection: database.Collection(db.CollectionProjects)}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	project.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID finds a project by ID; returns (nil, nil) when absent.
func (r *ProjectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

// List returns the filtered page of projects, newest first, plus the total
// match count.
func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]*models.Project, int64, error) {
	query := bson.M{}
	if filter.ProfessorID != nil {
		query["professorId"] = *filter.ProfessorID
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.Category != nil {
		query["categories"] = *filter.Category
	}
	if filter.Search != nil {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": *filter.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": *filter.Search, "$options": "i"}},
		}
	}
	if filter.VisibleOnly {
		query["isVisible"] = true
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(filter.Skip).
		SetLimit(filter.Limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []*models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, fmt.Errorf("failed to decode projects: %w", err)
	}

	return projects, total, nil
}

// UpdateFields applies a partial update to a project document.
func (r *ProjectRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project document.
func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// AddFile appends a file entry to the project's attachments.
func (r *ProjectRepository) AddFile(ctx context.Context, id primitive.ObjectID, file models.ProjectFile) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"files": file},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to attach file: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// RemoveFile pulls a file entry from the project's attachments by its stored
// filename.
func (r *ProjectRepository) RemoveFile(ctx context.Context, id primitive.ObjectID, fileName string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"files": bson.M{"fileName": fileName}},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrProjectNotFound
	}
	if res.ModifiedCount == 0 {
		return apperrors.ErrProjectFileNotFound
	}
	return nil
}

// CountAll returns the number of projects in the store.
func (r *ProjectRepository) CountAll(ctx context.Context) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return total, nil
}
