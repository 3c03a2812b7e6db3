package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/db"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

// ProfessorRepository handles document-store access for professor accounts.
type ProfessorRepository struct {
	collection *mongo.Collection
}

// NewProfessorRepository creates a new ProfessorRepository.
func NewProfessorRepository(database *mongo.Database) *ProfessorRepository {
	return &ProfessorRepository{collection: database.Collection(db.CollectionProfessors)}
}

// Create inserts a new professor. A duplicate email maps to
// apperrors.ErrEmailAlreadyExists via the unique index.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	now := time.Now()
	professor.CreatedAt = now
	professor.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, professor)
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert professor: %w", err)
	}

	professor.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByEmail finds a professor by email; returns (nil, nil) when absent.
func (r *ProfessorRepository) GetByEmail(ctx context.Context, email string) (*models.Professor, error) {
	var professor models.Professor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&professor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find professor by email: %w", err)
	}
	return &professor, nil
}

// GetByID finds a professor by ID; returns (nil, nil) when absent.
func (r *ProfessorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Professor, error) {
	var professor models.Professor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&professor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find professor: %w", err)
	}
	return &professor, nil
}

// UpdateFields applies a partial update to a professor document.
func (r *ProfessorRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update professor: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrProfessorNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *ProfessorRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"password": passwordHash})
}

// SetActive toggles the account's active flag.
func (r *ProfessorRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"isActive": active})
}
