package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Professor defines a professor account stored in the 'professors' collection.
type Professor struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email" example:"a.morrow@miami.edu"` // Login identity, unique
	Password      string             `json:"-" bson:"password"`                               // Hashed password (excluded from JSON)
	FirstName     string             `json:"firstName" bson:"firstName" example:"Alex"`
	LastName      string             `json:"lastName" bson:"lastName" example:"Morrow"`
	Department    string             `json:"department" bson:"department" example:"Computer Science"`
	Title         string             `json:"title,omitempty" bson:"title,omitempty" example:"Associate Professor"`
	ResearchAreas []string           `json:"researchAreas,omitempty" bson:"researchAreas,omitempty"`
	Office        string             `json:"office,omitempty" bson:"office,omitempty" example:"Ungar 330"`
	Publications  []string           `json:"publications,omitempty" bson:"publications,omitempty"`
	Bio           string             `json:"bio,omitempty" bson:"bio,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive" example:"true"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FullName returns the professor's display name.
func (p *Professor) FullName() string {
	return p.FirstName + " " + p.LastName
}
