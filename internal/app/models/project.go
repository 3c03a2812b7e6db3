package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus represents the lifecycle state of a research project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusPublished ProjectStatus = "PUBLISHED"
	ProjectStatusClosed    ProjectStatus = "CLOSED"
)

// IsValid reports whether s is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusPublished, ProjectStatusClosed:
		return true
	}
	return false
}

// ProjectFile describes a file attached to a project.
type ProjectFile struct {
	FileName     string    `json:"fileName" bson:"fileName" example:"1717612345-9f4c.pdf"` // Stored name on disk
	OriginalName string    `json:"originalName" bson:"originalName" example:"syllabus.pdf"`
	MimeType     string    `json:"mimeType" bson:"mimeType" example:"application/pdf"`
	Size         int64     `json:"size" bson:"size" example:"204800"`
	UploadedAt   time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// Project defines a research opportunity stored in the 'projects' collection.
// A project is owned by exactly one professor; ownership never changes.
type Project struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProfessorID        primitive.ObjectID `json:"professorId" bson:"professorId"`
	Title              string             `json:"title" bson:"title" example:"Graph Neural Networks for Protein Folding"`
	Description        string             `json:"description" bson:"description"`
	Categories         []string           `json:"categories,omitempty" bson:"categories,omitempty"`
	Requirements       []string           `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Status             ProjectStatus      `json:"status" bson:"status" example:"PUBLISHED"`
	Positions          int                `json:"positions" bson:"positions" example:"2"`
	ApplicationDeadline *time.Time        `json:"applicationDeadline,omitempty" bson:"applicationDeadline,omitempty"`
	IsVisible          bool               `json:"isVisible" bson:"isVisible" example:"true"`
	Files              []ProjectFile      `json:"files,omitempty" bson:"files,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AcceptsApplications reports whether the project can receive a new
// application at the given time.
func (p *Project) AcceptsApplications(now time.Time) bool {
	if p.Status != ProjectStatusPublished {
		return false
	}
	if p.ApplicationDeadline != nil && now.After(*p.ApplicationDeadline) {
		return false
	}
	return true
}
