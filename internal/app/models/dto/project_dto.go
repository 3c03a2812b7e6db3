package dto

import (
	"time"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
)

// CreateProjectRequest represents a new research project.
type CreateProjectRequest struct {
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description" binding:"required"`
	Categories          []string   `json:"categories,omitempty"`
	Requirements        []string   `json:"requirements,omitempty"`
	Status              string     `json:"status,omitempty" binding:"omitempty,oneof=DRAFT PUBLISHED" example:"DRAFT"`
	Positions           int        `json:"positions" binding:"required,min=1" example:"2"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	IsVisible           *bool      `json:"isVisible,omitempty"`
}

// UpdateProjectRequest represents a partial project update by the owner.
type UpdateProjectRequest struct {
	Title               *string    `json:"title,omitempty"`
	Description         *string    `json:"description,omitempty"`
	Categories          *[]string  `json:"categories,omitempty"`
	Requirements        *[]string  `json:"requirements,omitempty"`
	Status              *string    `json:"status,omitempty" binding:"omitempty,oneof=DRAFT PUBLISHED CLOSED"`
	Positions           *int       `json:"positions,omitempty" binding:"omitempty,min=1"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	IsVisible           *bool      `json:"isVisible,omitempty"`
}

// ProjectFilterRequest captures list filters and pagination.
type ProjectFilterRequest struct {
	Status   *string
	Category *string
	Search   *string
	Page     int
	PageSize int
}

// ProjectFileResponse is the public shape of an attached file.
type ProjectFileResponse struct {
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// ProjectResponse is the public shape of a project.
type ProjectResponse struct {
	ID                  string                `json:"id"`
	ProfessorID         string                `json:"professorId"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Categories          []string              `json:"categories,omitempty"`
	Requirements        []string              `json:"requirements,omitempty"`
	Status              string                `json:"status" example:"PUBLISHED"`
	Positions           int                   `json:"positions"`
	ApplicationDeadline *time.Time            `json:"applicationDeadline,omitempty"`
	IsVisible           bool                  `json:"isVisible"`
	AcceptsApplications bool                  `json:"acceptsApplications"`
	Files               []ProjectFileResponse `json:"files,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// FromProject converts a models.Project to its response DTO.
func FromProject(p *models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:                  p.ID.Hex(),
		ProfessorID:         p.ProfessorID.Hex(),
		Title:               p.Title,
		Description:         p.Description,
		Categories:          p.Categories,
		Requirements:        p.Requirements,
		Status:              string(p.Status),
		Positions:           p.Positions,
		ApplicationDeadline: p.ApplicationDeadline,
		IsVisible:           p.IsVisible,
		AcceptsApplications: p.IsVisible && p.AcceptsApplications(time.Now()),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for _, f := range p.Files {
		resp.Files = append(resp.Files, ProjectFileResponse{
			FileName:     f.FileName,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
			Size:         f.Size,
			UploadedAt:   f.UploadedAt,
		})
	}
	return resp
}
