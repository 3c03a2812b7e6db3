package dto

import (
	"time"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
)

// RegisterProfessorRequest represents the admin-gated registration payload.
type RegisterProfessorRequest struct {
	AdminPassword string   `json:"adminPassword" binding:"required"`
	Email         string   `json:"email" binding:"required,email" example:"a.morrow@miami.edu"`
	Password      string   `json:"password" binding:"required,min=8"`
	FirstName     string   `json:"firstName" binding:"required"`
	LastName      string   `json:"lastName" binding:"required"`
	Department    string   `json:"department" binding:"required" example:"Computer Science"`
	Title         string   `json:"title,omitempty"`
	ResearchAreas []string `json:"researchAreas,omitempty"`
	Office        string   `json:"office,omitempty"`
	Publications  []string `json:"publications,omitempty"`
	Bio           string   `json:"bio,omitempty"`
}

// UpdateProfileRequest represents a profile update. Email and identity are
// immutable; omitted fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName     *string   `json:"firstName,omitempty"`
	LastName      *string   `json:"lastName,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Office        *string   `json:"office,omitempty"`
	ResearchAreas *[]string `json:"researchAreas,omitempty"`
	Publications  *[]string `json:"publications,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
}

// ChangePasswordRequest represents a password change for the logged-in professor.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ProfessorResponse is the public shape of a professor account.
type ProfessorResponse struct {
	ID            string    `json:"id" example:"665f2a1b9d3e4c0012345678"`
	Email         string    `json:"email" example:"a.morrow@miami.edu"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Department    string    `json:"department"`
	Title         string    `json:"title,omitempty"`
	ResearchAreas []string  `json:"researchAreas,omitempty"`
	Office        string    `json:"office,omitempty"`
	Publications  []string  `json:"publications,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromProfessor converts a models.Professor to its response DTO.
func FromProfessor(p *models.Professor) ProfessorResponse {
	return ProfessorResponse{
		ID:            p.ID.Hex(),
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Department:    p.Department,
		Title:         p.Title,
		ResearchAreas: p.ResearchAreas,
		Office:        p.Office,
		Publications:  p.Publications,
		Bio:           p.Bio,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
