package dto

import (
	"time"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
)

// CreateApplicationRequest is the JSON part of the multipart submission
// (the resume file travels as a separate part).
type CreateApplicationRequest struct {
	Student struct {
		FirstName          string   `json:"firstName" validate:"required"`
		LastName           string   `json:"lastName" validate:"required"`
		Email              string   `json:"email" validate:"required,email"`
		Phone              string   `json:"phone,omitempty"`
		CNumber            string   `json:"cNumber" validate:"required"`
		Major              string   `json:"major,omitempty"`
		GPA                float64  `json:"gpa,omitempty" validate:"omitempty,min=0,max=4"`
		AcademicYear       string   `json:"academicYear,omitempty"`
		GraduationDate     string   `json:"graduationDate,omitempty"`
		Citizenship        string   `json:"citizenship,omitempty"`
		RacialEthnicGroups []string `json:"racialEthnicGroups,omitempty"`
	} `json:"student" validate:"required"`
	Availability   models.Availability   `json:"availability,omitempty"`
	AdditionalInfo models.AdditionalInfo `json:"additionalInfo,omitempty"`
}

// ToStudentInfo converts the request's student block to the embedded model.
func (r *CreateApplicationRequest) ToStudentInfo() models.StudentInfo {
	return models.StudentInfo{
		FirstName:          r.Student.FirstName,
		LastName:           r.Student.LastName,
		Email:              r.Student.Email,
		Phone:              r.Student.Phone,
		CNumber:            r.Student.CNumber,
		Major:              r.Student.Major,
		GPA:                r.Student.GPA,
		AcademicYear:       r.Student.AcademicYear,
		GraduationDate:     r.Student.GraduationDate,
		Citizenship:        r.Student.Citizenship,
		RacialEthnicGroups: r.Student.RacialEthnicGroups,
	}
}

// UpdateApplicationStatusRequest changes an application's status.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACCEPTED REJECTED WITHDRAWN" example:"ACCEPTED"`
}

// ApplicationResponse is the public shape of an application.
type ApplicationResponse struct {
	ID             string                `json:"id"`
	ProjectID      string                `json:"projectId"`
	Student        models.StudentInfo    `json:"student"`
	Availability   models.Availability   `json:"availability,omitempty"`
	AdditionalInfo models.AdditionalInfo `json:"additionalInfo,omitempty"`
	Status         string                `json:"status" example:"PENDING"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// FromApplication converts a models.Application to its response DTO.
func FromApplication(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID.Hex(),
		ProjectID:      a.ProjectID.Hex(),
		Student:        a.Student,
		Availability:   a.Availability,
		AdditionalInfo: a.AdditionalInfo,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
