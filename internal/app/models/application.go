package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus represents the state of a student application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// IsValid reports whether s is a known application status.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether an application in this status can no longer
// transition. REJECTED and WITHDRAWN are terminal.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusRejected || s == ApplicationStatusWithdrawn
}

// CanTransitionTo reports whether a status change from s to target is allowed.
// PENDING may move to any other status; ACCEPTED may still be rejected or
// withdrawn; terminal statuses never move.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	if !target.IsValid() || s == target || s.IsTerminal() {
		return false
	}
	switch s {
	case ApplicationStatusPending:
		return target != ApplicationStatusPending
	case ApplicationStatusAccepted:
		return target == ApplicationStatusRejected || target == ApplicationStatusWithdrawn
	}
	return false
}

// StudentInfo embeds the applicant's details inside an application document.
type StudentInfo struct {
	FirstName          string   `json:"firstName" bson:"firstName" example:"Jordan"`
	LastName           string   `json:"lastName" bson:"lastName" example:"Lee"`
	Email              string   `json:"email" bson:"email" example:"j.lee@miami.edu"`
	Phone              string   `json:"phone,omitempty" bson:"phone,omitempty"`
	CNumber            string   `json:"cNumber" bson:"cNumber" example:"C12345678"` // University ID
	Major              string   `json:"major,omitempty" bson:"major,omitempty" example:"Computer Science"`
	GPA                float64  `json:"gpa,omitempty" bson:"gpa,omitempty" example:"3.7"`
	AcademicYear       string   `json:"academicYear,omitempty" bson:"academicYear,omitempty" example:"JUNIOR"`
	GraduationDate     string   `json:"graduationDate,omitempty" bson:"graduationDate,omitempty" example:"2026-05"`
	Citizenship        string   `json:"citizenship,omitempty" bson:"citizenship,omitempty"`
	RacialEthnicGroups []string `json:"racialEthnicGroups,omitempty" bson:"racialEthnicGroups,omitempty"`
}

// Availability captures when and how much the applicant can work.
type Availability struct {
	WeeklyHours           string `json:"weeklyHours,omitempty" bson:"weeklyHours,omitempty" example:"9-11"`
	DesiredDuration       string `json:"desiredDuration,omitempty" bson:"desiredDuration,omitempty" example:"2 semesters"`
	MondayAvailability    string `json:"mondayAvailability,omitempty" bson:"mondayAvailability,omitempty"`
	TuesdayAvailability   string `json:"tuesdayAvailability,omitempty" bson:"tuesdayAvailability,omitempty"`
	WednesdayAvailability string `json:"wednesdayAvailability,omitempty" bson:"wednesdayAvailability,omitempty"`
	ThursdayAvailability  string `json:"thursdayAvailability,omitempty" bson:"thursdayAvailability,omitempty"`
	FridayAvailability    string `json:"fridayAvailability,omitempty" bson:"fridayAvailability,omitempty"`
}

// AdditionalInfo holds optional free-form application details.
type AdditionalInfo struct {
	PreviousResearchExperience  string `json:"previousResearchExperience,omitempty" bson:"previousResearchExperience,omitempty"`
	ResearchInterestDescription string `json:"researchInterestDescription,omitempty" bson:"researchInterestDescription,omitempty"`
	FederalWorkStudy            bool   `json:"federalWorkStudy,omitempty" bson:"federalWorkStudy,omitempty"`
	ComfortableWithAnimals      bool   `json:"comfortableWithAnimals,omitempty" bson:"comfortableWithAnimals,omitempty"`
}

// Application defines a student submission stored in the 'applications'
// collection. The parent project must be PUBLISHED with an unexpired
// deadline at creation time.
type Application struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectID      primitive.ObjectID `json:"projectId" bson:"projectId"`
	Student        StudentInfo        `json:"student" bson:"student"`
	Availability   Availability       `json:"availability,omitempty" bson:"availability,omitempty"`
	AdditionalInfo AdditionalInfo     `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	ResumeFile     string             `json:"-" bson:"resumeFile"` // Stored filename on disk
	ResumeMimeType string             `json:"-" bson:"resumeMimeType"`
	Status         ApplicationStatus  `json:"status" bson:"status" example:"PENDING"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
