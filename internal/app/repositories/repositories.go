package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles every repository for dependency wiring.
type Repositories struct {
	ProfessorRepository   *ProfessorRepository
	ProjectRepository     *ProjectRepository
	ApplicationRepository *ApplicationRepository
	TrackingRepository    *TrackingRepository
	AnalyticsRepository   *AnalyticsRepository
}

// NewRepositories creates all repositories over the given database handle.
func NewRepositories(database *mongo.Database) *Repositories {
	return &Repositories{
		ProfessorRepository:   NewProfessorRepository(database),
		ProjectRepository:     NewProjectRepository(database),
		ApplicationRepository: NewApplicationRepository(database),
		TrackingRepository:    NewTrackingRepository(database),
		AnalyticsRepository:   NewAnalyticsRepository(database),
	}
}
