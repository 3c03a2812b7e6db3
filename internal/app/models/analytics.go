package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationAnalytics is the per-project counter document in the
// 'application_analytics' collection. It is created lazily on the first
// application and updated with atomic increments on every status change.
type ApplicationAnalytics struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectID           primitive.ObjectID `json:"projectId" bson:"projectId"`
	TotalApplications   int64              `json:"totalApplications" bson:"totalApplications"`
	TotalInterviews     int64              `json:"totalInterviews" bson:"totalInterviews"`
	TotalAcceptedOffers int64              `json:"totalAcceptedOffers" bson:"totalAcceptedOffers"`
	TotalDeclinedOffers int64              `json:"totalDeclinedOffers" bson:"totalDeclinedOffers"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ClickStats aggregates email engagement for one project (or globally when
// ProjectID is the zero value).
type ClickStats struct {
	ProjectID   primitive.ObjectID `json:"projectId,omitempty" bson:"_id,omitempty"`
	EmailsSent  int64              `json:"emailsSent" bson:"emailsSent"`
	TotalClicks int64              `json:"totalClicks" bson:"totalClicks"`
	UniqueViews int64              `json:"uniqueViews" bson:"uniqueViews"`
}
