package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailTracking records click/view telemetry for one outbound notification
// email, keyed by an opaque token. A record is created when the notification
// is sent, mutated only by click events, and never deleted.
type EmailTracking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Token           string             `json:"token" bson:"token"` // Opaque, unique, immutable
	ApplicationID   primitive.ObjectID `json:"applicationId" bson:"applicationId"`
	ProjectID       primitive.ObjectID `json:"projectId" bson:"projectId"`
	Clicks          int                `json:"clicks" bson:"clicks" example:"3"`
	HasBeenViewed   bool               `json:"hasBeenViewed" bson:"hasBeenViewed" example:"true"`
	FirstClickedAt  *time.Time         `json:"firstClickedAt,omitempty" bson:"firstClickedAt,omitempty"`
	LastClickedAt   *time.Time         `json:"lastClickedAt,omitempty" bson:"lastClickedAt,omitempty"`
	ClickTimestamps []time.Time        `json:"clickTimestamps,omitempty" bson:"clickTimestamps,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}
