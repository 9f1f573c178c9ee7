// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is an entry in a user's personal exercise library.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name         string             `bson:"name" json:"name"`
	Category     WorkoutCategory    `bson:"category" json:"category"`
	Favorite     bool               `bson:"favorite" json:"favorite"`
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
