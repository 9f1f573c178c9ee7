package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is a community goal users can join.
type Challenge struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatorID    primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	StartsAt     *time.Time         `bson:"startsAt,omitempty" json:"startsAt,omitempty"`
	EndsAt       *time.Time         `bson:"endsAt,omitempty" json:"endsAt,omitempty"`
	Participants []Participant      `bson:"participants" json:"participants"` // Embedded, in join order
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Participant is a user's membership in a challenge, with the profile
// snapshot taken when they joined.
type Participant struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	FullName  string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	AvatarKey string             `bson:"avatarKey,omitempty" json:"-"`
	AvatarURL string             `bson:"-" json:"avatarUrl,omitempty"` // Presigned on read, never stored
	JoinedAt  time.Time          `bson:"joinedAt" json:"joinedAt"`
}

// HasParticipant reports whether userID already joined.
func (c *Challenge) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
