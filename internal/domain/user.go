package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. Profile fields (FullName, AvatarKey) are shown
// next to the user's challenge participation and public plans.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"` // Object key in the avatar bucket
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasAvatar reports whether an avatar image was confirmed for the user.
func (u *User) HasAvatar() bool {
	return u.AvatarKey != ""
}
