package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutCategory groups logged workouts and library exercises.
type WorkoutCategory string

const (
	CategoryCardio      WorkoutCategory = "cardio"
	CategoryStrength    WorkoutCategory = "strength"
	CategoryFlexibility WorkoutCategory = "flexibility"
)

// Valid reports whether c is a known category.
func (c WorkoutCategory) Valid() bool {
	switch c {
	case CategoryCardio, CategoryStrength, CategoryFlexibility:
		return true
	}
	return false
}

// WorkoutLog records one performed workout.
// Distance only applies to cardio, Sets/Reps only to strength; they are
// pointers so "not recorded" stays distinct from zero.
type WorkoutLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Name           string             `bson:"name" json:"name"`
	Category       WorkoutCategory    `bson:"category" json:"category"`
	DurationHours  float64            `bson:"durationHours" json:"durationHours"`
	CaloriesBurned int                `bson:"caloriesBurned" json:"caloriesBurned"`
	DistanceKm     *float64           `bson:"distanceKm,omitempty" json:"distanceKm,omitempty"`
	Sets           *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps           *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
