package repository

import (
	"context"
	"time"

	"fittrack/fitness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrConflict      = RepositoryError("revision conflict")
	ErrDuplicateKey  = RepositoryError("duplicate key")
	ErrInvalidRecord = RepositoryError("invalid record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanUpdate carries the fields replaced by a plan write. Nil fields are left
// untouched; a non-nil Days replaces the whole schedule.
type PlanUpdate struct {
	Privacy *domain.Privacy
	Days    domain.DaySchedule
}

// WorkoutPlanRepository stores plan documents. List results are ordered by
// createdAt descending.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetByPrivacy(ctx context.Context, privacy domain.Privacy) ([]domain.WorkoutPlan, error)
	// Update applies upd only if the stored plan belongs to ownerID and is
	// still at expectedRevision. It returns ErrNotFound when no such plan is
	// visible to ownerID and ErrConflict when the revision moved on.
	Update(ctx context.Context, id, ownerID primitive.ObjectID, expectedRevision int64, upd PlanUpdate) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName string) error
	SetAvatarKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// WorkoutLogFilter narrows a history query. Zero values mean "no bound".
type WorkoutLogFilter struct {
	From time.Time // inclusive
	To   time.Time // exclusive
}

// WorkoutLogRepository defines the interface for the workout history.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter WorkoutLogFilter) ([]domain.WorkoutLog, error)
	Update(ctx context.Context, log *domain.WorkoutLog) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // Ensure user owns the entry
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByOwnerID returns the owner's exercises, optionally filtered by a
	// case-insensitive substring of the name.
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, nameQuery string) ([]domain.Exercise, error)
	SetFavorite(ctx context.Context, id, ownerID primitive.ObjectID, favorite bool) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// ChallengeRepository defines the interface for community challenges.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.Challenge) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error)
	GetAll(ctx context.Context) ([]domain.Challenge, error)
	// AddParticipant appends p unless p.UserID already joined, in which case
	// it returns ErrDuplicateKey.
	AddParticipant(ctx context.Context, challengeID primitive.ObjectID, p domain.Participant) error
}
