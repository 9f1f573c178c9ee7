package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutInput holds the editable fields of a logged workout.
type WorkoutInput struct {
	Name           string
	Category       domain.WorkoutCategory
	DurationHours  float64
	CaloriesBurned int
	DistanceKm     *float64
	Sets           *int
	Reps           *int
	Notes          string
}

func (in *WorkoutInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return invalid("name", "must not be empty")
	case !in.Category.Valid():
		return invalid("category", "must be cardio, strength or flexibility")
	case in.DurationHours < 0:
		return invalid("durationHours", "must not be negative")
	case in.CaloriesBurned < 0:
		return invalid("caloriesBurned", "must not be negative")
	case in.DistanceKm != nil && *in.DistanceKm < 0:
		return invalid("distanceKm", "must not be negative")
	case in.Sets != nil && *in.Sets < 0:
		return invalid("sets", "must not be negative")
	case in.Reps != nil && *in.Reps < 0:
		return invalid("reps", "must not be negative")
	}
	return nil
}

// WorkoutLogService records the current user's workout history.
type WorkoutLogService interface {
	LogWorkout(ctx context.Context, in WorkoutInput) (*domain.WorkoutLog, error)
	// ListHistory returns workouts newest first. A non-nil day limits the
	// result to that calendar day in day's location.
	ListHistory(ctx context.Context, day *time.Time) ([]domain.WorkoutLog, error)
	UpdateWorkout(ctx context.Context, workoutID primitive.ObjectID, in WorkoutInput) (*domain.WorkoutLog, error)
	DeleteWorkout(ctx context.Context, workoutID primitive.ObjectID) error
}

type workoutLogService struct {
	logRepo repository.WorkoutLogRepository
}

func NewWorkoutLogService(logRepo repository.WorkoutLogRepository) WorkoutLogService {
	return &workoutLogService{logRepo: logRepo}
}

func (s *workoutLogService) LogWorkout(ctx context.Context, in WorkoutInput) (*domain.WorkoutLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	log := &domain.WorkoutLog{
		UserID:         userID,
		Name:           in.Name,
		Category:       in.Category,
		DurationHours:  in.DurationHours,
		CaloriesBurned: in.CaloriesBurned,
		DistanceKm:     in.DistanceKm,
		Sets:           in.Sets,
		Reps:           in.Reps,
		Notes:          in.Notes,
	}
	if _, err := s.logRepo.Create(ctx, log); err != nil {
		return nil, &PersistenceError{Op: "log_workout", Err: err}
	}
	return log, nil
}

func (s *workoutLogService) ListHistory(ctx context.Context, day *time.Time) ([]domain.WorkoutLog, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	var filter repository.WorkoutLogFilter
	if day != nil {
		y, m, d := day.Date()
		filter.From = time.Date(y, m, d, 0, 0, 0, 0, day.Location())
		filter.To = filter.From.AddDate(0, 0, 1)
	}
	logs, err := s.logRepo.GetByUserID(ctx, userID, filter)
	if err != nil {
		return nil, &PersistenceError{Op: "list_workouts", Err: err}
	}
	return logs, nil
}

// UpdateWorkout replaces the editable fields. The category is fixed once
// logged.
func (s *workoutLogService) UpdateWorkout(ctx context.Context, workoutID primitive.ObjectID, in WorkoutInput) (*domain.WorkoutLog, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	log, err := s.logRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("workout", workoutID)
		}
		return nil, &PersistenceError{Op: "get_workout", Err: err}
	}
	if log.UserID != userID {
		return nil, notFound("workout", workoutID)
	}

	in.Category = log.Category
	if err := in.validate(); err != nil {
		return nil, err
	}
	log.Name = in.Name
	log.DurationHours = in.DurationHours
	log.CaloriesBurned = in.CaloriesBurned
	log.DistanceKm = in.DistanceKm
	log.Sets = in.Sets
	log.Reps = in.Reps
	log.Notes = in.Notes

	if err := s.logRepo.Update(ctx, log); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("workout", workoutID)
		}
		return nil, &PersistenceError{Op: "update_workout", Err: err}
	}
	return log, nil
}

func (s *workoutLogService) DeleteWorkout(ctx context.Context, workoutID primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.logRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("workout", workoutID)
		}
		return &PersistenceError{Op: "delete_workout", Err: err}
	}
	return nil
}
