package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseService manages the current user's exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, name string, category domain.WorkoutCategory, thumbnailURL string) (*domain.Exercise, error)
	ListExercises(ctx context.Context, search string) ([]domain.Exercise, error)
	ToggleFavorite(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

func (s *exerciseService) CreateExercise(ctx context.Context, name string, category domain.WorkoutCategory, thumbnailURL string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if !category.Valid() {
		return nil, invalid("category", "must be cardio, strength or flexibility")
	}
	if thumbnailURL != "" {
		if u, err := url.Parse(thumbnailURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, invalid("thumbnailUrl", "must be an absolute URL")
		}
	}
	ownerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		OwnerID:      ownerID,
		Name:         name,
		Category:     category,
		ThumbnailURL: thumbnailURL,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, &PersistenceError{Op: "create_exercise", Err: err}
	}
	return exercise, nil
}

// ListExercises returns the user's exercises sorted by name. A non-empty
// search keeps only names containing it, ignoring case.
func (s *exerciseService) ListExercises(ctx context.Context, search string) ([]domain.Exercise, error) {
	ownerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.GetByOwnerID(ctx, ownerID, strings.TrimSpace(search))
	if err != nil {
		return nil, &PersistenceError{Op: "list_exercises", Err: err}
	}
	return exercises, nil
}

func (s *exerciseService) ToggleFavorite(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	ownerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("exercise", exerciseID)
		}
		return nil, &PersistenceError{Op: "get_exercise", Err: err}
	}
	if exercise.OwnerID != ownerID {
		return nil, notFound("exercise", exerciseID)
	}

	exercise.Favorite = !exercise.Favorite
	if err := s.exerciseRepo.SetFavorite(ctx, exerciseID, ownerID, exercise.Favorite); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("exercise", exerciseID)
		}
		return nil, &PersistenceError{Op: "set_favorite", Err: err}
	}
	return exercise, nil
}

// DeleteExercise removes an exercise. The repository filter includes the
// owner, so another user's exercise reports as not found.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	ownerID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("exercise", exerciseID)
		}
		return &PersistenceError{Op: "delete_exercise", Err: err}
	}
	return nil
}
