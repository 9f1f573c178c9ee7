package memory

import (
	"context"
	"sort"
	"strings"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepository struct {
	s *Store
}

// NewExerciseRepository returns an exercise library repository backed by s.
func NewExerciseRepository(s *Store) repository.ExerciseRepository {
	return &exerciseRepository{s: s}
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	now := r.s.now()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.s.exercises[exercise.ID] = &record[domain.Exercise]{seq: r.s.next(), val: *exercise}
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := rec.val
	return &e, nil
}

func (r *exerciseRepository) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID, nameQuery string) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(nameQuery)
	exercises := make([]domain.Exercise, 0)
	for _, rec := range r.s.exercises {
		if rec.val.OwnerID != ownerID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(rec.val.Name), q) {
			continue
		}
		exercises = append(exercises, rec.val)
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}

func (r *exerciseRepository) SetFavorite(_ context.Context, id, ownerID primitive.ObjectID, favorite bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.exercises[id]
	if !ok || rec.val.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	rec.val.Favorite = favorite
	rec.val.UpdatedAt = r.s.now()
	return nil
}

func (r *exerciseRepository) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.exercises[id]
	if !ok || rec.val.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.exercises, id)
	return nil
}
