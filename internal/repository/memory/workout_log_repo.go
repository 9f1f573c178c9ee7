package memory

import (
	"context"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutLogRepository struct {
	s *Store
}

// NewWorkoutLogRepository returns a workout history repository backed by s.
func NewWorkoutLogRepository(s *Store) repository.WorkoutLogRepository {
	return &workoutLogRepository{s: s}
}

func (r *workoutLogRepository) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.Name == "" {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = primitive.NewObjectID()
	now := r.s.now()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}
	log.UpdatedAt = now
	r.s.logs[log.ID] = &record[domain.WorkoutLog]{seq: r.s.next(), val: *log}
	return log.ID, nil
}

func (r *workoutLogRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l := rec.val
	return &l, nil
}

func (r *workoutLogRepository) GetByUserID(_ context.Context, userID primitive.ObjectID, f repository.WorkoutLogFilter) ([]domain.WorkoutLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*record[domain.WorkoutLog], 0)
	for _, rec := range r.s.logs {
		if rec.val.UserID != userID {
			continue
		}
		if !f.From.IsZero() && rec.val.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !rec.val.CreatedAt.Before(f.To) {
			continue
		}
		rows = append(rows, rec)
	}
	newestFirst(rows, func(l domain.WorkoutLog) time.Time { return l.CreatedAt })

	logs := make([]domain.WorkoutLog, 0, len(rows))
	for _, rec := range rows {
		logs = append(logs, rec.val)
	}
	return logs, nil
}

func (r *workoutLogRepository) Update(_ context.Context, log *domain.WorkoutLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.logs[log.ID]
	if !ok || rec.val.UserID != log.UserID {
		return repository.ErrNotFound
	}
	rec.val.Name = log.Name
	rec.val.DurationHours = log.DurationHours
	rec.val.CaloriesBurned = log.CaloriesBurned
	rec.val.DistanceKm = log.DistanceKm
	rec.val.Sets = log.Sets
	rec.val.Reps = log.Reps
	rec.val.Notes = log.Notes
	rec.val.UpdatedAt = r.s.now()
	log.UpdatedAt = rec.val.UpdatedAt
	return nil
}

func (r *workoutLogRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.logs[id]
	if !ok || rec.val.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.s.logs, id)
	return nil
}
