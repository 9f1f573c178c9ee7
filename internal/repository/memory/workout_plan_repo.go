package memory

import (
	"context"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutPlanRepository struct {
	s *Store
}

// NewWorkoutPlanRepository returns a plan repository backed by s.
func NewWorkoutPlanRepository(s *Store) repository.WorkoutPlanRepository {
	return &workoutPlanRepository{s: s}
}

func clonePlan(p domain.WorkoutPlan) domain.WorkoutPlan {
	if p.Days != nil {
		p.Days = p.Days.Clone()
	}
	return p
}

func (r *workoutPlanRepository) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	plan.ID = primitive.NewObjectID()
	plan.Revision = 1
	now := r.s.now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.s.plans[plan.ID] = &record[domain.WorkoutPlan]{seq: r.s.next(), val: clonePlan(*plan)}
	return plan.ID, nil
}

func (r *workoutPlanRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	plan := clonePlan(rec.val)
	return &plan, nil
}

func (r *workoutPlanRepository) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return r.list(func(p *domain.WorkoutPlan) bool { return p.OwnerID == ownerID }), nil
}

func (r *workoutPlanRepository) GetByPrivacy(_ context.Context, privacy domain.Privacy) ([]domain.WorkoutPlan, error) {
	return r.list(func(p *domain.WorkoutPlan) bool { return p.Privacy == privacy }), nil
}

func (r *workoutPlanRepository) list(match func(*domain.WorkoutPlan) bool) []domain.WorkoutPlan {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*record[domain.WorkoutPlan], 0)
	for _, rec := range r.s.plans {
		if match(&rec.val) {
			rows = append(rows, rec)
		}
	}
	newestFirst(rows, func(p domain.WorkoutPlan) time.Time { return p.CreatedAt })

	plans := make([]domain.WorkoutPlan, 0, len(rows))
	for _, rec := range rows {
		plans = append(plans, clonePlan(rec.val))
	}
	return plans
}

func (r *workoutPlanRepository) Update(_ context.Context, id, ownerID primitive.ObjectID, expectedRevision int64, upd repository.PlanUpdate) (*domain.WorkoutPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.plans[id]
	if !ok || rec.val.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	if rec.val.Revision != expectedRevision {
		return nil, repository.ErrConflict
	}

	if upd.Privacy != nil {
		rec.val.Privacy = *upd.Privacy
	}
	if upd.Days != nil {
		rec.val.Days = upd.Days.Clone()
	}
	rec.val.Revision++
	rec.val.UpdatedAt = r.s.now()

	plan := clonePlan(rec.val)
	return &plan, nil
}

func (r *workoutPlanRepository) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.plans[id]
	if !ok || rec.val.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.plans, id)
	return nil
}
