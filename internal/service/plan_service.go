package service

import (
	"context"
	"errors"
	"strings"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/identity"
	"fittrack/fitness-app/internal/metrics"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PlanService manages workout plans for the user carried in the context.
//
// Edits to an existing plan read the stored document, derive a new days map
// and write it back together with the revision that was read. A write that
// lost a race returns *ConflictError; nothing is retried here.
type PlanService interface {
	CreatePlan(ctx context.Context, name string, privacy domain.Privacy) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	ListPlans(ctx context.Context) ([]domain.WorkoutPlan, error)
	ListPublicPlans(ctx context.Context) ([]domain.WorkoutPlan, error)
	UpdatePrivacy(ctx context.Context, planID primitive.ObjectID, privacy domain.Privacy) (*domain.WorkoutPlan, error)
	AddExerciseToDay(ctx context.Context, planID primitive.ObjectID, day domain.Weekday, exercise string) (*domain.WorkoutPlan, error)
	DeleteDay(ctx context.Context, planID primitive.ObjectID, day domain.Weekday) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, planID primitive.ObjectID) error
}

// Operation labels used in logs and metrics.
const (
	opCreatePlan    = "create_plan"
	opUpdatePrivacy = "update_privacy"
	opAddExercise   = "add_exercise"
	opDeleteDay     = "delete_day"
	opDeletePlan    = "delete_plan"
)

type planService struct {
	planRepo repository.WorkoutPlanRepository
	log      *zap.Logger
	metrics  metrics.Recorder
}

// NewPlanService creates a PlanService. A nil logger or recorder disables
// that output.
func NewPlanService(planRepo repository.WorkoutPlanRepository, log *zap.Logger, rec metrics.Recorder) PlanService {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &planService{
		planRepo: planRepo,
		log:      log.Named("plans"),
		metrics:  rec,
	}
}

func (s *planService) CreatePlan(ctx context.Context, name string, privacy domain.Privacy) (*domain.WorkoutPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if privacy == "" {
		privacy = domain.PrivacyPrivate
	}
	if !privacy.Valid() {
		return nil, invalid("privacy", "must be Private or Public")
	}
	ownerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		OwnerID: ownerID,
		Name:    name,
		Privacy: privacy,
		Days:    domain.NewWeekSchedule(),
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, s.fail(opCreatePlan, primitive.NilObjectID, err)
	}

	s.metrics.RecordPlanMutation(opCreatePlan, metrics.OutcomeOK)
	s.log.Info("plan created", zap.String("plan_id", plan.ID.Hex()), zap.String("owner_id", ownerID.Hex()))
	return plan, nil
}

// GetPlan returns a plan the caller owns or any public plan. A private plan
// of another user is reported as not found.
func (s *planService) GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("workout plan", planID)
		}
		return nil, &PersistenceError{Op: "get_plan", Err: err}
	}
	if plan.IsPublic() {
		return plan, nil
	}
	if userID, ok := identity.UserID(ctx); ok && plan.OwnedBy(userID) {
		return plan, nil
	}
	return nil, notFound("workout plan", planID)
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	ownerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "list_plans", Err: err}
	}
	return plans, nil
}

func (s *planService) ListPublicPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	plans, err := s.planRepo.GetByPrivacy(ctx, domain.PrivacyPublic)
	if err != nil {
		return nil, &PersistenceError{Op: "list_public_plans", Err: err}
	}
	return plans, nil
}

func (s *planService) UpdatePrivacy(ctx context.Context, planID primitive.ObjectID, privacy domain.Privacy) (*domain.WorkoutPlan, error) {
	if !privacy.Valid() {
		return nil, invalid("privacy", "must be Private or Public")
	}
	plan, err := s.loadOwned(ctx, opUpdatePrivacy, planID)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, opUpdatePrivacy, plan, repository.PlanUpdate{Privacy: &privacy})
}

func (s *planService) AddExerciseToDay(ctx context.Context, planID primitive.ObjectID, day domain.Weekday, exercise string) (*domain.WorkoutPlan, error) {
	if !day.Valid() {
		return nil, invalid("day", "must be a weekday name such as Monday")
	}
	if strings.TrimSpace(exercise) == "" {
		return nil, invalid("exercise", "must not be empty")
	}
	plan, err := s.loadOwned(ctx, opAddExercise, planID)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, opAddExercise, plan, repository.PlanUpdate{Days: plan.Days.WithExercise(day, exercise)})
}

// DeleteDay removes day from the schedule. Removing a day that is not
// scheduled returns the plan unchanged without writing.
func (s *planService) DeleteDay(ctx context.Context, planID primitive.ObjectID, day domain.Weekday) (*domain.WorkoutPlan, error) {
	if !day.Valid() {
		return nil, invalid("day", "must be a weekday name such as Monday")
	}
	plan, err := s.loadOwned(ctx, opDeleteDay, planID)
	if err != nil {
		return nil, err
	}
	if !plan.Days.Has(day) {
		s.log.Debug("day not scheduled, nothing to delete", zap.String("plan_id", planID.Hex()), zap.String("day", string(day)))
		return plan, nil
	}
	return s.write(ctx, opDeleteDay, plan, repository.PlanUpdate{Days: plan.Days.WithoutDay(day)})
}

func (s *planService) DeletePlan(ctx context.Context, planID primitive.ObjectID) error {
	ownerID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID, ownerID); err != nil {
		return s.fail(opDeletePlan, planID, err)
	}
	s.metrics.RecordPlanMutation(opDeletePlan, metrics.OutcomeOK)
	s.log.Info("plan deleted", zap.String("plan_id", planID.Hex()))
	return nil
}

// loadOwned reads a plan for modification. Plans of other users, public or
// not, are reported as not found.
func (s *planService) loadOwned(ctx context.Context, op string, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	ownerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, s.fail(op, planID, err)
	}
	if !plan.OwnedBy(ownerID) {
		return nil, s.fail(op, planID, repository.ErrNotFound)
	}
	return plan, nil
}

func (s *planService) write(ctx context.Context, op string, plan *domain.WorkoutPlan, upd repository.PlanUpdate) (*domain.WorkoutPlan, error) {
	updated, err := s.planRepo.Update(ctx, plan.ID, plan.OwnerID, plan.Revision, upd)
	if err != nil {
		return nil, s.fail(op, plan.ID, err)
	}
	s.metrics.RecordPlanMutation(op, metrics.OutcomeOK)
	s.log.Debug("plan updated",
		zap.String("op", op),
		zap.String("plan_id", plan.ID.Hex()),
		zap.Int64("revision", updated.Revision),
	)
	return updated, nil
}

// fail translates a repository error and records the outcome.
func (s *planService) fail(op string, planID primitive.ObjectID, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.metrics.RecordPlanMutation(op, metrics.OutcomeNotFound)
		return notFound("workout plan", planID)
	case errors.Is(err, repository.ErrConflict):
		s.metrics.RecordPlanMutation(op, metrics.OutcomeConflict)
		s.log.Warn("stale plan write rejected", zap.String("op", op), zap.String("plan_id", planID.Hex()))
		return &ConflictError{PlanID: planID}
	case errors.Is(err, repository.ErrInvalidRecord):
		return invalid("plan", err.Error())
	default:
		s.metrics.RecordPlanMutation(op, metrics.OutcomeError)
		s.log.Error("plan store failed", zap.String("op", op), zap.String("plan_id", planID.Hex()), zap.Error(err))
		return &PersistenceError{Op: op, Err: err}
	}
}

// currentUser returns the authenticated user or ErrUnauthenticated.
func currentUser(ctx context.Context) (primitive.ObjectID, error) {
	id, ok := identity.UserID(ctx)
	if !ok {
		return primitive.NilObjectID, ErrUnauthenticated
	}
	return id, nil
}
