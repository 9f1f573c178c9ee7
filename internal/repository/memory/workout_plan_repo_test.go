package memory

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWorkoutPlanRepository_Ordering(t *testing.T) {
	store := NewStore()
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return fixed })
	repo := NewWorkoutPlanRepository(store)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &domain.WorkoutPlan{OwnerID: owner, Name: name, Privacy: domain.PrivacyPublic, Days: domain.NewWeekSchedule()})
		require.NoError(t, err)
	}

	plans, err := repo.GetByOwnerID(ctx, owner)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "third", plans[0].Name, "equal timestamps fall back to insertion order")
	assert.Equal(t, "first", plans[2].Name)
}

func TestWorkoutPlanRepository_UpdateRevision(t *testing.T) {
	repo := NewWorkoutPlanRepository(NewStore())
	ctx := context.Background()
	owner := primitive.NewObjectID()
	plan := &domain.WorkoutPlan{OwnerID: owner, Name: "Push", Privacy: domain.PrivacyPrivate, Days: domain.NewWeekSchedule()}
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, id, owner, 1, repository.PlanUpdate{Days: plan.Days.WithExercise(domain.Monday, "Dips")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Revision)

	_, err = repo.Update(ctx, id, owner, 1, repository.PlanUpdate{Days: domain.DaySchedule{}})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = repo.Update(ctx, id, primitive.NewObjectID(), 2, repository.PlanUpdate{Days: domain.DaySchedule{}})
	assert.ErrorIs(t, err, repository.ErrNotFound, "other owners cannot see the plan")
}

func TestWorkoutPlanRepository_ReturnsCopies(t *testing.T) {
	repo := NewWorkoutPlanRepository(NewStore())
	ctx := context.Background()
	owner := primitive.NewObjectID()
	id, err := repo.Create(ctx, &domain.WorkoutPlan{OwnerID: owner, Name: "Core", Privacy: domain.PrivacyPrivate, Days: domain.NewWeekSchedule()})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got.Days[domain.Monday] = append(got.Days[domain.Monday], "Plank")
	delete(got.Days, domain.Friday)

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, again.Days[domain.Monday])
	assert.True(t, again.Days.Has(domain.Friday))
}

func TestChallengeRepository_AddParticipantOnce(t *testing.T) {
	repo := NewChallengeRepository(NewStore())
	ctx := context.Background()
	id, err := repo.Create(ctx, &domain.Challenge{CreatorID: primitive.NewObjectID(), Name: "30-Day Cardio"})
	require.NoError(t, err)
	user := primitive.NewObjectID()

	require.NoError(t, repo.AddParticipant(ctx, id, domain.Participant{UserID: user}))
	assert.ErrorIs(t, repo.AddParticipant(ctx, id, domain.Participant{UserID: user}), repository.ErrDuplicateKey)
	assert.ErrorIs(t, repo.AddParticipant(ctx, primitive.NewObjectID(), domain.Participant{UserID: user}), repository.ErrNotFound)

	c, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, c.Participants, 1)
}

func TestWorkoutLogRepository_Filter(t *testing.T) {
	repo := NewWorkoutLogRepository(NewStore())
	ctx := context.Background()
	user := primitive.NewObjectID()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{day.Add(-time.Hour), day.Add(8 * time.Hour), day.Add(20 * time.Hour), day.Add(24 * time.Hour)} {
		_, err := repo.Create(ctx, &domain.WorkoutLog{UserID: user, Name: "Run", CreatedAt: at})
		require.NoError(t, err)
	}

	logs, err := repo.GetByUserID(ctx, user, repository.WorkoutLogFilter{From: day, To: day.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt))
}
