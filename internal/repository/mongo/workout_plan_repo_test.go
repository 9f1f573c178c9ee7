package mongo

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const planNS = "fittrack.workout_plans"

// planDoc renders a plan the way the server would return it.
func planDoc(t *testing.T, plan domain.WorkoutPlan) bson.D {
	t.Helper()
	raw, err := bson.Marshal(plan)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func samplePlan(owner primitive.ObjectID, name string, created time.Time) domain.WorkoutPlan {
	return domain.WorkoutPlan{
		ID:        primitive.NewObjectID(),
		OwnerID:   owner,
		Name:      name,
		Privacy:   domain.PrivacyPrivate,
		Days:      domain.NewWeekSchedule(),
		Revision:  1,
		CreatedAt: created.UTC().Truncate(time.Millisecond),
		UpdatedAt: created.UTC().Truncate(time.Millisecond),
	}
}

func TestMongoWorkoutPlanRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	owner := primitive.NewObjectID()

	mt.Run("create assigns id and first revision", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		plan := &domain.WorkoutPlan{OwnerID: owner, Name: "Leg Day", Privacy: domain.PrivacyPrivate, Days: domain.NewWeekSchedule()}
		id, err := repo.Create(ctx, plan)

		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
		assert.Equal(mt, id, plan.ID)
		assert.Equal(mt, int64(1), plan.Revision)
		assert.False(mt, plan.CreatedAt.IsZero())
	})

	mt.Run("create rejects a nameless plan without a round trip", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)

		_, err := repo.Create(ctx, &domain.WorkoutPlan{OwnerID: owner})

		assert.ErrorIs(mt, err, repository.ErrInvalidRecord)
	})

	mt.Run("get by id decodes the days map", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		stored := samplePlan(owner, "Push", time.Now())
		stored.Days = stored.Days.WithExercise(domain.Monday, "Push-ups").WithoutDay(domain.Sunday)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, planNS, mtest.FirstBatch, planDoc(mt.T, stored)))

		got, err := repo.GetByID(ctx, stored.ID)

		require.NoError(mt, err)
		assert.Equal(mt, []string{"Push-ups"}, got.Days[domain.Monday])
		assert.False(mt, got.Days.Has(domain.Sunday))
		assert.True(mt, got.Days.Has(domain.Tuesday))
	})

	mt.Run("get by id maps no documents to ErrNotFound", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, planNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID())

		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("get by owner returns the server order", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		newer := samplePlan(owner, "Newer", time.Now())
		older := samplePlan(owner, "Older", time.Now().Add(-time.Hour))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, planNS, mtest.FirstBatch, planDoc(mt.T, newer), planDoc(mt.T, older)))

		plans, err := repo.GetByOwnerID(ctx, owner)

		require.NoError(mt, err)
		require.Len(mt, plans, 2)
		assert.Equal(mt, "Newer", plans[0].Name)
		assert.Equal(mt, "Older", plans[1].Name)
	})

	mt.Run("get by privacy with no matches is an empty slice", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, planNS, mtest.FirstBatch))

		plans, err := repo.GetByPrivacy(ctx, domain.PrivacyPublic)

		require.NoError(mt, err)
		assert.NotNil(mt, plans)
		assert.Empty(mt, plans)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		updated := samplePlan(owner, "Leg Day", time.Now())
		updated.Privacy = domain.PrivacyPublic
		updated.Revision = 2
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: planDoc(mt.T, updated)}))

		public := domain.PrivacyPublic
		got, err := repo.Update(ctx, updated.ID, owner, 1, repository.PlanUpdate{Privacy: &public})

		require.NoError(mt, err)
		assert.Equal(mt, domain.PrivacyPublic, got.Privacy)
		assert.Equal(mt, int64(2), got.Revision)
	})

	mt.Run("update with a stale revision is a conflict", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, planNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(1)}}),
		)

		_, err := repo.Update(ctx, primitive.NewObjectID(), owner, 3, repository.PlanUpdate{Days: domain.DaySchedule{}})

		assert.ErrorIs(mt, err, repository.ErrConflict)
	})

	mt.Run("update of a missing plan is not found", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, planNS, mtest.FirstBatch),
		)

		_, err := repo.Update(ctx, primitive.NewObjectID(), owner, 1, repository.PlanUpdate{Days: domain.DaySchedule{}})

		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("update surfaces server errors verbatim", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized on fittrack",
		}))

		_, err := repo.Update(ctx, primitive.NewObjectID(), owner, 1, repository.PlanUpdate{Days: domain.DaySchedule{}})

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized on fittrack")
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoWorkoutPlanRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		id := primitive.NewObjectID()

		assert.NoError(mt, repo.Delete(ctx, id, owner))
		assert.ErrorIs(mt, repo.Delete(ctx, id, owner), repository.ErrNotFound)
	})
}
