package service

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func TestWorkoutLogService_Lifecycle(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, 6, 5, 18, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })
	svc := NewWorkoutLogService(memory.NewWorkoutLogRepository(store))
	ctx := userCtx(primitive.NewObjectID())

	run, err := svc.LogWorkout(ctx, WorkoutInput{
		Name: "Morning run", Category: domain.CategoryCardio,
		DurationHours: 0.5, CaloriesBurned: 320, DistanceKm: ptr(5.2),
	})
	require.NoError(t, err)

	now = now.Add(24 * time.Hour)
	_, err = svc.LogWorkout(ctx, WorkoutInput{
		Name: "Squats", Category: domain.CategoryStrength,
		DurationHours: 1, CaloriesBurned: 400, Sets: ptr(5), Reps: ptr(5),
	})
	require.NoError(t, err)

	history, err := svc.ListHistory(ctx, nil)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Squats", history[0].Name)

	day := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	history, err = svc.ListHistory(ctx, &day)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, run.ID, history[0].ID)

	updated, err := svc.UpdateWorkout(ctx, run.ID, WorkoutInput{
		Name: "Evening run", Category: domain.CategoryStrength, DurationHours: 0.75, DistanceKm: ptr(7.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Evening run", updated.Name)
	assert.Equal(t, domain.CategoryCardio, updated.Category, "category is not editable")
	assert.Equal(t, 7.0, *updated.DistanceKm)

	_, err = svc.UpdateWorkout(userCtx(primitive.NewObjectID()), run.ID, WorkoutInput{Name: "Hijack"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteWorkout(ctx, run.ID))
	assert.ErrorIs(t, svc.DeleteWorkout(ctx, run.ID), ErrNotFound)
}

func TestWorkoutLogService_Validation(t *testing.T) {
	svc := NewWorkoutLogService(memory.NewWorkoutLogRepository(memory.NewStore()))
	ctx := userCtx(primitive.NewObjectID())

	tests := []struct {
		field string
		in    WorkoutInput
	}{
		{"name", WorkoutInput{Category: domain.CategoryCardio}},
		{"category", WorkoutInput{Name: "Swim", Category: "swimming"}},
		{"durationHours", WorkoutInput{Name: "Swim", Category: domain.CategoryCardio, DurationHours: -1}},
		{"reps", WorkoutInput{Name: "Curl", Category: domain.CategoryStrength, Reps: ptr(-3)}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := svc.LogWorkout(ctx, tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	_, err := svc.ListHistory(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDashboardService_Stats(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewWorkoutLogRepository(store)
	user := primitive.NewObjectID()
	ctx := userCtx(user)

	// Wednesday 2024-06-05; the week runs Monday 06-03 to Sunday 06-09.
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	entries := []struct {
		at       time.Time
		hours    float64
		calories int
	}{
		{time.Date(2024, 6, 3, 7, 0, 0, 0, time.UTC), 1, 300},
		{time.Date(2024, 6, 3, 19, 0, 0, 0, time.UTC), 0.5, 150},
		{time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC), 1.5, 500},
		{time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC), 2, 700}, // previous week
	}
	for _, e := range entries {
		_, err := repo.Create(context.Background(), &domain.WorkoutLog{
			UserID: user, Name: "w", Category: domain.CategoryCardio,
			DurationHours: e.hours, CaloriesBurned: e.calories, CreatedAt: e.at,
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(context.Background(), &domain.WorkoutLog{UserID: primitive.NewObjectID(), Name: "other", CaloriesBurned: 999})
	require.NoError(t, err)

	svc := NewDashboardService(repo, func() time.Time { return now })
	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalWorkouts)
	assert.Equal(t, 1650, stats.CaloriesBurned)
	assert.Equal(t, 3, stats.ActiveDays)
	require.Len(t, stats.WeeklyProgress, 7)
	assert.Equal(t, DayProgress{Day: domain.Monday, Hours: 1.5}, stats.WeeklyProgress[0])
	assert.Equal(t, DayProgress{Day: domain.Wednesday, Hours: 1.5}, stats.WeeklyProgress[2])
	assert.Equal(t, DayProgress{Day: domain.Thursday, Hours: 0}, stats.WeeklyProgress[3])
	assert.Equal(t, domain.Sunday, stats.WeeklyProgress[6].Day)
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, startOfWeek(monday))
}
