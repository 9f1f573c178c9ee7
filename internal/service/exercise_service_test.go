package service

import (
	"context"
	"testing"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExerciseService(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepository(memory.NewStore()))
	ctx := userCtx(primitive.NewObjectID())
	other := userCtx(primitive.NewObjectID())

	for _, name := range []string{"Squat", "Bench Press", "Leg Press"} {
		_, err := svc.CreateExercise(ctx, name, domain.CategoryStrength, "")
		require.NoError(t, err)
	}
	_, err := svc.CreateExercise(other, "Press-ups", domain.CategoryStrength, "https://cdn.example.com/p.png")
	require.NoError(t, err)

	t.Run("search is case-insensitive and owner scoped", func(t *testing.T) {
		got, err := svc.ListExercises(ctx, "PRESS")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Bench Press", got[0].Name)
		assert.Equal(t, "Leg Press", got[1].Name)
	})

	t.Run("toggle favorite flips the flag", func(t *testing.T) {
		all, err := svc.ListExercises(ctx, "")
		require.NoError(t, err)
		id := all[0].ID

		ex, err := svc.ToggleFavorite(ctx, id)
		require.NoError(t, err)
		assert.True(t, ex.Favorite)
		ex, err = svc.ToggleFavorite(ctx, id)
		require.NoError(t, err)
		assert.False(t, ex.Favorite)

		_, err = svc.ToggleFavorite(other, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		all, err := svc.ListExercises(ctx, "squat")
		require.NoError(t, err)
		require.Len(t, all, 1)

		assert.ErrorIs(t, svc.DeleteExercise(other, all[0].ID), ErrNotFound)
		require.NoError(t, svc.DeleteExercise(ctx, all[0].ID))
		assert.ErrorIs(t, svc.DeleteExercise(ctx, all[0].ID), ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreateExercise(ctx, "", domain.CategoryCardio, "")
		assert.ErrorIs(t, err, ErrValidationFailed)
		_, err = svc.CreateExercise(ctx, "Jog", "running", "")
		assert.ErrorIs(t, err, ErrValidationFailed)
		_, err = svc.CreateExercise(ctx, "Jog", domain.CategoryCardio, "not a url")
		assert.ErrorIs(t, err, ErrValidationFailed)
		_, err = svc.CreateExercise(context.Background(), "Jog", domain.CategoryCardio, "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
