package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeekSchedule(t *testing.T) {
	days := NewWeekSchedule()

	require.Len(t, days, 7)
	for _, d := range Weekdays {
		exercises, ok := days[d]
		assert.True(t, ok, "missing %s", d)
		assert.NotNil(t, exercises)
		assert.Empty(t, exercises)
	}
}

func TestWeekdayValid(t *testing.T) {
	tests := []struct {
		day  Weekday
		want bool
	}{
		{Monday, true},
		{Sunday, true},
		{"monday", false},
		{"Funday", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.day), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.day.Valid())
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-01 was a Monday.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, want := range Weekdays {
		assert.Equal(t, want, WeekdayOf(base.AddDate(0, 0, i)))
	}
}

func TestPrivacyValid(t *testing.T) {
	assert.True(t, PrivacyPrivate.Valid())
	assert.True(t, PrivacyPublic.Valid())
	assert.False(t, Privacy("private").Valid())
	assert.False(t, Privacy("").Valid())
}

func TestDaySchedule_WithExercise(t *testing.T) {
	t.Run("appends in order and keeps duplicates", func(t *testing.T) {
		days := NewWeekSchedule().
			WithExercise(Monday, "Push-ups").
			WithExercise(Monday, "Squats").
			WithExercise(Monday, "Push-ups")

		assert.Equal(t, []string{"Push-ups", "Squats", "Push-ups"}, days[Monday])
		assert.Empty(t, days[Tuesday])
	})

	t.Run("creates an absent day", func(t *testing.T) {
		days := DaySchedule{}.WithExercise(Friday, "Lunges")

		assert.Equal(t, DaySchedule{Friday: {"Lunges"}}, days)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		original := DaySchedule{Monday: make([]string, 1, 4)}
		original[Monday][0] = "Plank"

		derived := original.WithExercise(Monday, "Burpees")

		assert.Equal(t, []string{"Plank"}, original[Monday])
		assert.Equal(t, []string{"Plank", "Burpees"}, derived[Monday])
		derived[Monday][0] = "changed"
		assert.Equal(t, "Plank", original[Monday][0])
	})
}

func TestDaySchedule_WithoutDay(t *testing.T) {
	original := NewWeekSchedule().WithExercise(Monday, "Push-ups")

	derived := original.WithoutDay(Monday)

	assert.False(t, derived.Has(Monday))
	assert.Len(t, derived, 6)
	assert.True(t, original.Has(Monday), "receiver must keep the day")

	again := derived.WithoutDay(Monday)
	assert.Equal(t, derived, again)
}

func TestDaySchedule_ScheduledDays(t *testing.T) {
	days := DaySchedule{Sunday: {}, Monday: {"Run"}, Wednesday: {}}

	assert.Equal(t, []Weekday{Monday, Wednesday, Sunday}, days.ScheduledDays())
	assert.Empty(t, DaySchedule{}.ScheduledDays())
}
