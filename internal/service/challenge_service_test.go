package service

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChallengeService(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	svc := NewChallengeService(memory.NewChallengeRepository(store), users, &fakeStorage{}, nil)

	aliceID := seedUser(t, users, "Alice Smith")
	require.NoError(t, users.SetAvatarKey(context.Background(), aliceID, "avatars/"+aliceID.Hex()+"/a.png"))
	alice := userCtx(aliceID)
	bob := userCtx(seedUser(t, users, "Bob Jones"))

	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	cardio, err := svc.CreateChallenge(alice, "30-Day Cardio", "Move every day", &start, &end)
	require.NoError(t, err)
	_, err = svc.CreateChallenge(bob, "Plank Month", "", nil, nil)
	require.NoError(t, err)

	joined, err := svc.JoinChallenge(alice, cardio.ID)
	require.NoError(t, err)
	require.Len(t, joined.Participants, 1)
	assert.Equal(t, "Alice Smith", joined.Participants[0].FullName)
	assert.Contains(t, joined.Participants[0].AvatarURL, "a.png")

	_, err = svc.JoinChallenge(alice, cardio.ID)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = svc.JoinChallenge(bob, cardio.ID)
	require.NoError(t, err)
	_, err = svc.JoinChallenge(bob, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := svc.ListChallenges(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Plank Month", all[0].Name, "newest first")
	assert.Len(t, all[1].Participants, 2)
	assert.Empty(t, all[1].Participants[1].AvatarURL, "no avatar, no URL")

	_, err = svc.CreateChallenge(alice, "Backwards", "", &end, &start)
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.CreateChallenge(context.Background(), "Anon", "", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
