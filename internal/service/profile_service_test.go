package service

import (
	"context"
	"strings"
	"testing"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"
	"fittrack/fitness-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

func seedUser(t *testing.T, repo repository.UserRepository, name string) primitive.ObjectID {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.User{
		FullName:     name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}

func TestProfileService_Avatar(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	fs := &fakeStorage{}
	svc := NewProfileService(users, fs, zaptest.NewLogger(t))
	userID := seedUser(t, users, "Grace Hopper")
	ctx := userCtx(userID)

	_, err := svc.GetAvatarURL(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RequestAvatarUpload(ctx, "text/html")
	assert.ErrorIs(t, err, ErrValidationFailed)

	first, err := svc.RequestAvatarUpload(ctx, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ObjectKey, "avatars/"+userID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(first.ObjectKey, ".png"))
	assert.Contains(t, first.UploadURL, first.ObjectKey)

	user, err := svc.ConfirmAvatar(ctx, first.ObjectKey)
	require.NoError(t, err)
	assert.True(t, user.HasAvatar())
	assert.Empty(t, user.PasswordHash)

	second, err := svc.RequestAvatarUpload(ctx, "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first.ObjectKey, second.ObjectKey)
	_, err = svc.ConfirmAvatar(ctx, second.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ObjectKey}, fs.deleted, "replaced avatar is removed")

	u, err := svc.GetAvatarURL(ctx)
	require.NoError(t, err)
	assert.Contains(t, u, second.ObjectKey)

	other := userCtx(seedUser(t, users, "Alan Turing"))
	_, err = svc.ConfirmAvatar(other, second.ObjectKey)
	assert.ErrorIs(t, err, ErrValidationFailed, "keys of other users are rejected")
}

func TestProfileService_UpdateProfile(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	svc := NewProfileService(users, nil, nil)
	ctx := userCtx(seedUser(t, users, "Old Name"))

	user, err := svc.UpdateProfile(ctx, "  New Name ")
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)

	_, err = svc.UpdateProfile(ctx, " ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.UpdateProfile(userCtx(primitive.NewObjectID()), "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RequestAvatarUpload(ctx, "image/png")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = svc.GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestProfileService_PresignFailureIsPersistenceError(t *testing.T) {
	users := memory.NewUserRepository(memory.NewStore())
	svc := NewProfileService(users, &fakeStorage{failPut: true}, nil)

	_, err := svc.RequestAvatarUpload(userCtx(seedUser(t, users, "Ann")), "image/gif")
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "AccessDenied: bucket policy", err.Error())
}
