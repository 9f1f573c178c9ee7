package service

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-app/internal/repository/memory"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(memory.NewStore()), "test-secret", time.Hour, zaptest.NewLogger(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada Lovelace", "Ada@Example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, "Ada Again", "ada@example.com", "another pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, logged, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(memory.NewStore()), "test-secret", 0, nil)

	tests := []struct {
		name, fullName, email, password, field string
	}{
		{"missing name", "", "a@b.co", "longenough", "fullName"},
		{"bad email", "A", "not-an-email", "longenough", "email"},
		{"short password", "A", "a@b.co", "short", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.fullName, tt.email, tt.password)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
