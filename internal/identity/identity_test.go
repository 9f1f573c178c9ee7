package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserID(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	_, ok = UserID(WithUserID(context.Background(), primitive.NilObjectID))
	assert.False(t, ok, "a zero id is treated as anonymous")

	id := primitive.NewObjectID()
	got, ok := UserID(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
