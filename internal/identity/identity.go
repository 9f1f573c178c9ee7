// Package identity carries the authenticated user id through a request
// context.
package identity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey struct{}

// WithUserID returns a copy of ctx that carries userID.
func WithUserID(ctx context.Context, userID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the user id stored in ctx. ok is false when the request is
// anonymous.
func UserID(ctx context.Context) (id primitive.ObjectID, ok bool) {
	id, ok = ctx.Value(ctxKey{}).(primitive.ObjectID)
	if !ok || id.IsZero() {
		return primitive.NilObjectID, false
	}
	return id, true
}
