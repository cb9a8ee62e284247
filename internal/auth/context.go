// Package auth turns bearer tokens into Actors and hashes passwords.
package auth

import (
	"context"

	"example.com/workoutlog/internal/domain"
)

type contextKey struct{}

// WithActor stores the actor in the request context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// FromContext retrieves the actor from context.
func FromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(domain.Actor)
	return actor, ok
}
