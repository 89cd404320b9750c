// Package auth carries the acting principal through call contexts.
// Deciding who may call a mutating operation happens upstream; this
// package only transports the evidence and lets the service fail closed
// when it is absent.
package auth

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor records the authenticated caller on the context.
func WithActor(ctx context.Context, userId uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userId)
}

// ActorFromContext returns the acting principal, if one was recorded.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	actor, ok := ctx.Value(actorKey{}).(uuid.UUID)
	return actor, ok
}

type systemKey struct{}

// WithSystemActor marks a trusted in-process caller, such as the audit
// loop started by the operator. It carries the same weight as an Owner.
func WithSystemActor(ctx context.Context) context.Context {
	return context.WithValue(ctx, systemKey{}, true)
}

func IsSystemActor(ctx context.Context) bool {
	system, ok := ctx.Value(systemKey{}).(bool)
	return ok && system
}
