package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorIDKey   contextKey = "actor_id"
	RequestIDKey contextKey = "request_id"
)

// GetActorFromContext returns the acting user. Requests without an
// authenticated actor run as the system actor (uuid.Nil).
func GetActorFromContext(ctx context.Context) uuid.UUID {
	actorVal := ctx.Value(ActorIDKey)
	if actorVal == nil {
		return uuid.Nil
	}

	actorID, ok := actorVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return actorID
}

func SetActorContext(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, ActorIDKey, actorID)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(RequestIDKey)
	if val == nil {
		return "", false
	}

	id, ok := val.(string)
	return id, ok
}

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
