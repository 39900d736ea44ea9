package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an immutable record of a state-changing action.
type AuditLog struct {
	ID         uuid.UUID  `db:"id"`
	ActorID    uuid.UUID  `db:"actor_id"` // uuid.Nil for system actions
	Action     string     `db:"action"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Detail     *string    `db:"detail"`
	Timestamp  time.Time  `db:"timestamp"`
}
