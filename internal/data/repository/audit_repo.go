package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/pkg/database"
)

// AuditRepository is append-only.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditLog) error
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]*entity.AuditLog, error)
}

type auditRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAuditRepository(db database.Querier, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Create(ctx context.Context, entry *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, detail, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Detail,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create audit entry %s: %w", entry.Action, err)
	}
	return nil
}

func (r *auditRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, entity_type, entity_id, detail, timestamp
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY timestamp
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		r.log.Error("Failed to list audit entries", zap.Error(err), zap.String("entity_id", entityID.String()))
		return nil, fmt.Errorf("list audit entries for %s %s: %w", entityType, entityID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
