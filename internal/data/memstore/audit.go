package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

type auditRepo struct {
	s  *Store
	tx *tx
}

func (r *auditRepo) Create(ctx context.Context, entry *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := &entity.AuditLog{}
	*copied = *entry
	r.s.audits = append(r.s.audits, copied)
	r.tx.record(func() {
		for i, e := range r.s.audits {
			if e == copied {
				r.s.audits = append(r.s.audits[:i], r.s.audits[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *auditRepo) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.AuditLog
	for _, e := range r.s.audits {
		if e.EntityType == entityType && e.EntityID != nil && *e.EntityID == entityID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return page(out, limit, 0), nil
}
