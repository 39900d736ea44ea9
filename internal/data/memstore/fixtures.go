package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/domain"
)

// demoCaregivers back local runs with the memory driver so matching has
// someone to pick. They are never loaded with the postgres driver.
var demoCaregivers = []struct {
	id       string
	name     string
	verified bool
}{
	{"6f1c2a8e-3d4b-4c5a-9e7f-1a2b3c4d5e01", "Asha Menon", true},
	{"6f1c2a8e-3d4b-4c5a-9e7f-1a2b3c4d5e02", "Ravi Kulkarni", true},
	{"6f1c2a8e-3d4b-4c5a-9e7f-1a2b3c4d5e03", "Meera Iyer", false},
}

// SeedDemo loads the demo caregivers.
func (s *Store) SeedDemo(ctx context.Context, now time.Time) error {
	repo := s.Repository()
	for _, d := range demoCaregivers {
		c := &entity.Caregiver{
			ID:         uuid.MustParse(d.id),
			Name:       d.name,
			Verified:   d.verified,
			TrustScore: domain.ComputeTrustScore(domain.TrustInput{Verified: d.verified}),
			UpdatedAt:  now,
		}
		if err := repo.Caregiver.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
