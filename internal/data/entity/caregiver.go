package entity

import (
	"time"

	"github.com/google/uuid"
)

// Caregiver is the engine's cached view of a caregiver profile. Identity and
// skills are owned by the caregiver service; the engine only maintains the
// reputation fields.
type Caregiver struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Verified      bool      `db:"verified"`
	RatingAverage float64   `db:"rating_average"`
	RatingCount   int       `db:"rating_count"`
	TrustScore    float64   `db:"trust_score"`
	Complaints    int       `db:"complaints"`
	AnomalyFlags  int       `db:"anomaly_flags"`
	UpdatedAt     time.Time `db:"updated_at"`
}
