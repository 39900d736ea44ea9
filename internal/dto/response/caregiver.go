package response

import (
	"time"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/domain"
)

type CaregiverResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Verified      bool                   `json:"verified"`
	RatingAverage float64                `json:"rating_average"`
	RatingCount   int                    `json:"rating_count"`
	TrustScore    float64                `json:"trust_score"`
	TrustLevel    string                 `json:"trust_level"`
	Complaints    int                    `json:"complaints"`
	AnomalyFlags  int                    `json:"anomaly_flags"`
	Breakdown     *domain.TrustBreakdown `json:"breakdown,omitempty"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func CaregiverToResponse(c *entity.Caregiver) CaregiverResponse {
	return CaregiverResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Verified:      c.Verified,
		RatingAverage: c.RatingAverage,
		RatingCount:   c.RatingCount,
		TrustScore:    c.TrustScore,
		TrustLevel:    domain.TrustLevel(c.TrustScore),
		Complaints:    c.Complaints,
		AnomalyFlags:  c.AnomalyFlags,
		UpdatedAt:     c.UpdatedAt,
	}
}
