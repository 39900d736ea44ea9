package response

import (
	"time"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/domain"
)

type BookingResponse struct {
	ID                 string                 `json:"id"`
	CivilianID         string                 `json:"civilian_id"`
	CaregiverID        *string                `json:"caregiver_id,omitempty"`
	StartTime          time.Time              `json:"start_time"`
	EndTime            time.Time              `json:"end_time"`
	Status             entity.BookingStatus   `json:"status"`
	PaymentStatus      entity.PaymentStatus   `json:"payment_status"`
	PaymentReference   *string                `json:"payment_reference,omitempty"`
	StartedAt          *time.Time             `json:"started_at,omitempty"`
	EndedAt            *time.Time             `json:"ended_at,omitempty"`
	AllowedTransitions []entity.BookingStatus `json:"allowed_transitions"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

type RatingResponse struct {
	ID           string              `json:"id"`
	BookingID    string              `json:"booking_id"`
	CaregiverID  string              `json:"caregiver_id"`
	Value        float64             `json:"value"`
	ReviewText   *string             `json:"review_text,omitempty"`
	LedgerStatus entity.LedgerStatus `json:"ledger_status"`
	LedgerTxHash *string             `json:"ledger_tx_hash,omitempty"`
	LedgerDigest *string             `json:"ledger_digest,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type RatedBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Rating  RatingResponse  `json:"rating"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID.String(),
		CivilianID:         b.CivilianID.String(),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentReference:   b.PaymentReference,
		StartedAt:          b.StartedAt,
		EndedAt:            b.EndedAt,
		AllowedTransitions: domain.AllowedTransitions(b.Status),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if b.CaregiverID != nil {
		id := b.CaregiverID.String()
		resp.CaregiverID = &id
	}
	return resp
}

func RatingToResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:           r.ID.String(),
		BookingID:    r.BookingID.String(),
		CaregiverID:  r.CaregiverID.String(),
		Value:        r.Value,
		ReviewText:   r.ReviewText,
		LedgerStatus: r.LedgerStatus,
		LedgerTxHash: r.LedgerTxHash,
		LedgerDigest: r.LedgerDigest,
		CreatedAt:    r.CreatedAt,
	}
}
