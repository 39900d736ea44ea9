package request

import (
	"time"
)

type CreateBookingRequest struct {
	CivilianID  string    `json:"civilian_id" validate:"required,uuid"`
	CaregiverID *string   `json:"caregiver_id,omitempty" validate:"omitempty,uuid"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// AssignCaregiverRequest carries an optional caregiver chosen by the
// external ranker for match or confirm.
type AssignCaregiverRequest struct {
	CaregiverID *string `json:"caregiver_id,omitempty" validate:"omitempty,uuid"`
}

type SubmitRatingRequest struct {
	Value      float64 `json:"value" validate:"required,min=1,max=5"`
	ReviewText *string `json:"review_text,omitempty" validate:"omitempty,max=2000"`
}

// ReasonRequest is the optional body of pause and cancel.
type ReasonRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
