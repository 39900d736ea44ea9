package entity

import (
	"github.com/google/uuid"
)

type LedgerStatus string

const (
	LedgerStatusPending   LedgerStatus = "pending"
	LedgerStatusSubmitted LedgerStatus = "submitted"
	LedgerStatusConfirmed LedgerStatus = "confirmed"
	LedgerStatusFailed    LedgerStatus = "failed"
)

type Rating struct {
	BaseSimple
	BookingID    uuid.UUID    `db:"booking_id"`
	CaregiverID  uuid.UUID    `db:"caregiver_id"`
	Value        float64      `db:"value"` // 1.0-5.0
	ReviewText   *string      `db:"review_text"`
	LedgerStatus LedgerStatus `db:"ledger_status"`
	LedgerTxHash *string      `db:"ledger_tx_hash"`
	LedgerDigest *string      `db:"ledger_digest"`
}
