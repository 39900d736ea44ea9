package request

type UpsertCaregiverRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Verified bool   `json:"verified"`
}

type CaregiverIncidentRequest struct {
	Detail string `json:"detail" validate:"omitempty,max=1000"`
}

type UpdateLedgerStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=submitted confirmed failed"`
	TxHash *string `json:"tx_hash,omitempty" validate:"omitempty,max=130"`
}
