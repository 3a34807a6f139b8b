package dto

import "time"

type DepositResponseDTO struct {
	ID            int       `json:"id" example:"17"`
	AmountCents   int64     `json:"amount_cents" example:"10000"`
	Status        string    `json:"status" example:"PENDING"`
	DeclaredName  string    `json:"declared_name" example:"J. Smith"`
	ProofImageRef string    `json:"proof_image_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AdminDepositResponseDTO struct {
	ID             int       `json:"id" example:"17"`
	UserID         int       `json:"user_id" example:"5"`
	AmountCents    int64     `json:"amount_cents" example:"10000"`
	Status         string    `json:"status" example:"PENDING"`
	DeclaredName   string    `json:"declared_name" example:"J. Smith"`
	PayerReference string    `json:"payer_reference" example:"TRX-20260831-01"`
	ProofImageRef  string    `json:"proof_image_ref,omitempty"`
	MethodID       int       `json:"method_id" example:"1"`
	CreatedAt      time.Time `json:"created_at"`
}
