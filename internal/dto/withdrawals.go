package dto

import "time"

type CreateWithdrawalRequestDTO struct {
	AmountCents int64  `json:"amount_cents" example:"5000"`
	CardNumber  string `json:"card_number" example:"4561261212345467"`
}

type WithdrawalResponseDTO struct {
	ID          int       `json:"id" example:"9"`
	UserID      int       `json:"user_id,omitempty" example:"5"`
	AmountCents int64     `json:"amount_cents" example:"5000"`
	Status      string    `json:"status" example:"PENDING"`
	Type        string    `json:"type" example:"WITHDRAW"`
	CreatedAt   time.Time `json:"created_at"`
}
