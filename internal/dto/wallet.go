package dto

type BalanceResponseDTO struct {
	BalanceCents int64  `json:"balance_cents" example:"12050"`
	VipLevel     string `json:"vip_level" example:"FREE"`
}
