package dto

type ReferralStatsResponseDTO struct {
	InviteCode      string `json:"invite_code" example:"KJ7TQ2ZR"`
	InvitedCount    int    `json:"invited_count" example:"4"`
	BonusTotalCents int64  `json:"bonus_total_cents" example:"4000"`
}
