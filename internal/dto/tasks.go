package dto

type TaskResponseDTO struct {
	ID              int    `json:"id" example:"3"`
	Title           string `json:"title" example:"Watch the product video"`
	RewardCents     int64  `json:"reward_cents" example:"200"`
	DurationSeconds int    `json:"duration_seconds" example:"30"`
	MinVipLevel     string `json:"min_vip_level" example:"FREE"`
	Locked          bool   `json:"locked" example:"false"`
}

type TaskCompletionResponseDTO struct {
	TaskID       int   `json:"task_id" example:"3"`
	RewardCents  int64 `json:"reward_cents" example:"200"`
	BalanceCents int64 `json:"balance_cents" example:"12250"`
}

type CreateTaskRequestDTO struct {
	Title           string `json:"title" example:"Watch the product video"`
	RewardCents     int64  `json:"reward_cents" example:"200"`
	DurationSeconds int    `json:"duration_seconds" example:"30"`
	MinVipLevel     string `json:"min_vip_level" example:"FREE"`
}
