package notify

import "time"

const (
	EventDepositConfirmed   = "deposit_confirmed"
	EventDepositRejected    = "deposit_rejected"
	EventWithdrawalCreated  = "withdrawal_created"
	EventWithdrawalApproved = "withdrawal_approved"
	EventWithdrawalRejected = "withdrawal_rejected"
	EventTaskCompleted      = "task_completed"
	EventVipUpgraded        = "vip_upgraded"
	EventReferralBonus      = "referral_bonus"
)

type Event struct {
	ID        string         `json:"id"`
	UserID    int            `json:"user_id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
