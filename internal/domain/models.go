package domain

import "time"

type VipLevel string

const (
	VipLevelFree VipLevel = "FREE"
	VipLevelVip  VipLevel = "VIP"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	BalanceCents int64     `db:"balance_cents"`
	VipLevel     VipLevel  `db:"vip_level"`
	InviteCode   *string   `db:"invite_code"`
	InvitedBy    *int      `db:"invited_by"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

type Deposit struct {
	ID             int           `db:"id"`
	UserID         int           `db:"user_id"`
	AmountCents    int64         `db:"amount_cents"`
	Status         DepositStatus `db:"status"`
	DeclaredName   string        `db:"declared_name"`
	PayerReference string        `db:"payer_reference"`
	ProofImageRef  string        `db:"proof_image_ref"`
	MethodID       int           `db:"method_id"`
	CreatedAt      time.Time     `db:"created_at"`
}

type Withdrawal struct {
	ID          int              `db:"id"`
	UserID      int              `db:"user_id"`
	AmountCents int64            `db:"amount_cents"`
	Status      WithdrawalStatus `db:"status"`
	Type        WithdrawalType   `db:"type"`
	CardNumber  string           `db:"card_number"`
	CreatedAt   time.Time        `db:"created_at"`
}

type Task struct {
	ID              int      `db:"id"`
	Title           string   `db:"title"`
	RewardCents     int64    `db:"reward_cents"`
	DurationSeconds int      `db:"duration_seconds"`
	MinVipLevel     VipLevel `db:"min_vip_level"`
	IsActive        bool     `db:"is_active"`
}

// TaskCompletion is append-only. RewardCents snapshots the task reward at
// completion time so later catalog changes don't rewrite history.
type TaskCompletion struct {
	ID                 int       `db:"id"`
	UserID             int       `db:"user_id"`
	TaskID             int       `db:"task_id"`
	RewardCents        int64     `db:"reward_cents"`
	BalanceBeforeCents int64     `db:"balance_before_cents"`
	BalanceAfterCents  int64     `db:"balance_after_cents"`
	CreatedAt          time.Time `db:"created_at"`
}

// TaskListing is a catalog entry as seen by one user: VIP-gated tasks stay
// visible but locked for FREE users.
type TaskListing struct {
	Task   Task
	Locked bool
}

type Referral struct {
	InviterUserID int       `db:"inviter_user_id"`
	InvitedUserID int       `db:"invited_user_id"`
	CreatedAt     time.Time `db:"created_at"`
}

// ReferralBonus is keyed by deposit id: a deposit pays out at most once.
type ReferralBonus struct {
	DepositID     int       `db:"deposit_id"`
	InviterUserID int       `db:"inviter_user_id"`
	BonusCents    int64     `db:"bonus_cents"`
	CreatedAt     time.Time `db:"created_at"`
}

type ReferralStats struct {
	InviteCode      string
	InvitedCount    int
	BonusTotalCents int64
}
