package domain

// Deposit and withdrawal statuses are closed enums with one-way transitions.
// Transition checks live here so no caller compares status strings inline.

type DepositStatus string

const (
	DepositPending   DepositStatus = "PENDING"
	DepositConfirmed DepositStatus = "CONFIRMED"
	DepositRejected  DepositStatus = "REJECTED"
)

func (s DepositStatus) Terminal() bool {
	return s == DepositConfirmed || s == DepositRejected
}

func (s DepositStatus) CanTransitionTo(next DepositStatus) bool {
	return s == DepositPending && next.Terminal()
}

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected
}

func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	return s == WithdrawalPending && next.Terminal()
}

type WithdrawalType string

const (
	// WithdrawalTypeWithdraw is a user-requested payout, debited on create.
	WithdrawalTypeWithdraw WithdrawalType = "WITHDRAW"
	// WithdrawalTypeVipUpgrade rows are created already APPROVED as an audit
	// trail of the VIP purchase and never transition.
	WithdrawalTypeVipUpgrade WithdrawalType = "VIP_UPGRADE"
)
