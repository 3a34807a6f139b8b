package domain

import "errors"

// Expected business outcomes. Handlers map these to HTTP statuses with
// errors.Is; anything else is treated as an internal error.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidState        = errors.New("record is not in a state that allows this operation")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyCompleted    = errors.New("task already completed")
	ErrVipRequired         = errors.New("task requires VIP level")
	ErrAlreadyVip          = errors.New("user already has VIP level")
	ErrRateLimited         = errors.New("daily withdrawal limit reached")
	ErrInvalidInviteCode   = errors.New("invalid invite code")
	ErrInvalidCardNumber   = errors.New("invalid card number")
	ErrUserNotFound        = errors.New("user not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrRecordNotFound      = errors.New("record not found")
	ErrLoginTaken          = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
