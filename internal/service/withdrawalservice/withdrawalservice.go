package withdrawalservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/pkg/validate"
)

// VipCostCents is the one-time price of the VIP upgrade (80 currency units).
const VipCostCents = 8000

const dailyWithdrawLimit = 1

// AllowedAmounts is the closed set of withdrawal denominations.
var AllowedAmounts = []int64{2000, 5000, 10000, 30000, 50000}

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetForUpdate(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, withdrawalID int, from, to domain.WithdrawalStatus) (bool, error)
	CountWithdrawToday(ctx context.Context, userID int) (int, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	ListByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]domain.Withdrawal, error)
}
type UserRepo interface {
	GetForUpdate(ctx context.Context, userID int) (*domain.User, error)
	AdjustBalance(ctx context.Context, userID int, deltaCents int64) (*int64, error)
	SetVipLevel(ctx context.Context, userID int, level domain.VipLevel) error
}
type Notifier interface {
	Publish(ctx context.Context, userID int, eventType string, payload map[string]any)
}

type Service struct {
	withdrawals WithdrawalRepo
	users       UserRepo
	txManager   pg.TXManager
	notifier    Notifier
}

func New(withdrawals WithdrawalRepo, users UserRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		withdrawals: withdrawals,
		users:       users,
		txManager:   txManager,
		notifier:    notifier,
	}
}

func amountAllowed(amountCents int64) bool {
	for _, a := range AllowedAmounts {
		if a == amountCents {
			return true
		}
	}
	return false
}

// Create places a withdrawal request and debits the balance immediately: a
// pending payout is a hold, not a promise, so the user can't spend funds
// twice. Rejecting the request later refunds the hold.
func (s *Service) Create(ctx context.Context, userID int, amountCents int64, cardNumber string) (*domain.Withdrawal, error) {
	if !amountAllowed(amountCents) {
		return nil, domain.ErrInvalidAmount
	}
	if !validate.IsCardNumber(cardNumber) {
		return nil, domain.ErrInvalidCardNumber
	}

	var withdrawal *domain.Withdrawal
	var newBalance int64

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		// The count must run after the user row lock is held: a concurrent
		// request for the same user commits its row before we get the lock,
		// so the count sees it and the daily cap holds.
		count, err := s.withdrawals.CountWithdrawToday(ctx, userID)
		if err != nil {
			return err
		}
		if count >= dailyWithdrawLimit {
			return domain.ErrRateLimited
		}

		if user.BalanceCents < amountCents {
			return domain.ErrInsufficientBalance
		}

		balance, err := s.users.AdjustBalance(ctx, userID, -amountCents)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrUserNotFound
		}
		newBalance = *balance

		w := &domain.Withdrawal{
			UserID:      userID,
			AmountCents: amountCents,
			Status:      domain.WithdrawalPending,
			Type:        domain.WithdrawalTypeWithdraw,
			CardNumber:  cardNumber,
		}
		withdrawal, err = s.withdrawals.Create(ctx, w)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, userID, notify.EventWithdrawalCreated, map[string]any{
		"withdrawal_id": withdrawal.ID,
		"amount_cents":  withdrawal.AmountCents,
		"balance_cents": newBalance,
	})
	return withdrawal, nil
}

// Approve finalizes the payout. The balance already reflects the hold taken
// at creation, so no further mutation happens here.
func (s *Service) Approve(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		w, err := s.withdrawals.GetForUpdate(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrRecordNotFound
		}
		if w.Type != domain.WithdrawalTypeWithdraw || !w.Status.CanTransitionTo(domain.WithdrawalApproved) {
			return domain.ErrInvalidState
		}
		ok, err := s.withdrawals.UpdateStatus(ctx, w.ID, domain.WithdrawalPending, domain.WithdrawalApproved)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		w.Status = domain.WithdrawalApproved
		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, withdrawal.UserID, notify.EventWithdrawalApproved, map[string]any{
		"withdrawal_id": withdrawal.ID,
		"amount_cents":  withdrawal.AmountCents,
	})
	return withdrawal, nil
}

// Reject returns the held amount to the user's balance and closes the
// request; both happen in one transaction.
func (s *Service) Reject(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal
	var newBalance int64

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		w, err := s.withdrawals.GetForUpdate(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrRecordNotFound
		}
		if w.Type != domain.WithdrawalTypeWithdraw || !w.Status.CanTransitionTo(domain.WithdrawalRejected) {
			return domain.ErrInvalidState
		}
		ok, err := s.withdrawals.UpdateStatus(ctx, w.ID, domain.WithdrawalPending, domain.WithdrawalRejected)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		balance, err := s.users.AdjustBalance(ctx, w.UserID, w.AmountCents)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrUserNotFound
		}
		newBalance = *balance

		w.Status = domain.WithdrawalRejected
		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, withdrawal.UserID, notify.EventWithdrawalRejected, map[string]any{
		"withdrawal_id": withdrawal.ID,
		"amount_cents":  withdrawal.AmountCents,
		"balance_cents": newBalance,
	})
	return withdrawal, nil
}

// UpgradeToVip debits the VIP price, flips the level and records an
// already-APPROVED VIP_UPGRADE withdrawal as the audit trail. The audit row
// never transitions and is excluded from the daily withdrawal cap.
func (s *Service) UpgradeToVip(ctx context.Context, userID int) (*domain.User, error) {
	var user *domain.User

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		u, err := s.users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		if u.VipLevel == domain.VipLevelVip {
			return domain.ErrAlreadyVip
		}
		if u.BalanceCents < VipCostCents {
			return domain.ErrInsufficientBalance
		}

		balance, err := s.users.AdjustBalance(ctx, userID, -VipCostCents)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrUserNotFound
		}
		if err := s.users.SetVipLevel(ctx, userID, domain.VipLevelVip); err != nil {
			return err
		}

		audit := &domain.Withdrawal{
			UserID:      userID,
			AmountCents: VipCostCents,
			Status:      domain.WithdrawalApproved,
			Type:        domain.WithdrawalTypeVipUpgrade,
		}
		if _, err := s.withdrawals.Create(ctx, audit); err != nil {
			return err
		}

		u.VipLevel = domain.VipLevelVip
		u.BalanceCents = *balance
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, userID, notify.EventVipUpgraded, map[string]any{
		"balance_cents": user.BalanceCents,
	})
	return user, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawals.ListByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) GetPending(ctx context.Context) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawals.ListByStatus(ctx, domain.WithdrawalPending)
	if err != nil {
		zap.L().Error("failed to fetch pending withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}
