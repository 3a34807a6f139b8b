package depositservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/pg"
)

// MinDepositCents is the floor for a deposit request (80 currency units).
const MinDepositCents = 8000

// referralBonusPercent of a confirmed deposit goes to the inviter.
const referralBonusPercent = 10

type DepositRepo interface {
	Create(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error)
	GetForUpdate(ctx context.Context, depositID int) (*domain.Deposit, error)
	UpdateStatus(ctx context.Context, depositID int, from, to domain.DepositStatus) (bool, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Deposit, error)
	ListByStatus(ctx context.Context, status domain.DepositStatus) ([]domain.Deposit, error)
}
type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	AdjustBalance(ctx context.Context, userID int, deltaCents int64) (*int64, error)
}
type ReferralRepo interface {
	InsertBonus(ctx context.Context, bonus *domain.ReferralBonus) (bool, error)
}
type Notifier interface {
	Publish(ctx context.Context, userID int, eventType string, payload map[string]any)
}

type Service struct {
	deposits  DepositRepo
	users     UserRepo
	referrals ReferralRepo
	txManager pg.TXManager
	notifier  Notifier
}

func New(deposits DepositRepo, users UserRepo, referrals ReferralRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		deposits:  deposits,
		users:     users,
		referrals: referrals,
		txManager: txManager,
		notifier:  notifier,
	}
}

// Create inserts a PENDING deposit. The balance is untouched until an admin
// confirms the bank transfer.
func (s *Service) Create(ctx context.Context, userID int, amountCents int64, declaredName, payerReference, proofImageRef string, methodID int) (*domain.Deposit, error) {
	if amountCents < MinDepositCents {
		return nil, domain.ErrInvalidAmount
	}

	deposit := &domain.Deposit{
		UserID:         userID,
		AmountCents:    amountCents,
		Status:         domain.DepositPending,
		DeclaredName:   declaredName,
		PayerReference: payerReference,
		ProofImageRef:  proofImageRef,
		MethodID:       methodID,
	}
	deposit, err := s.deposits.Create(ctx, deposit)
	if err != nil {
		zap.L().Error("can't create deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

// Approve confirms a PENDING deposit: status flip, balance credit and the
// inviter's bonus all commit or roll back together. The bonus insert is
// keyed by deposit id, so replaying an approval can never double-credit.
func (s *Service) Approve(ctx context.Context, depositID int) (*domain.Deposit, error) {
	var deposit *domain.Deposit
	var newBalance int64
	var bonus *domain.ReferralBonus

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		d, err := s.deposits.GetForUpdate(ctx, depositID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrRecordNotFound
		}
		if !d.Status.CanTransitionTo(domain.DepositConfirmed) {
			return domain.ErrInvalidState
		}
		ok, err := s.deposits.UpdateStatus(ctx, d.ID, domain.DepositPending, domain.DepositConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		balance, err := s.users.AdjustBalance(ctx, d.UserID, d.AmountCents)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrUserNotFound
		}
		newBalance = *balance

		user, err := s.users.GetByID(ctx, d.UserID)
		if err != nil {
			return err
		}
		if user != nil && user.InvitedBy != nil {
			bonusCents := d.AmountCents * referralBonusPercent / 100
			if bonusCents > 0 {
				b := &domain.ReferralBonus{
					DepositID:     d.ID,
					InviterUserID: *user.InvitedBy,
					BonusCents:    bonusCents,
				}
				inserted, err := s.referrals.InsertBonus(ctx, b)
				if err != nil {
					return err
				}
				if inserted {
					if _, err := s.users.AdjustBalance(ctx, *user.InvitedBy, bonusCents); err != nil {
						return err
					}
					bonus = b
				}
			}
		}

		d.Status = domain.DepositConfirmed
		deposit = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, deposit.UserID, notify.EventDepositConfirmed, map[string]any{
		"deposit_id":    deposit.ID,
		"amount_cents":  deposit.AmountCents,
		"balance_cents": newBalance,
	})
	if bonus != nil {
		s.notifier.Publish(ctx, bonus.InviterUserID, notify.EventReferralBonus, map[string]any{
			"deposit_id":  bonus.DepositID,
			"bonus_cents": bonus.BonusCents,
		})
	}
	return deposit, nil
}

// Reject moves a PENDING deposit to REJECTED. Funds were never credited, so
// there is nothing to undo.
func (s *Service) Reject(ctx context.Context, depositID int) (*domain.Deposit, error) {
	var deposit *domain.Deposit

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		d, err := s.deposits.GetForUpdate(ctx, depositID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrRecordNotFound
		}
		if !d.Status.CanTransitionTo(domain.DepositRejected) {
			return domain.ErrInvalidState
		}
		ok, err := s.deposits.UpdateStatus(ctx, d.ID, domain.DepositPending, domain.DepositRejected)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		d.Status = domain.DepositRejected
		deposit = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, deposit.UserID, notify.EventDepositRejected, map[string]any{
		"deposit_id":   deposit.ID,
		"amount_cents": deposit.AmountCents,
	})
	return deposit, nil
}

func (s *Service) GetDeposits(ctx context.Context, userID int) ([]domain.Deposit, error) {
	deposits, err := s.deposits.ListByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch deposits", zap.Error(err))
		return nil, err
	}
	return deposits, nil
}

func (s *Service) GetPending(ctx context.Context) ([]domain.Deposit, error) {
	deposits, err := s.deposits.ListByStatus(ctx, domain.DepositPending)
	if err != nil {
		zap.L().Error("failed to fetch pending deposits", zap.Error(err))
		return nil, err
	}
	return deposits, nil
}
