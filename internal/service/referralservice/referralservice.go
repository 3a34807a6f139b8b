package referralservice

import (
	"context"
	"crypto/rand"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/pg"
)

const (
	codeLength = 8
	// No 0/O/1/I to keep codes unambiguous when shared verbally.
	codeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	maxCodeAttempts = 10
)

type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	SetInviteCode(ctx context.Context, userID int, code string) error
	SetInvitedBy(ctx context.Context, userID, inviterID int) (bool, error)
}
type ReferralRepo interface {
	FindUserByInviteCode(ctx context.Context, code string) (*domain.User, error)
	CreateReferral(ctx context.Context, inviterID, invitedID int) (bool, error)
	GetStats(ctx context.Context, userID int) (*domain.ReferralStats, error)
}

type Service struct {
	users     UserRepo
	referrals ReferralRepo
	txManager pg.TXManager
}

func New(users UserRepo, referrals ReferralRepo, txManager pg.TXManager) *Service {
	return &Service{
		users:     users,
		referrals: referrals,
		txManager: txManager,
	}
}

// EnsureInviteCode returns the user's invite code, generating one on first
// use. Generation is rejection sampling: draw a random code, try to claim
// it, and retry when the uniqueness constraint says another user got there
// first. Safe to call on every login.
func (s *Service) EnsureInviteCode(ctx context.Context, userID int) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if user.InviteCode != nil {
		return *user.InviteCode, nil
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		err = s.users.SetInviteCode(ctx, userID, code)
		if err != nil {
			if pg.IsUniqueViolation(err) {
				continue
			}
			zap.L().Error("can't set invite code", zap.Error(err))
			return "", err
		}
		// A concurrent call may have claimed a code for this user first;
		// the stored one wins either way.
		user, err = s.users.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		if user != nil && user.InviteCode != nil {
			return *user.InviteCode, nil
		}
		return code, nil
	}
	return "", fmt.Errorf("could not allocate invite code after %d attempts", maxCodeAttempts)
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// RegisterWithInvite links a freshly registered user to the owner of the
// invite code. The code matches case-insensitively; an already-linked pair
// is not an error, so retried registrations stay idempotent.
func (s *Service) RegisterWithInvite(ctx context.Context, code string, newUserID int) error {
	inviter, err := s.referrals.FindUserByInviteCode(ctx, code)
	if err != nil {
		return err
	}
	if inviter == nil || inviter.ID == newUserID {
		return domain.ErrInvalidInviteCode
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.users.SetInvitedBy(ctx, newUserID, inviter.ID); err != nil {
			return err
		}
		if _, err := s.referrals.CreateReferral(ctx, inviter.ID, newUserID); err != nil {
			return err
		}
		return nil
	})
}

func (s *Service) GetStats(ctx context.Context, userID int) (*domain.ReferralStats, error) {
	code, err := s.EnsureInviteCode(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.referrals.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.InviteCode = code
	return stats, nil
}
