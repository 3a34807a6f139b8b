package referralrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// FindUserByInviteCode matches the code case-insensitively.
func (r *Repository) FindUserByInviteCode(ctx context.Context, code string) (*domain.User, error) {
	query := `
		SELECT id, login, password_hash, balance_cents, vip_level, invite_code, invited_by, is_admin, created_at
		FROM users
		WHERE UPPER(invite_code) = UPPER($1)
	`
	var user domain.User
	err := r.db.QueryRow(ctx, query, code).Scan(
		&user.ID, &user.Login, &user.PasswordHash, &user.BalanceCents,
		&user.VipLevel, &user.InviteCode, &user.InvitedBy, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by invite code", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// CreateReferral links inviter and invitee. An existing pair is not an
// error; the insert is idempotent under retry.
func (r *Repository) CreateReferral(ctx context.Context, inviterID, invitedID int) (bool, error) {
	query := `
		INSERT INTO referrals (inviter_user_id, invited_user_id)
		VALUES ($1, $2)
		ON CONFLICT (invited_user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, inviterID, invitedID)
	if err != nil {
		zap.L().Error("can't save referral", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// InsertBonus records the bonus for a confirmed deposit. The deposit_id
// primary key makes a replayed approval a no-op: the caller credits the
// inviter only when this reports a fresh insert.
func (r *Repository) InsertBonus(ctx context.Context, bonus *domain.ReferralBonus) (bool, error) {
	query := `
		INSERT INTO referral_bonuses (deposit_id, inviter_user_id, bonus_cents)
		VALUES ($1, $2, $3)
		ON CONFLICT (deposit_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, bonus.DepositID, bonus.InviterUserID, bonus.BonusCents)
	if err != nil {
		zap.L().Error("can't save referral bonus", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) GetStats(ctx context.Context, userID int) (*domain.ReferralStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM referrals WHERE inviter_user_id = $1),
			(SELECT COALESCE(SUM(bonus_cents), 0) FROM referral_bonuses WHERE inviter_user_id = $1)
	`
	var stats domain.ReferralStats
	err := r.db.QueryRow(ctx, query, userID).Scan(&stats.InvitedCount, &stats.BonusTotalCents)
	if err != nil {
		zap.L().Error("can't fetch referral stats", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}
