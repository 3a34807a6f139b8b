package userrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/pg"
)

// Repository is the ledger store: user rows carry the balance, and every
// balance mutation goes through AdjustBalance under a row lock.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const userColumns = `id, login, password_hash, balance_cents, vip_level, invite_code, invited_by, is_admin, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Login, &user.PasswordHash, &user.BalanceCents,
		&user.VipLevel, &user.InviteCode, &user.InvitedBy, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (login, password_hash)
		VALUES ($1, $2)
		RETURNING id, balance_cents, vip_level, is_admin, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Login, user.PasswordHash).
		Scan(&user.ID, &user.BalanceCents, &user.VipLevel, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE login = $1`, login))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by login", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// GetForUpdate locks the user row for the rest of the surrounding
// transaction. Operations that condition a transition on balance or VIP
// level must read through this inside the same transaction that mutates.
func (r *Repository) GetForUpdate(ctx context.Context, userID int) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock user row", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// AdjustBalance applies a delta atomically and returns the new balance.
// The balance_cents CHECK constraint turns an overdraft into
// domain.ErrInsufficientBalance. Returns nil for an unknown user.
func (r *Repository) AdjustBalance(ctx context.Context, userID int, deltaCents int64) (*int64, error) {
	query := `
		UPDATE users
		SET balance_cents = balance_cents + $1
		WHERE id = $2
		RETURNING balance_cents
	`
	var newBalance int64
	err := r.db.QueryRow(ctx, query, deltaCents, userID).Scan(&newBalance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if pg.IsCheckViolation(err) {
			return nil, domain.ErrInsufficientBalance
		}
		zap.L().Error("can't adjust balance", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return &newBalance, nil
}

func (r *Repository) SetVipLevel(ctx context.Context, userID int, level domain.VipLevel) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET vip_level = $1 WHERE id = $2`, level, userID)
	if err != nil {
		zap.L().Error("can't set vip level", zap.Int("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetInviteCode(ctx context.Context, userID int, code string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET invite_code = $1 WHERE id = $2 AND invite_code IS NULL`, code, userID)
	return err
}

// SetInvitedBy records the inviter once; a second call is a no-op.
func (r *Repository) SetInvitedBy(ctx context.Context, userID, inviterID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET invited_by = $1 WHERE id = $2 AND invited_by IS NULL`, inviterID, userID)
	if err != nil {
		zap.L().Error("can't set inviter", zap.Int("userID", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
