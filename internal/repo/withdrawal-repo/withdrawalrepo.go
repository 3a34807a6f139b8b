package withdrawalrepo

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

const withdrawalColumns = `id, user_id, amount_cents, status, type, card_number, created_at`

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (user_id, amount_cents, status, type, card_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		withdrawal.UserID, withdrawal.AmountCents, withdrawal.Status, withdrawal.Type, withdrawal.CardNumber,
	).Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) GetForUpdate(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, withdrawalID).
		Scan(&w.ID, &w.UserID, &w.AmountCents, &w.Status, &w.Type, &w.CardNumber, &w.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock withdrawal row", zap.Error(err))
		return nil, err
	}
	return &w, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, withdrawalID int, from, to domain.WithdrawalStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE withdrawals SET status = $1 WHERE id = $2 AND status = $3`, to, withdrawalID, from)
	if err != nil {
		zap.L().Error("can't update withdrawal status", zap.Int("withdrawalID", withdrawalID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountWithdrawToday counts only WITHDRAW-type rows created on the current
// server-local date. VIP_UPGRADE audit rows never count against the daily cap.
func (r *Repository) CountWithdrawToday(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM withdrawals
		WHERE user_id = $1 AND type = $2 AND created_at::date = CURRENT_DATE
	`
	var count int
	err := r.db.QueryRow(ctx, query, userID, domain.WithdrawalTypeWithdraw).Scan(&count)
	if err != nil {
		zap.L().Error("can't count withdrawals for today", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE status = $1 AND type = $2 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, status, domain.WithdrawalTypeWithdraw)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows pgx.Rows) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		err := rows.Scan(&w.ID, &w.UserID, &w.AmountCents, &w.Status, &w.Type, &w.CardNumber, &w.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}
