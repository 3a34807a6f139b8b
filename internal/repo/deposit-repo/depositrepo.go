package depositrepo

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

const depositColumns = `id, user_id, amount_cents, status, declared_name, payer_reference, proof_image_ref, method_id, created_at`

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var d domain.Deposit
	err := row.Scan(
		&d.ID, &d.UserID, &d.AmountCents, &d.Status, &d.DeclaredName,
		&d.PayerReference, &d.ProofImageRef, &d.MethodID, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
	query := `
		INSERT INTO deposits (user_id, amount_cents, status, declared_name, payer_reference, proof_image_ref, method_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		deposit.UserID, deposit.AmountCents, deposit.Status, deposit.DeclaredName,
		deposit.PayerReference, deposit.ProofImageRef, deposit.MethodID,
	).Scan(&deposit.ID, &deposit.CreatedAt)
	if err != nil {
		zap.L().Error("can't save deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

// GetForUpdate locks the deposit row so concurrent approvals of the same
// deposit serialize on it.
func (r *Repository) GetForUpdate(ctx context.Context, depositID int) (*domain.Deposit, error) {
	deposit, err := scanDeposit(r.db.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE id = $1 FOR UPDATE`, depositID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock deposit row", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

// UpdateStatus transitions only when the stored status still matches from,
// so a replayed approval observes zero affected rows instead of
// double-applying.
func (r *Repository) UpdateStatus(ctx context.Context, depositID int, from, to domain.DepositStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE deposits SET status = $1 WHERE id = $2 AND status = $3`, to, depositID, from)
	if err != nil {
		zap.L().Error("can't update deposit status", zap.Int("depositID", depositID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID int) ([]domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch deposits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.DepositStatus) ([]domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE status = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		zap.L().Error("failed to fetch deposits by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows pgx.Rows) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		err := rows.Scan(
			&d.ID, &d.UserID, &d.AmountCents, &d.Status, &d.DeclaredName,
			&d.PayerReference, &d.ProofImageRef, &d.MethodID, &d.CreatedAt,
		)
		if err != nil {
			zap.L().Error("failed to scan deposit row", zap.Error(err))
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, nil
}
