package depositrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/taskwallet/backend/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`
		INSERT INTO deposits (user_id, amount_cents, status, declared_name, payer_reference, proof_image_ref, method_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create deposit successfully",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(5, int64(10000), domain.DepositPending, "J. Smith", "TRX-1", "", 1).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(17, now))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(5, int64(10000), domain.DepositPending, "J. Smith", "TRX-1", "", 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			deposit, err := repo.Create(context.Background(), &domain.Deposit{
				UserID: 5, AmountCents: 10000, Status: domain.DepositPending,
				DeclaredName: "J. Smith", PayerReference: "TRX-1", MethodID: 1,
			})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 17, deposit.ID)
				assert.Equal(t, now, deposit.CreatedAt)
			}
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, status, declared_name, payer_reference, proof_image_ref, method_id, created_at FROM deposits WHERE id = $1 FOR UPDATE`)

	mock.ExpectQuery(query).WithArgs(17).WillReturnRows(
		pgxmock.NewRows([]string{"id", "user_id", "amount_cents", "status", "declared_name", "payer_reference", "proof_image_ref", "method_id", "created_at"}).
			AddRow(17, 5, int64(10000), domain.DepositPending, "J. Smith", "TRX-1", "", 1, now))
	deposit, err := repo.GetForUpdate(context.Background(), 17)
	assert.NoError(t, err)
	assert.Equal(t, 17, deposit.ID)
	assert.Equal(t, domain.DepositPending, deposit.Status)

	mock.ExpectQuery(query).WithArgs(99).WillReturnError(pgx.ErrNoRows)
	deposit, err = repo.GetForUpdate(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, deposit)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE deposits SET status = $1 WHERE id = $2 AND status = $3`)

	tests := []struct {
		name      string
		mockSetup func()
		expectOK  bool
		expectErr bool
	}{
		{
			name: "Pending deposit transitions",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(domain.DepositConfirmed, 17, domain.DepositPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectOK: true,
		},
		{
			name: "Already resolved deposit does not",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(domain.DepositConfirmed, 17, domain.DepositPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectOK: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(domain.DepositConfirmed, 17, domain.DepositPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			ok, err := repo.UpdateStatus(context.Background(), 17, domain.DepositPending, domain.DepositConfirmed)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectOK, ok)
			}
		})
	}
}

func TestRepository_ListByStatus(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, status, declared_name, payer_reference, proof_image_ref, method_id, created_at FROM deposits WHERE status = $1 ORDER BY created_at ASC`)

	mock.ExpectQuery(query).WithArgs(domain.DepositPending).WillReturnRows(
		pgxmock.NewRows([]string{"id", "user_id", "amount_cents", "status", "declared_name", "payer_reference", "proof_image_ref", "method_id", "created_at"}).
			AddRow(17, 5, int64(10000), domain.DepositPending, "J. Smith", "TRX-1", "", 1, now).
			AddRow(18, 6, int64(8000), domain.DepositPending, "A. Doe", "TRX-2", "", 1, now))

	list, err := repo.ListByStatus(context.Background(), domain.DepositPending)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 17, list[0].ID)
	assert.Equal(t, 18, list[1].ID)
}
