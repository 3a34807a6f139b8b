package withdrawalrepo

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

func withdrawalRows(t time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "amount_cents", "status", "type", "card_number", "created_at"}).
		AddRow(11, 5, int64(5000), domain.WithdrawalPending, domain.WithdrawalTypeWithdraw, "4561261212345467", t)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`
		INSERT INTO withdrawals (user_id, amount_cents, status, type, card_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create withdrawal successfully",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(5, int64(5000), domain.WithdrawalPending, domain.WithdrawalTypeWithdraw, "4561261212345467").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(5, int64(5000), domain.WithdrawalPending, domain.WithdrawalTypeWithdraw, "4561261212345467").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			withdrawal, err := repo.Create(context.Background(), &domain.Withdrawal{
				UserID: 5, AmountCents: 5000, Status: domain.WithdrawalPending,
				Type: domain.WithdrawalTypeWithdraw, CardNumber: "4561261212345467",
			})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 11, withdrawal.ID)
				assert.Equal(t, now, withdrawal.CreatedAt)
			}
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, status, type, card_number, created_at FROM withdrawals WHERE id = $1 FOR UPDATE`)

	mock.ExpectQuery(query).WithArgs(11).WillReturnRows(withdrawalRows(now))
	withdrawal, err := repo.GetForUpdate(context.Background(), 11)
	assert.NoError(t, err)
	assert.Equal(t, 11, withdrawal.ID)
	assert.Equal(t, domain.WithdrawalTypeWithdraw, withdrawal.Type)

	mock.ExpectQuery(query).WithArgs(99).WillReturnError(pgx.ErrNoRows)
	withdrawal, err = repo.GetForUpdate(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, withdrawal)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE withdrawals SET status = $1 WHERE id = $2 AND status = $3`)

	mock.ExpectExec(query).
		WithArgs(domain.WithdrawalApproved, 11, domain.WithdrawalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	ok, err := repo.UpdateStatus(context.Background(), 11, domain.WithdrawalPending, domain.WithdrawalApproved)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(query).
		WithArgs(domain.WithdrawalApproved, 11, domain.WithdrawalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	ok, err = repo.UpdateStatus(context.Background(), 11, domain.WithdrawalPending, domain.WithdrawalApproved)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_CountWithdrawToday(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM withdrawals
		WHERE user_id = $1 AND type = $2 AND created_at::date = CURRENT_DATE
	`)

	mock.ExpectQuery(query).WithArgs(5, domain.WithdrawalTypeWithdraw).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	count, err := repo.CountWithdrawToday(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	mock.ExpectQuery(query).WithArgs(5, domain.WithdrawalTypeWithdraw).
		WillReturnError(errors.New("database error"))
	_, err = repo.CountWithdrawToday(context.Background(), 5)
	assert.Error(t, err)
}

func TestRepository_ListByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, status, type, card_number, created_at FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`)

	mock.ExpectQuery(query).WithArgs(5).WillReturnRows(withdrawalRows(now))
	list, err := repo.ListByUserID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 11, list[0].ID)
}

func TestRepository_ListByStatus(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, status, type, card_number, created_at FROM withdrawals WHERE status = $1 AND type = $2 ORDER BY created_at ASC`)

	mock.ExpectQuery(query).WithArgs(domain.WithdrawalPending, domain.WithdrawalTypeWithdraw).
		WillReturnRows(withdrawalRows(now))
	list, err := repo.ListByStatus(context.Background(), domain.WithdrawalPending)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, domain.WithdrawalPending, list[0].Status)
}
