package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

func userRows(t time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "login", "password_hash", "balance_cents", "vip_level",
		"invite_code", "invited_by", "is_admin", "created_at",
	}).AddRow(1, "test_user", "hashed_password", int64(5000), domain.VipLevelFree, nil, nil, false, t)
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, login, password_hash, balance_cents, vip_level, invite_code, invited_by, is_admin, created_at FROM users WHERE login = $1`)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			login: "test_user",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("test_user").
					WillReturnRows(userRows(now))
			},
			result: &domain.User{
				ID:           1,
				Login:        "test_user",
				PasswordHash: "hashed_password",
				BalanceCents: 5000,
				VipLevel:     domain.VipLevelFree,
				CreatedAt:    now,
			},
		},
		{
			name:  "User not found",
			login: "non_existing_user",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("non_existing_user").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			login: "test_user",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("test_user").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`
		INSERT INTO users (login, password_hash)
		VALUES ($1, $2)
		RETURNING id, balance_cents, vip_level, is_admin, created_at
	`)

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create user successfully",
			user: &domain.User{
				Login:        "new_user",
				PasswordHash: "hashed_password",
			},
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("new_user", "hashed_password").
					WillReturnRows(pgxmock.NewRows([]string{"id", "balance_cents", "vip_level", "is_admin", "created_at"}).
						AddRow(1, int64(0), domain.VipLevelFree, false, now))
			},
		},
		{
			name: "Database error",
			user: &domain.User{
				Login:        "new_user",
				PasswordHash: "hashed_password",
			},
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("new_user", "hashed_password").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, int64(0), result.BalanceCents)
				assert.Equal(t, domain.VipLevelFree, result.VipLevel)
			}
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, login, password_hash, balance_cents, vip_level, invite_code, invited_by, is_admin, created_at FROM users WHERE id = $1 FOR UPDATE`)

	mock.ExpectQuery(query).WithArgs(1).WillReturnRows(userRows(now))
	user, err := repo.GetForUpdate(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	mock.ExpectQuery(query).WithArgs(2).WillReturnError(pgx.ErrNoRows)
	user, err = repo.GetForUpdate(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_AdjustBalance(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
		UPDATE users
		SET balance_cents = balance_cents + $1
		WHERE id = $2
		RETURNING balance_cents
	`)

	tests := []struct {
		name        string
		delta       int64
		mockSetup   func()
		expectErr   error
		wantBalance *int64
	}{
		{
			name:  "Credit succeeds",
			delta: 200,
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(int64(200), 1).
					WillReturnRows(pgxmock.NewRows([]string{"balance_cents"}).AddRow(int64(1200)))
			},
			wantBalance: func() *int64 { v := int64(1200); return &v }(),
		},
		{
			name:  "Overdraft hits the check constraint",
			delta: -99999,
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(int64(-99999), 1).
					WillReturnError(&pgconn.PgError{Code: "23514"})
			},
			expectErr: domain.ErrInsufficientBalance,
		},
		{
			name:  "Unknown user returns nil balance",
			delta: 200,
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(int64(200), 1).
					WillReturnError(pgx.ErrNoRows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.AdjustBalance(context.Background(), 1, tt.delta)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantBalance, balance)
		})
	}
}

func TestRepository_SetInvitedBy(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE users SET invited_by = $1 WHERE id = $2 AND invited_by IS NULL`)

	mock.ExpectExec(query).WithArgs(2, 7).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	ok, err := repo.SetInvitedBy(context.Background(), 7, 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(query).WithArgs(3, 7).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	ok, err = repo.SetInvitedBy(context.Background(), 7, 3)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_SetInviteCode(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE users SET invite_code = $1 WHERE id = $2 AND invite_code IS NULL`)

	mock.ExpectExec(query).WithArgs("KJ7TQ2ZR", 5).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.SetInviteCode(context.Background(), 5, "KJ7TQ2ZR"))

	mock.ExpectExec(query).WithArgs("AAAA2222", 5).WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.Error(t, repo.SetInviteCode(context.Background(), 5, "AAAA2222"))
}

func TestRepository_SetVipLevel(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE users SET vip_level = $1 WHERE id = $2`)

	mock.ExpectExec(query).WithArgs(domain.VipLevelVip, 5).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.SetVipLevel(context.Background(), 5, domain.VipLevelVip))
}
