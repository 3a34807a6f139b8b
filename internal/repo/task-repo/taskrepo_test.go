package taskrepo

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

func taskRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "title", "reward_cents", "duration_seconds", "min_vip_level", "is_active"}).
		AddRow(3, "Watch ad", int64(200), 30, domain.VipLevelFree, true)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
		INSERT INTO tasks (title, reward_cents, duration_seconds, min_vip_level, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`)

	mock.ExpectQuery(query).
		WithArgs("Watch ad", int64(200), 30, domain.VipLevelFree, true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))
	task, err := repo.Create(context.Background(), &domain.Task{
		Title: "Watch ad", RewardCents: 200, DurationSeconds: 30,
		MinVipLevel: domain.VipLevelFree, IsActive: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, task.ID)

	mock.ExpectQuery(query).
		WithArgs("Watch ad", int64(200), 30, domain.VipLevelFree, true).
		WillReturnError(errors.New("database error"))
	_, err = repo.Create(context.Background(), &domain.Task{
		Title: "Watch ad", RewardCents: 200, DurationSeconds: 30,
		MinVipLevel: domain.VipLevelFree, IsActive: true,
	})
	assert.Error(t, err)
}

func TestRepository_GetActiveByID(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`SELECT id, title, reward_cents, duration_seconds, min_vip_level, is_active FROM tasks WHERE id = $1 AND is_active = TRUE`)

	mock.ExpectQuery(query).WithArgs(3).WillReturnRows(taskRows())
	task, err := repo.GetActiveByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "Watch ad", task.Title)

	mock.ExpectQuery(query).WithArgs(99).WillReturnError(pgx.ErrNoRows)
	task, err = repo.GetActiveByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func TestRepository_ListActive(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`SELECT id, title, reward_cents, duration_seconds, min_vip_level, is_active FROM tasks WHERE is_active = TRUE ORDER BY id ASC`)

	mock.ExpectQuery(query).WillReturnRows(taskRows())
	tasks, err := repo.ListActive(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 3, tasks[0].ID)
}

func TestRepository_CreateCompletion(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`
		INSERT INTO task_completions (user_id, task_id, reward_cents, balance_before_cents, balance_after_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
	}{
		{
			name: "First completion is recorded",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(5, 3, int64(200), int64(1000), int64(1200)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
			},
		},
		{
			name: "Duplicate pair reports already completed",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(5, 3, int64(200), int64(1000), int64(1200)).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			expectErr: domain.ErrAlreadyCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			completion, err := repo.CreateCompletion(context.Background(), &domain.TaskCompletion{
				UserID: 5, TaskID: 3, RewardCents: 200,
				BalanceBeforeCents: 1000, BalanceAfterCents: 1200,
			})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, completion.ID)
			}
		})
	}
}

func TestRepository_CompletedTaskIDs(t *testing.T) {
	repo, mock := NewMock(t)
	since := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)

	query := regexp.QuoteMeta(`SELECT task_id FROM task_completions WHERE user_id = $1 AND created_at >= $2`)

	mock.ExpectQuery(query).WithArgs(5, since).
		WillReturnRows(pgxmock.NewRows([]string{"task_id"}).AddRow(1).AddRow(3))
	completed, err := repo.CompletedTaskIDs(context.Background(), 5, since)
	assert.NoError(t, err)
	assert.Len(t, completed, 2)
	assert.Contains(t, completed, 1)
	assert.Contains(t, completed, 3)
}
