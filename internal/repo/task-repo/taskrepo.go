package taskrepo

import (
	"context"
	"time"

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

const taskColumns = `id, title, reward_cents, duration_seconds, min_vip_level, is_active`

func (r *Repository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (title, reward_cents, duration_seconds, min_vip_level, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		task.Title, task.RewardCents, task.DurationSeconds, task.MinVipLevel, task.IsActive,
	).Scan(&task.ID)
	if err != nil {
		zap.L().Error("can't save task", zap.Error(err))
		return nil, err
	}
	return task, nil
}

func (r *Repository) GetActiveByID(ctx context.Context, taskID int) (*domain.Task, error) {
	var task domain.Task
	err := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND is_active = TRUE`, taskID).
		Scan(&task.ID, &task.Title, &task.RewardCents, &task.DurationSeconds, &task.MinVipLevel, &task.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find task", zap.Error(err))
		return nil, err
	}
	return &task, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE is_active = TRUE ORDER BY id ASC`)
	if err != nil {
		zap.L().Error("failed to fetch tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		err := rows.Scan(&task.ID, &task.Title, &task.RewardCents, &task.DurationSeconds, &task.MinVipLevel, &task.IsActive)
		if err != nil {
			zap.L().Error("failed to scan task row", zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// CreateCompletion inserts the completion snapshot. The (user_id, task_id)
// unique constraint is the duplicate guard: a second insert for the same
// pair comes back as domain.ErrAlreadyCompleted, which rolls back the
// surrounding transaction and with it the reward credit.
func (r *Repository) CreateCompletion(ctx context.Context, completion *domain.TaskCompletion) (*domain.TaskCompletion, error) {
	query := `
		INSERT INTO task_completions (user_id, task_id, reward_cents, balance_before_cents, balance_after_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		completion.UserID, completion.TaskID, completion.RewardCents,
		completion.BalanceBeforeCents, completion.BalanceAfterCents,
	).Scan(&completion.ID, &completion.CreatedAt)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyCompleted
		}
		zap.L().Error("can't save task completion", zap.Error(err))
		return nil, err
	}
	return completion, nil
}

// CompletedTaskIDs returns the ids of tasks the user completed at or after
// since (the current renewal window start).
func (r *Repository) CompletedTaskIDs(ctx context.Context, userID int, since time.Time) (map[int]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT task_id FROM task_completions WHERE user_id = $1 AND created_at >= $2`, userID, since)
	if err != nil {
		zap.L().Error("failed to fetch completions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	completed := make(map[int]struct{})
	for rows.Next() {
		var taskID int
		if err := rows.Scan(&taskID); err != nil {
			zap.L().Error("failed to scan completion row", zap.Error(err))
			return nil, err
		}
		completed[taskID] = struct{}{}
	}
	return completed, nil
}
