package taskservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/pg"
)

// trialPeriod is how long FREE users see FREE-tier tasks after signup.
const trialPeriod = 72 * time.Hour

// fallbackTasks is shown when the catalog has no active rows. Negative ids
// keep them out of the completion path: completing one fails TaskNotFound.
var fallbackTasks = []domain.Task{
	{ID: -1, Title: "Watch the welcome video", RewardCents: 50, DurationSeconds: 30, MinVipLevel: domain.VipLevelFree, IsActive: true},
	{ID: -2, Title: "Rate today's featured clip", RewardCents: 50, DurationSeconds: 45, MinVipLevel: domain.VipLevelFree, IsActive: true},
	{ID: -3, Title: "Share a clip with a friend", RewardCents: 100, DurationSeconds: 60, MinVipLevel: domain.VipLevelFree, IsActive: true},
}

type TaskRepo interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetActiveByID(ctx context.Context, taskID int) (*domain.Task, error)
	ListActive(ctx context.Context) ([]domain.Task, error)
	CreateCompletion(ctx context.Context, completion *domain.TaskCompletion) (*domain.TaskCompletion, error)
	CompletedTaskIDs(ctx context.Context, userID int, since time.Time) (map[int]struct{}, error)
}
type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	GetForUpdate(ctx context.Context, userID int) (*domain.User, error)
	AdjustBalance(ctx context.Context, userID int, deltaCents int64) (*int64, error)
}
type Notifier interface {
	Publish(ctx context.Context, userID int, eventType string, payload map[string]any)
}

type Service struct {
	tasks     TaskRepo
	users     UserRepo
	txManager pg.TXManager
	notifier  Notifier
}

func New(tasks TaskRepo, users UserRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		tasks:     tasks,
		users:     users,
		txManager: txManager,
		notifier:  notifier,
	}
}

// WindowStart returns the UTC instant of the most recent midnight in the
// fixed UTC+1 reference timezone, independent of server locale.
func WindowStart(now time.Time) time.Time {
	shifted := now.UTC().Add(time.Hour)
	midnight := time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(-time.Hour)
}

// ListAvailable returns the task catalog as one user sees it right now.
// Tasks completed since the window start are hidden, VIP-gated tasks show
// locked for FREE users, and FREE-tier tasks disappear entirely once the
// 3-day trial of a FREE user has expired.
func (s *Service) ListAvailable(ctx context.Context, userID int, now time.Time) ([]domain.TaskListing, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	isVip := user.VipLevel == domain.VipLevelVip
	trialExpired := !isVip && now.Sub(user.CreatedAt) >= trialPeriod

	tasks, err := s.tasks.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		if trialExpired {
			return nil, nil
		}
		listings := make([]domain.TaskListing, 0, len(fallbackTasks))
		for _, task := range fallbackTasks {
			listings = append(listings, domain.TaskListing{Task: task})
		}
		return listings, nil
	}

	completed, err := s.tasks.CompletedTaskIDs(ctx, userID, WindowStart(now))
	if err != nil {
		return nil, err
	}

	listings := make([]domain.TaskListing, 0, len(tasks))
	for _, task := range tasks {
		if trialExpired && task.MinVipLevel == domain.VipLevelFree {
			continue
		}
		if _, done := completed[task.ID]; done {
			continue
		}
		listings = append(listings, domain.TaskListing{
			Task:   task,
			Locked: task.MinVipLevel == domain.VipLevelVip && !isVip,
		})
	}
	return listings, nil
}

// Complete credits the task reward exactly once per (user, task). The
// (user_id, task_id) constraint is global and deliberately outlives the
// daily availability window: a completed task never pays out again even
// after it reappears in the catalog. Concurrent duplicates serialize on
// the user row lock; the loser's insert hits the constraint and the whole
// transaction, credit included, rolls back.
func (s *Service) Complete(ctx context.Context, userID, taskID int) (*domain.TaskCompletion, error) {
	task, err := s.tasks.GetActiveByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	var completion *domain.TaskCompletion

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if task.MinVipLevel == domain.VipLevelVip && user.VipLevel != domain.VipLevelVip {
			return domain.ErrVipRequired
		}

		balance, err := s.users.AdjustBalance(ctx, userID, task.RewardCents)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrUserNotFound
		}

		completion, err = s.tasks.CreateCompletion(ctx, &domain.TaskCompletion{
			UserID:             userID,
			TaskID:             taskID,
			RewardCents:        task.RewardCents,
			BalanceBeforeCents: user.BalanceCents,
			BalanceAfterCents:  *balance,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, userID, notify.EventTaskCompleted, map[string]any{
		"task_id":       taskID,
		"reward_cents":  completion.RewardCents,
		"balance_cents": completion.BalanceAfterCents,
	})
	return completion, nil
}

// CreateTask adds an active catalog entry. Admin capability is verified by
// the calling layer.
func (s *Service) CreateTask(ctx context.Context, title string, rewardCents int64, durationSeconds int, minVipLevel domain.VipLevel) (*domain.Task, error) {
	if rewardCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	task := &domain.Task{
		Title:           title,
		RewardCents:     rewardCents,
		DurationSeconds: durationSeconds,
		MinVipLevel:     minVipLevel,
		IsActive:        true,
	}
	task, err := s.tasks.Create(ctx, task)
	if err != nil {
		zap.L().Error("can't create task", zap.Error(err))
		return nil, err
	}
	return task, nil
}
