package taskservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockTaskRepo, *MockUserRepo, *pg.MockTXManager, *MockNotifier) {
	ctrl := gomock.NewController(t)
	taskRepo := NewMockTaskRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	notifier := NewMockNotifier(ctrl)
	service := New(taskRepo, userRepo, txManager, notifier)
	defer ctrl.Finish()
	return service, taskRepo, userRepo, txManager, notifier
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func int64Ptr(v int64) *int64 { return &v }

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "Midday UTC",
			now:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "Just before the window rolls over",
			now:      time.Date(2026, 8, 31, 22, 59, 59, 0, time.UTC),
			expected: time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "Right at 23:00 UTC a new window starts",
			now:      time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "Early morning UTC stays in yesterday's window",
			now:      time.Date(2026, 8, 31, 0, 30, 0, 0, time.UTC),
			expected: time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WindowStart(tt.now))
		})
	}
}

func TestListAvailable(t *testing.T) {
	service, taskRepo, userRepo, _, _ := NewMock(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	catalog := []domain.Task{
		{ID: 1, Title: "Free task", RewardCents: 100, MinVipLevel: domain.VipLevelFree},
		{ID: 2, Title: "VIP task", RewardCents: 500, MinVipLevel: domain.VipLevelVip},
		{ID: 3, Title: "Another free task", RewardCents: 150, MinVipLevel: domain.VipLevelFree},
	}

	tests := []struct {
		name        string
		prepareMock func()
		check       func(t *testing.T, listings []domain.TaskListing)
	}{
		{
			name: "Fresh FREE user sees VIP tasks locked",
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 5).Return(&domain.User{
					ID: 5, VipLevel: domain.VipLevelFree, CreatedAt: now.Add(-time.Hour),
				}, nil)
				taskRepo.EXPECT().ListActive(gomock.Any()).Return(catalog, nil)
				taskRepo.EXPECT().CompletedTaskIDs(gomock.Any(), 5, WindowStart(now)).Return(map[int]struct{}{}, nil)
			},
			check: func(t *testing.T, listings []domain.TaskListing) {
				assert.Len(t, listings, 3)
				assert.False(t, listings[0].Locked)
				assert.True(t, listings[1].Locked)
			},
		},
		{
			name: "Completed tasks are hidden until the window resets",
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 5).Return(&domain.User{
					ID: 5, VipLevel: domain.VipLevelVip, CreatedAt: now.Add(-time.Hour),
				}, nil)
				taskRepo.EXPECT().ListActive(gomock.Any()).Return(catalog, nil)
				taskRepo.EXPECT().CompletedTaskIDs(gomock.Any(), 5, WindowStart(now)).Return(map[int]struct{}{1: {}}, nil)
			},
			check: func(t *testing.T, listings []domain.TaskListing) {
				assert.Len(t, listings, 2)
				for _, l := range listings {
					assert.NotEqual(t, 1, l.Task.ID)
				}
			},
		},
		{
			name: "Expired trial hides FREE-tier tasks",
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 5).Return(&domain.User{
					ID: 5, VipLevel: domain.VipLevelFree, CreatedAt: now.Add(-96 * time.Hour),
				}, nil)
				taskRepo.EXPECT().ListActive(gomock.Any()).Return(catalog, nil)
				taskRepo.EXPECT().CompletedTaskIDs(gomock.Any(), 5, WindowStart(now)).Return(map[int]struct{}{}, nil)
			},
			check: func(t *testing.T, listings []domain.TaskListing) {
				assert.Len(t, listings, 1)
				assert.Equal(t, 2, listings[0].Task.ID)
				assert.True(t, listings[0].Locked)
			},
		},
		{
			name: "Empty catalog falls back to the built-in tasks",
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 5).Return(&domain.User{
					ID: 5, VipLevel: domain.VipLevelFree, CreatedAt: now.Add(-time.Hour),
				}, nil)
				taskRepo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)
			},
			check: func(t *testing.T, listings []domain.TaskListing) {
				assert.Len(t, listings, len(fallbackTasks))
				assert.Negative(t, listings[0].Task.ID)
			},
		},
		{
			name: "Empty catalog after trial expiry yields nothing",
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 5).Return(&domain.User{
					ID: 5, VipLevel: domain.VipLevelFree, CreatedAt: now.Add(-96 * time.Hour),
				}, nil)
				taskRepo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)
			},
			check: func(t *testing.T, listings []domain.TaskListing) {
				assert.Empty(t, listings)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			listings, err := service.ListAvailable(context.Background(), 5, now)
			assert.NoError(t, err)
			tt.check(t, listings)
		})
	}
}

func TestComplete(t *testing.T) {
	service, taskRepo, userRepo, txManager, notifier := NewMock(t)
	passthroughTx(txManager)

	freeTask := &domain.Task{ID: 3, Title: "Free task", RewardCents: 200, MinVipLevel: domain.VipLevelFree, IsActive: true}
	vipTask := &domain.Task{ID: 4, Title: "VIP task", RewardCents: 500, MinVipLevel: domain.VipLevelVip, IsActive: true}

	tests := []struct {
		name          string
		taskID        int
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Reward is credited and the completion snapshots balances",
			taskID: 3,
			prepareMock: func() {
				taskRepo.EXPECT().GetActiveByID(gomock.Any(), 3).Return(freeTask, nil)
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{
					ID: 5, BalanceCents: 1000, VipLevel: domain.VipLevelFree,
				}, nil)
				userRepo.EXPECT().AdjustBalance(gomock.Any(), 5, int64(200)).Return(int64Ptr(1200), nil)
				taskRepo.EXPECT().CreateCompletion(gomock.Any(), &domain.TaskCompletion{
					UserID: 5, TaskID: 3, RewardCents: 200,
					BalanceBeforeCents: 1000, BalanceAfterCents: 1200,
				}).DoAndReturn(func(ctx context.Context, c *domain.TaskCompletion) (*domain.TaskCompletion, error) {
					c.ID = 1
					return c, nil
				})
				notifier.EXPECT().Publish(gomock.Any(), 5, gomock.Any(), gomock.Any())
			},
		},
		{
			name:   "Unknown task",
			taskID: 99,
			prepareMock: func() {
				taskRepo.EXPECT().GetActiveByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedError: domain.ErrTaskNotFound,
		},
		{
			name:   "FREE user cannot complete a VIP task",
			taskID: 4,
			prepareMock: func() {
				taskRepo.EXPECT().GetActiveByID(gomock.Any(), 4).Return(vipTask, nil)
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{
					ID: 5, BalanceCents: 1000, VipLevel: domain.VipLevelFree,
				}, nil)
			},
			expectedError: domain.ErrVipRequired,
		},
		{
			name:   "Duplicate completion rolls the credit back",
			taskID: 3,
			prepareMock: func() {
				taskRepo.EXPECT().GetActiveByID(gomock.Any(), 3).Return(freeTask, nil)
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{
					ID: 5, BalanceCents: 1200, VipLevel: domain.VipLevelFree,
				}, nil)
				userRepo.EXPECT().AdjustBalance(gomock.Any(), 5, int64(200)).Return(int64Ptr(1400), nil)
				taskRepo.EXPECT().CreateCompletion(gomock.Any(), gomock.Any()).Return(nil, domain.ErrAlreadyCompleted)
			},
			expectedError: domain.ErrAlreadyCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			completion, err := service.Complete(context.Background(), 5, tt.taskID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(200), completion.RewardCents)
				assert.Equal(t, int64(1200), completion.BalanceAfterCents)
			}
		})
	}
}

func TestCreateTask(t *testing.T) {
	service, taskRepo, _, _, _ := NewMock(t)

	taskRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			assert.True(t, task.IsActive)
			task.ID = 7
			return task, nil
		})
	task, err := service.CreateTask(context.Background(), "New task", 300, 45, domain.VipLevelFree)
	assert.NoError(t, err)
	assert.Equal(t, 7, task.ID)

	_, err = service.CreateTask(context.Background(), "Bad task", 0, 45, domain.VipLevelFree)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
