package withdrawalservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/pg"
)

const validCard = "4561261212345467"

func NewMock(t *testing.T) (*Service, *MockWithdrawalRepo, *MockUserRepo, *pg.MockTXManager, *MockNotifier) {
	ctrl := gomock.NewController(t)
	withdrawalRepo := NewMockWithdrawalRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	notifier := NewMockNotifier(ctrl)
	service := New(withdrawalRepo, userRepo, txManager, notifier)
	defer ctrl.Finish()
	return service, withdrawalRepo, userRepo, txManager, notifier
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreate(t *testing.T) {
	service, withdrawalRepo, userRepo, txManager, notifier := NewMock(t)
	passthroughTx(txManager)

	tests := []struct {
		name          string
		amountCents   int64
		cardNumber    string
		prepareMock   func()
		expectedError error
	}{
		{
			name:        "Successful withdrawal holds the amount",
			amountCents: 5000,
			cardNumber:  validCard,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{ID: 5, BalanceCents: 12000}, nil)
				withdrawalRepo.EXPECT().CountWithdrawToday(gomock.Any(), 5).Return(0, nil)
				userRepo.EXPECT().AdjustBalance(gomock.Any(), 5, int64(-5000)).Return(int64Ptr(7000), nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error) {
						assert.Equal(t, domain.WithdrawalPending, w.Status)
						assert.Equal(t, domain.WithdrawalTypeWithdraw, w.Type)
						w.ID = 9
						return w, nil
					})
				notifier.EXPECT().Publish(gomock.Any(), 5, gomock.Any(), gomock.Any())
			},
		},
		{
			name:          "Amount outside the allowed set",
			amountCents:   4000,
			cardNumber:    validCard,
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "Card number fails the checksum",
			amountCents:   5000,
			cardNumber:    "4561261212345464",
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidCardNumber,
		},
		{
			name:        "Second withdrawal the same day",
			amountCents: 5000,
			cardNumber:  validCard,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{ID: 5, BalanceCents: 12000}, nil)
				withdrawalRepo.EXPECT().CountWithdrawToday(gomock.Any(), 5).Return(1, nil)
			},
			expectedError: domain.ErrRateLimited,
		},
		{
			name:        "Insufficient balance",
			amountCents: 50000,
			cardNumber:  validCard,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{ID: 5, BalanceCents: 12000}, nil)
				withdrawalRepo.EXPECT().CountWithdrawToday(gomock.Any(), 5).Return(0, nil)
			},
			expectedError: domain.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			withdrawal, err := service.Create(context.Background(), 5, tt.amountCents, tt.cardNumber)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.WithdrawalPending, withdrawal.Status)
			}
		})
	}
}

// The daily count is only reliable once the user row lock is held; counting
// first would let two concurrent requests both see zero and breach the cap.
func TestCreateLocksBeforeCounting(t *testing.T) {
	service, withdrawalRepo, userRepo, txManager, notifier := NewMock(t)
	passthroughTx(txManager)

	gomock.InOrder(
		userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{ID: 5, BalanceCents: 12000}, nil),
		withdrawalRepo.EXPECT().CountWithdrawToday(gomock.Any(), 5).Return(0, nil),
		userRepo.EXPECT().AdjustBalance(gomock.Any(), 5, int64(-5000)).Return(int64Ptr(7000), nil),
		withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error) {
				w.ID = 9
				return w, nil
			}),
	)
	notifier.EXPECT().Publish(gomock.Any(), 5, gomock.Any(), gomock.Any())

	_, err := service.Create(context.Background(), 5, 5000, validCard)
	assert.NoError(t, err)
}

func TestApprove(t *testing.T) {
	service, withdrawalRepo, _, txManager, notifier := NewMock(t)
	passthroughTx(txManager)

	tests := []struct {
		name          string
		withdrawalID  int
		prepareMock   func()
		expectedError error
	}{
		{
			name:         "Approve does not touch the balance",
			withdrawalID: 9,
			prepareMock: func() {
				withdrawalRepo.EXPECT().GetForUpdate(gomock.Any(), 9).Return(&domain.Withdrawal{
					ID: 9, UserID: 5, AmountCents: 5000,
					Status: domain.WithdrawalPending, Type: domain.WithdrawalTypeWithdraw,
				}, nil)
				withdrawalRepo.EXPECT().UpdateStatus(gomock.Any(), 9, domain.WithdrawalPending, domain.WithdrawalApproved).Return(true, nil)
				notifier.EXPECT().Publish(gomock.Any(), 5, gomock.Any(), gomock.Any())
			},
		},
		{
			name:         "Already approved",
			withdrawalID: 10,
			prepareMock: func() {
				withdrawalRepo.EXPECT().GetForUpdate(gomock.Any(), 10).Return(&domain.Withdrawal{
					ID: 10, UserID: 5, Status: domain.WithdrawalApproved, Type: domain.WithdrawalTypeWithdraw,
				}, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name:         "VIP upgrade audit rows never transition",
			withdrawalID: 11,
			prepareMock: func() {
				withdrawalRepo.EXPECT().GetForUpdate(gomock.Any(), 11).Return(&domain.Withdrawal{
					ID: 11, UserID: 5, Status: domain.WithdrawalApproved, Type: domain.WithdrawalTypeVipUpgrade,
				}, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name:         "Not found",
			withdrawalID: 12,
			prepareMock: func() {
				withdrawalRepo.EXPECT().GetForUpdate(gomock.Any(), 12).Return(nil, nil)
			},
			expectedError: domain.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			withdrawal, err := service.Approve(context.Background(), tt.withdrawalID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.WithdrawalApproved, withdrawal.Status)
			}
		})
	}
}

func TestReject(t *testing.T) {
	service, withdrawalRepo, userRepo, txManager, notifier := NewMock(t)
	passthroughTx(txManager)

	tests := []struct {
		name          string
		withdrawalID  int
		prepareMock   func()
		expectedError error
	}{
		{
			name:         "Reject refunds the hold",
			withdrawalID: 9,
			prepareMock: func() {
				withdrawalRepo.EXPECT().GetForUpdate(gomock.Any(), 9).Return(&domain.Withdrawal{
					ID: 9, UserID: 5, AmountCents: 5000,
					Status: domain.WithdrawalPending, Type: domain.WithdrawalTypeWithdraw,
				}, nil)
				withdrawalRepo.EXPECT().UpdateStatus(gomock.Any(), 9, domain.WithdrawalPending, domain.WithdrawalRejected).Return(true, nil)
				userRepo.EXPECT().AdjustBalance(gomock.Any(), 5, int64(5000)).Return(int64Ptr(12000), nil)
				notifier.EXPECT().Publish(gomock.Any(), 5, gomock.Any(), gomock.Any())
			},
		},
		{
			name:         "Rejecting twice refunds once",
			withdrawalID: 10,
			prepareMock: func() {
				withdrawalRepo.EXPECT().GetForUpdate(gomock.Any(), 10).Return(&domain.Withdrawal{
					ID: 10, UserID: 5, AmountCents: 5000,
					Status: domain.WithdrawalRejected, Type: domain.WithdrawalTypeWithdraw,
				}, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			withdrawal, err := service.Reject(context.Background(), tt.withdrawalID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.WithdrawalRejected, withdrawal.Status)
			}
		})
	}
}

func TestUpgradeToVip(t *testing.T) {
	service, withdrawalRepo, userRepo, txManager, notifier := NewMock(t)
	passthroughTx(txManager)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Successful upgrade",
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{
					ID: 5, BalanceCents: 9000, VipLevel: domain.VipLevelFree,
				}, nil)
				userRepo.EXPECT().AdjustBalance(gomock.Any(), 5, int64(-VipCostCents)).Return(int64Ptr(1000), nil)
				userRepo.EXPECT().SetVipLevel(gomock.Any(), 5, domain.VipLevelVip).Return(nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error) {
						assert.Equal(t, domain.WithdrawalApproved, w.Status)
						assert.Equal(t, domain.WithdrawalTypeVipUpgrade, w.Type)
						return w, nil
					})
				notifier.EXPECT().Publish(gomock.Any(), 5, gomock.Any(), gomock.Any())
			},
		},
		{
			name: "Balance one cent short",
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{
					ID: 5, BalanceCents: VipCostCents - 1, VipLevel: domain.VipLevelFree,
				}, nil)
			},
			expectedError: domain.ErrInsufficientBalance,
		},
		{
			name: "Already VIP",
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(&domain.User{
					ID: 5, BalanceCents: 9000, VipLevel: domain.VipLevelVip,
				}, nil)
			},
			expectedError: domain.ErrAlreadyVip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.UpgradeToVip(context.Background(), 5)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.VipLevelVip, user.VipLevel)
				assert.Equal(t, int64(1000), user.BalanceCents)
			}
		})
	}
}

func TestGetWithdrawals(t *testing.T) {
	service, withdrawalRepo, _, _, _ := NewMock(t)

	withdrawalRepo.EXPECT().ListByUserID(gomock.Any(), 5).Return([]domain.Withdrawal{{ID: 9}}, nil)
	list, err := service.GetWithdrawals(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetPending(t *testing.T) {
	service, withdrawalRepo, _, _, _ := NewMock(t)

	withdrawalRepo.EXPECT().ListByStatus(gomock.Any(), domain.WithdrawalPending).Return([]domain.Withdrawal{{ID: 9}, {ID: 10}}, nil)
	list, err := service.GetPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 2)
}
