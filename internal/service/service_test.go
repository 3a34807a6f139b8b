package service

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/internal/repo"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repos := repo.New(mockDB)
	txManager := pg.NewMockTXManager(ctrl)
	hub := notify.NewHub(nil)
	defer hub.Close()

	services := New(repos, txManager, hub)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.TaskService)
	assert.NotNil(t, services.DepositService)
	assert.NotNil(t, services.WithdrawalService)
	assert.NotNil(t, services.ReferralService)
	assert.NotNil(t, services.WalletService)
}
