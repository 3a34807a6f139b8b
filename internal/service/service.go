package service

import (
	"github.com/taskwallet/backend/internal/handlers/auth"
	"github.com/taskwallet/backend/internal/handlers/deposits"
	"github.com/taskwallet/backend/internal/handlers/referral"
	"github.com/taskwallet/backend/internal/handlers/tasks"
	"github.com/taskwallet/backend/internal/handlers/wallet"
	"github.com/taskwallet/backend/internal/handlers/withdrawals"

	pkgauth "github.com/taskwallet/backend/pkg/auth"

	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/internal/repo"
	"github.com/taskwallet/backend/internal/service/authservice"
	"github.com/taskwallet/backend/internal/service/depositservice"
	"github.com/taskwallet/backend/internal/service/referralservice"
	"github.com/taskwallet/backend/internal/service/taskservice"
	"github.com/taskwallet/backend/internal/service/walletservice"
	"github.com/taskwallet/backend/internal/service/withdrawalservice"
)

type Services struct {
	AuthService       auth.Service
	TaskService       tasks.Service
	DepositService    deposits.Service
	WithdrawalService withdrawals.Service
	ReferralService   referral.Service
	WalletService     wallet.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, hub *notify.Hub) *Services {
	referralService := referralservice.New(repo.Users, repo.Referrals, txManager)
	depositService := depositservice.New(repo.Deposits, repo.Users, repo.Referrals, txManager, hub)
	withdrawalService := withdrawalservice.New(repo.Withdrawals, repo.Users, txManager, hub)
	taskService := taskservice.New(repo.Tasks, repo.Users, txManager, hub)
	authService := authservice.New(repo.Users, referralService, txManager, &pkgauth.HashService{}, &pkgauth.JWTService{})
	walletService := walletservice.New(repo.Users)

	return &Services{
		AuthService:       authService,
		TaskService:       taskService,
		DepositService:    depositService,
		WithdrawalService: withdrawalService,
		ReferralService:   referralService,
		WalletService:     walletService,
	}
}
