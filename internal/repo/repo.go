package repo

import (
	"github.com/taskwallet/backend/internal/pg"
	depositrepo "github.com/taskwallet/backend/internal/repo/deposit-repo"
	referralrepo "github.com/taskwallet/backend/internal/repo/referral-repo"
	taskrepo "github.com/taskwallet/backend/internal/repo/task-repo"
	userrepo "github.com/taskwallet/backend/internal/repo/user-repo"
	withdrawalrepo "github.com/taskwallet/backend/internal/repo/withdrawal-repo"
)

type Repositories struct {
	Users       *userrepo.Repository
	Deposits    *depositrepo.Repository
	Withdrawals *withdrawalrepo.Repository
	Tasks       *taskrepo.Repository
	Referrals   *referralrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		Users:       userrepo.New(conn),
		Deposits:    depositrepo.New(conn),
		Withdrawals: withdrawalrepo.New(conn),
		Tasks:       taskrepo.New(conn),
		Referrals:   referralrepo.New(conn),
	}
}
