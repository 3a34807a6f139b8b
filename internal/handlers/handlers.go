package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taskwallet/backend/docs"
	authhandlers "github.com/taskwallet/backend/internal/handlers/auth"
	deposithandlers "github.com/taskwallet/backend/internal/handlers/deposits"
	referralhandlers "github.com/taskwallet/backend/internal/handlers/referral"
	taskhandlers "github.com/taskwallet/backend/internal/handlers/tasks"
	wallethandlers "github.com/taskwallet/backend/internal/handlers/wallet"
	withdrawalhandlers "github.com/taskwallet/backend/internal/handlers/withdrawals"
	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/service"
	"github.com/taskwallet/backend/pkg/auth"
	"github.com/taskwallet/backend/pkg/blob"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type TaskHandler interface {
	ListTasks(w http.ResponseWriter, r *http.Request)
	CompleteTask(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
}

type DepositHandler interface {
	CreateDeposit(w http.ResponseWriter, r *http.Request)
	GetDeposits(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	UpgradeVip(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	TaskHandler       TaskHandler
	DepositHandler    DepositHandler
	WithdrawalHandler WithdrawalHandler
	ReferralHandler   ReferralHandler
	WalletHandler     WalletHandler
}

func New(s *service.Services, hub *notify.Hub, proofStorage blob.Storage) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		TaskHandler:       taskhandlers.New(s.TaskService),
		DepositHandler:    deposithandlers.New(s.DepositService, proofStorage),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		ReferralHandler:   referralhandlers.New(s.ReferralService),
		WalletHandler:     wallethandlers.New(s.WalletService, hub),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/balance", h.WalletHandler.GetBalance)
			r.Get("/events", h.WalletHandler.Events)
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.TaskHandler.ListTasks)
				r.Post("/{id}/complete", h.TaskHandler.CompleteTask)
			})
			r.Route("/deposits", func(r chi.Router) {
				r.Post("/", h.DepositHandler.CreateDeposit)
				r.Get("/", h.DepositHandler.GetDeposits)
			})
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.WithdrawalHandler.Withdraw)
				r.Get("/", h.WithdrawalHandler.GetWithdrawals)
			})
			r.Post("/vip", h.WithdrawalHandler.UpgradeVip)
			r.Get("/referral", h.ReferralHandler.GetStats)
		})
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
		r.Post("/tasks", h.TaskHandler.CreateTask)
		r.Route("/deposits", func(r chi.Router) {
			r.Get("/", h.DepositHandler.GetPending)
			r.Post("/{id}/approve", h.DepositHandler.Approve)
			r.Post("/{id}/reject", h.DepositHandler.Reject)
		})
		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", h.WithdrawalHandler.GetPending)
			r.Post("/{id}/approve", h.WithdrawalHandler.Approve)
			r.Post("/{id}/reject", h.WithdrawalHandler.Reject)
		})
	})

	return r
}
