package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/dto"
	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/pkg/auth"
	"github.com/taskwallet/backend/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (*domain.User, error)
}

// Subscriber hands out per-user event streams for the SSE endpoint.
type Subscriber interface {
	Subscribe(userID int) (<-chan notify.Event, func())
}

type WalletHandler struct {
	walletService Service
	subscriber    Subscriber
}

func New(walletService Service, subscriber Subscriber) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		subscriber:    subscriber,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the wallet balance in cents and the VIP level of the authenticated user
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	user, err := h.walletService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		BalanceCents: user.BalanceCents,
		VipLevel:     string(user.VipLevel),
	})
}

// Events godoc
//
//	@Summary		Stream wallet events
//	@Description	Server-sent events stream of deposit, withdrawal, task and referral notifications for the authenticated user
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		text/event-stream
//	@Success		200	{string}	string			"Event stream"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/events [get]
func (h *WalletHandler) Events(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events, cancel := h.subscriber.Subscribe(userID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-events:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}
