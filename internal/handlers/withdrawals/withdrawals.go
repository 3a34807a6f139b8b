package withdrawals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/dto"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/pkg/auth"
	"github.com/taskwallet/backend/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, userID int, amountCents int64, cardNumber string) (*domain.Withdrawal, error)
	Approve(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error)
	Reject(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error)
	UpgradeToVip(ctx context.Context, userID int) (*domain.User, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	GetPending(ctx context.Context) ([]domain.Withdrawal, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Place a PENDING withdrawal. The amount is held (debited) immediately and refunded if the request is rejected. One withdrawal request per day.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateWithdrawalRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		422		{object}	utils.Response	"Invalid amount or card number"
//	@Failure		429		{object}	utils.Response	"Daily withdrawal limit reached"
//	@Failure		503		{object}	utils.Response	"Store busy, retry"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateWithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	withdrawal, err := h.withdrawalService.Create(r.Context(), userID, req.AmountCents, req.CardNumber)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidCardNumber):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, domain.ErrRateLimited):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, pg.ErrStoreBusy):
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Store busy, retry")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalDTO(withdrawal, false))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal history
//	@Description	List the authenticated user's withdrawal requests, newest first
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Success		204	{object}	utils.Response	"No withdrawals"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	list, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	if len(list) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No withdrawals")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(list))
	for i, wd := range list {
		response[i] = toWithdrawalDTO(&wd, false)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpgradeVip godoc
//
//	@Summary		Upgrade to VIP
//	@Description	Buy the VIP level from the wallet balance. The purchase is recorded as an approved VIP_UPGRADE entry.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		409	{object}	utils.Response	"Already VIP"
//	@Failure		503	{object}	utils.Response	"Store busy, retry"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/vip [post]
func (h *WithdrawalHandler) UpgradeVip(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	user, err := h.withdrawalService.UpgradeToVip(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVip):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, pg.ErrStoreBusy):
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Store busy, retry")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		BalanceCents: user.BalanceCents,
		VipLevel:     string(user.VipLevel),
	})
}

// GetPending godoc
//
//	@Summary		List pending withdrawals
//	@Description	Moderation queue of PENDING withdrawal requests. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals [get]
func (h *WithdrawalHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.withdrawalService.GetPending(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(list))
	for i, wd := range list {
		response[i] = toWithdrawalDTO(&wd, true)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Approve godoc
//
//	@Summary		Approve a withdrawal
//	@Description	Move a PENDING withdrawal to APPROVED. The amount was already held at creation, so no balance change happens. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Withdrawal ID"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid withdrawal id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		404	{object}	utils.Response	"Withdrawal not found"
//	@Failure		409	{object}	utils.Response	"Withdrawal already resolved"
//	@Failure		503	{object}	utils.Response	"Store busy, retry"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/approve [post]
func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.withdrawalService.Approve)
}

// Reject godoc
//
//	@Summary		Reject a withdrawal
//	@Description	Move a PENDING withdrawal to REJECTED and refund the held amount. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Withdrawal ID"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid withdrawal id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		404	{object}	utils.Response	"Withdrawal not found"
//	@Failure		409	{object}	utils.Response	"Withdrawal already resolved"
//	@Failure		503	{object}	utils.Response	"Store busy, retry"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/reject [post]
func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.withdrawalService.Reject)
}

func (h *WithdrawalHandler) resolve(w http.ResponseWriter, r *http.Request, op func(context.Context, int) (*domain.Withdrawal, error)) {
	withdrawalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid withdrawal id")
		return
	}

	withdrawal, err := op(r.Context(), withdrawalID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidState):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, pg.ErrStoreBusy):
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Store busy, retry")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalDTO(withdrawal, true))
}

func toWithdrawalDTO(wd *domain.Withdrawal, withUser bool) dto.WithdrawalResponseDTO {
	out := dto.WithdrawalResponseDTO{
		ID:          wd.ID,
		AmountCents: wd.AmountCents,
		Status:      string(wd.Status),
		Type:        string(wd.Type),
		CreatedAt:   wd.CreatedAt,
	}
	if withUser {
		out.UserID = wd.UserID
	}
	return out
}
