package deposits

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/dto"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/pkg/auth"
	"github.com/taskwallet/backend/pkg/blob"
	"github.com/taskwallet/backend/pkg/utils"
)

const maxProofSize = 10 << 20

type Service interface {
	Create(ctx context.Context, userID int, amountCents int64, declaredName, payerReference, proofImageRef string, methodID int) (*domain.Deposit, error)
	Approve(ctx context.Context, depositID int) (*domain.Deposit, error)
	Reject(ctx context.Context, depositID int) (*domain.Deposit, error)
	GetDeposits(ctx context.Context, userID int) ([]domain.Deposit, error)
	GetPending(ctx context.Context) ([]domain.Deposit, error)
}

type DepositHandler struct {
	depositService Service
	proofStorage   blob.Storage
}

func New(depositService Service, proofStorage blob.Storage) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
		proofStorage:   proofStorage,
	}
}

// CreateDeposit godoc
//
//	@Summary		Declare a deposit
//	@Description	Create a PENDING deposit claim with an optional payment proof image. The wallet is credited only after an admin confirms the claim.
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			amount_cents	formData	int		true	"Amount in cents, at least 8000"
//	@Param			declared_name	formData	string	true	"Name on the payment"
//	@Param			payer_reference	formData	string	false	"External payment reference"
//	@Param			method_id		formData	int		false	"Payment method id"
//	@Param			proof			formData	file	false	"Payment proof image"
//	@Success		200				{object}	dto.DepositResponseDTO
//	@Failure		400				{object}	utils.Response	"Invalid request"
//	@Failure		401				{object}	utils.Response	"User not authorized"
//	@Failure		422				{object}	utils.Response	"Amount below minimum"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [post]
func (h *DepositHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	amountCents, err := strconv.ParseInt(r.FormValue("amount_cents"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	declaredName := r.FormValue("declared_name")
	if declaredName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Declared name is required")
		return
	}
	payerReference := r.FormValue("payer_reference")
	methodID, _ := strconv.Atoi(r.FormValue("method_id"))

	proofRef := h.storeProof(r)

	deposit, err := h.depositService.Create(r.Context(), userID, amountCents, declaredName, payerReference, proofRef, methodID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toDepositDTO(deposit))
}

// storeProof uploads the proof image if one was attached. Upload failures
// are logged and the claim proceeds without a proof reference.
func (h *DepositHandler) storeProof(r *http.Request) string {
	if h.proofStorage == nil {
		return ""
	}
	file, header, err := r.FormFile("proof")
	if err != nil {
		return ""
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		zap.L().Warn("failed to read proof image", zap.Error(err))
		return ""
	}
	ref, err := h.proofStorage.Store(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		zap.L().Warn("failed to store proof image", zap.Error(err))
		return ""
	}
	return ref
}

// GetDeposits godoc
//
//	@Summary		Get deposit history
//	@Description	List the authenticated user's deposit claims, newest first
//	@Tags			Deposits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.DepositResponseDTO
//	@Success		204	{object}	utils.Response	"No deposits"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [get]
func (h *DepositHandler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	list, err := h.depositService.GetDeposits(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch deposits")
		return
	}
	if len(list) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No deposits")
		return
	}

	response := make([]dto.DepositResponseDTO, len(list))
	for i, d := range list {
		response[i] = toDepositDTO(&d)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPending godoc
//
//	@Summary		List pending deposits
//	@Description	Moderation queue of PENDING deposit claims. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AdminDepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/deposits [get]
func (h *DepositHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.depositService.GetPending(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch deposits")
		return
	}

	response := make([]dto.AdminDepositResponseDTO, len(list))
	for i, d := range list {
		response[i] = dto.AdminDepositResponseDTO{
			ID:             d.ID,
			UserID:         d.UserID,
			AmountCents:    d.AmountCents,
			Status:         string(d.Status),
			DeclaredName:   d.DeclaredName,
			PayerReference: d.PayerReference,
			ProofImageRef:  d.ProofImageRef,
			MethodID:       d.MethodID,
			CreatedAt:      d.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Approve godoc
//
//	@Summary		Confirm a deposit
//	@Description	Move a PENDING deposit to CONFIRMED and credit the wallet. Pays the inviter's referral bonus on the inviter's first confirmed deposit credit for this claim. Idempotent per deposit. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Deposit ID"
//	@Success		200	{object}	dto.AdminDepositResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid deposit id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		404	{object}	utils.Response	"Deposit not found"
//	@Failure		409	{object}	utils.Response	"Deposit already resolved"
//	@Failure		503	{object}	utils.Response	"Store busy, retry"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/deposits/{id}/approve [post]
func (h *DepositHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.depositService.Approve)
}

// Reject godoc
//
//	@Summary		Reject a deposit
//	@Description	Move a PENDING deposit to REJECTED. No balance change. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Deposit ID"
//	@Success		200	{object}	dto.AdminDepositResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid deposit id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		404	{object}	utils.Response	"Deposit not found"
//	@Failure		409	{object}	utils.Response	"Deposit already resolved"
//	@Failure		503	{object}	utils.Response	"Store busy, retry"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/deposits/{id}/reject [post]
func (h *DepositHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.depositService.Reject)
}

func (h *DepositHandler) resolve(w http.ResponseWriter, r *http.Request, op func(context.Context, int) (*domain.Deposit, error)) {
	depositID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid deposit id")
		return
	}

	deposit, err := op(r.Context(), depositID)
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

	utils.RespondWithJSON(w, http.StatusOK, dto.AdminDepositResponseDTO{
		ID:             deposit.ID,
		UserID:         deposit.UserID,
		AmountCents:    deposit.AmountCents,
		Status:         string(deposit.Status),
		DeclaredName:   deposit.DeclaredName,
		PayerReference: deposit.PayerReference,
		ProofImageRef:  deposit.ProofImageRef,
		MethodID:       deposit.MethodID,
		CreatedAt:      deposit.CreatedAt,
	})
}

func toDepositDTO(d *domain.Deposit) dto.DepositResponseDTO {
	return dto.DepositResponseDTO{
		ID:            d.ID,
		AmountCents:   d.AmountCents,
		Status:        string(d.Status),
		DeclaredName:  d.DeclaredName,
		ProofImageRef: d.ProofImageRef,
		CreatedAt:     d.CreatedAt,
	}
}
