package referral

import (
	"context"
	"net/http"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/dto"
	"github.com/taskwallet/backend/pkg/auth"
	"github.com/taskwallet/backend/pkg/utils"
)

type Service interface {
	GetStats(ctx context.Context, userID int) (*domain.ReferralStats, error)
}

type ReferralHandler struct {
	referralService Service
}

func New(referralService Service) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// GetStats godoc
//
//	@Summary		Get referral stats
//	@Description	Returns the user's invite code (generated on first call), how many users signed up with it and the total referral bonus earned
//	@Tags			Referral
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReferralStatsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/referral [get]
func (h *ReferralHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	stats, err := h.referralService.GetStats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ReferralStatsResponseDTO{
		InviteCode:      stats.InviteCode,
		InvitedCount:    stats.InvitedCount,
		BonusTotalCents: stats.BonusTotalCents,
	})
}
