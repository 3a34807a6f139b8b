package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/dto"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/pkg/auth"
	"github.com/taskwallet/backend/pkg/utils"
)

type Service interface {
	ListAvailable(ctx context.Context, userID int, now time.Time) ([]domain.TaskListing, error)
	Complete(ctx context.Context, userID, taskID int) (*domain.TaskCompletion, error)
	CreateTask(ctx context.Context, title string, rewardCents int64, durationSeconds int, minVipLevel domain.VipLevel) (*domain.Task, error)
}

type TaskHandler struct {
	taskService Service
}

func New(taskService Service) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks godoc
//
//	@Summary		List available tasks
//	@Description	Catalog of tasks for today. Tasks completed in the current daily window are omitted, VIP-gated tasks are marked locked for FREE users.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TaskResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/tasks [get]
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	listings, err := h.taskService.ListAvailable(r.Context(), userID, time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	response := make([]dto.TaskResponseDTO, len(listings))
	for i, listing := range listings {
		response[i] = dto.TaskResponseDTO{
			ID:              listing.Task.ID,
			Title:           listing.Task.Title,
			RewardCents:     listing.Task.RewardCents,
			DurationSeconds: listing.Task.DurationSeconds,
			MinVipLevel:     string(listing.Task.MinVipLevel),
			Locked:          listing.Locked,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CompleteTask godoc
//
//	@Summary		Complete a task
//	@Description	Credit the task reward to the wallet and record the completion. A task pays out at most once per user.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	dto.TaskCompletionResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid task id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"VIP level required"
//	@Failure		404	{object}	utils.Response	"Task not found"
//	@Failure		409	{object}	utils.Response	"Task already completed"
//	@Failure		503	{object}	utils.Response	"Store busy, retry"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	completion, err := h.taskService.Complete(r.Context(), userID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrVipRequired):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrAlreadyCompleted):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, pg.ErrStoreBusy):
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Store busy, retry")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.TaskCompletionResponseDTO{
		TaskID:       completion.TaskID,
		RewardCents:  completion.RewardCents,
		BalanceCents: completion.BalanceAfterCents,
	})
}

// CreateTask godoc
//
//	@Summary		Create a task
//	@Description	Add a task to the catalog. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTaskRequestDTO	true	"Task definition"
//	@Success		200		{object}	dto.TaskResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Failure		422		{object}	utils.Response	"Invalid reward"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/tasks [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	level := domain.VipLevel(req.MinVipLevel)
	if level == "" {
		level = domain.VipLevelFree
	}
	if level != domain.VipLevelFree && level != domain.VipLevelVip {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid vip level")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.RewardCents, req.DurationSeconds, level)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.TaskResponseDTO{
		ID:              task.ID,
		Title:           task.Title,
		RewardCents:     task.RewardCents,
		DurationSeconds: task.DurationSeconds,
		MinVipLevel:     string(task.MinVipLevel),
	})
}
