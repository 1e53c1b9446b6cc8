package powerhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	powerservice "github.com/FamilyVerse/party-os/app/modules/power/application"
	powerdb "github.com/FamilyVerse/party-os/app/modules/power/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// Handlers exposes the power module over HTTP.
type Handlers struct {
	Service *powerservice.PowerService
	logger  *slog.Logger
}

// NewHandlers creates the power HTTP handlers.
func NewHandlers(service *powerservice.PowerService, logger *slog.Logger) *Handlers {
	return &Handlers{Service: service, logger: logger}
}

// Routes mounts the power endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/state", h.GetState)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks/{taskID}/complete", h.CompleteTask)
	r.Post("/pause", h.Pause)
	r.Post("/resume", h.Resume)
	r.Post("/restart", h.RestartCycle)
	return r
}

// GetState returns the server-computed cycle snapshot. Pollers that pass
// ?version=<last seen> get 304 when nothing changed.
func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("version"); v != "" {
		seen, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			current, err := h.Service.Version(r.Context())
			if err == nil && current == seen {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	snap, err := h.Service.Snapshot(r.Context())
	switch {
	case errors.Is(err, powerdb.ErrConfigNotFound):
		shared.RespondError(w, http.StatusNotFound, "game config not seeded")
	case err != nil:
		h.logger.Error("Failed to compute state", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to compute state")
	default:
		shared.RespondJSON(w, http.StatusOK, snap)
	}
}

type createTaskRequest struct {
	Title        string `json:"title"`
	BonusPercent int    `json:"bonus_percent"`
}

// CreateTask registers a power-boosting chore.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.Service.CreateTask(r.Context(), req.Title, req.BonusPercent)
	switch {
	case errors.Is(err, powerservice.ErrInvalidBonus):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("Failed to create task", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to create task")
	default:
		shared.RespondJSON(w, http.StatusCreated, task)
	}
}

// ListTasks returns every task.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.ListTasks(r.Context())
	if err != nil {
		h.logger.Error("Failed to list tasks", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	shared.RespondJSON(w, http.StatusOK, tasks)
}

type completeTaskRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// CompleteTask awards a task's power bonus to the meter.
func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.Service.CompleteTask(r.Context(), taskID, req.UserID)
	switch {
	case errors.Is(err, powerservice.ErrGamePaused),
		errors.Is(err, powerservice.ErrTaskAlreadyDone):
		shared.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, powerdb.ErrTaskNotFound):
		shared.RespondError(w, http.StatusNotFound, "task not found")
	case err != nil:
		h.logger.Error("Failed to complete task", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to complete task")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}

// Pause freezes the blackout cycle.
func (h *Handlers) Pause(w http.ResponseWriter, r *http.Request) {
	h.respondToggle(w, h.Service.Pause(r.Context()))
}

// Resume unfreezes the blackout cycle.
func (h *Handlers) Resume(w http.ResponseWriter, r *http.Request) {
	h.respondToggle(w, h.Service.Resume(r.Context()))
}

type restartRequest struct {
	PowerLevel int `json:"power_level"`
}

// RestartCycle starts a fresh day phase at the given power level.
func (h *Handlers) RestartCycle(w http.ResponseWriter, r *http.Request) {
	var req restartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.RestartCycle(r.Context(), req.PowerLevel); err != nil {
		h.logger.Error("Failed to restart cycle", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to restart cycle")
		return
	}
	shared.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handlers) respondToggle(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, powerservice.ErrAlreadyPaused),
		errors.Is(err, powerservice.ErrNotPaused):
		shared.RespondError(w, http.StatusConflict, err.Error())
	case err != nil:
		h.logger.Error("Failed to toggle pause", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to toggle pause")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}
