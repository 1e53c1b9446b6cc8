package imposterhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	imposterservice "github.com/FamilyVerse/party-os/app/modules/imposter/application"
	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	imposterqueue "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/queue"
	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// JobLister reports a round's pending queue jobs.
type JobLister interface {
	GetScheduledJobs(ctx context.Context, roundID uuid.UUID) ([]imposterqueue.JobInfo, error)
}

// Handlers exposes the imposter module over HTTP.
type Handlers struct {
	Service *imposterservice.ImposterService
	Jobs    JobLister
	logger  *slog.Logger
}

// NewHandlers creates the imposter HTTP handlers.
func NewHandlers(service *imposterservice.ImposterService, jobs JobLister, logger *slog.Logger) *Handlers {
	return &Handlers{Service: service, Jobs: jobs, logger: logger}
}

// Routes mounts the imposter endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/rounds", h.StartRound)
	r.Post("/rounds/schedule", h.ScheduleRound)
	r.Get("/rounds", h.ListRounds)
	r.Get("/rounds/{roundID}", h.GetRound)
	r.Get("/rounds/{roundID}/jobs", h.ListJobs)
	r.Post("/rounds/{roundID}/eliminate", h.Eliminate)
	r.Post("/rounds/{roundID}/voting", h.StartVoting)
	r.Post("/rounds/{roundID}/end", h.EndRound)
	r.Get("/rounds/{roundID}/players/{userID}/assignment", h.GetAssignment)
	r.Post("/rounds/{roundID}/players/{userID}/role", h.ReassignRole)
	return r
}

type startRoundRequest struct {
	GameID          uuid.UUID   `json:"game_id"`
	DurationSeconds int         `json:"duration_seconds"`
	PlayerIDs       []uuid.UUID `json:"player_ids"`
	StartTime       string      `json:"start_time,omitempty"`
}

// StartRound deals roles and starts a round immediately.
func (h *Handlers) StartRound(w http.ResponseWriter, r *http.Request) {
	var req startRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	round, err := h.Service.StartRound(r.Context(), req.GameID, req.DurationSeconds, req.PlayerIDs)
	h.respondRound(w, round, err)
}

// ScheduleRound creates a LOBBY round from a natural-language start time.
func (h *Handlers) ScheduleRound(w http.ResponseWriter, r *http.Request) {
	var req startRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	round, err := h.Service.ScheduleRound(r.Context(), req.GameID, req.StartTime, req.DurationSeconds, req.PlayerIDs)
	h.respondRound(w, round, err)
}

func (h *Handlers) respondRound(w http.ResponseWriter, round *imposterdb.ImposterRound, err error) {
	switch {
	case errors.Is(err, imposterservice.ErrNotEnoughPlayers),
		errors.Is(err, imposterservice.ErrGuestNotApproved),
		errors.Is(err, imposterservice.ErrUnparsableTime),
		errors.Is(err, imposterservice.ErrTimeInPast):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("Failed to create round", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to create round")
	default:
		shared.RespondJSON(w, http.StatusCreated, imposterservice.NewRoundView(round))
	}
}

// ListRounds returns every round, redacted for pollers.
func (h *Handlers) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.Service.ListRounds(r.Context())
	if err != nil {
		h.logger.Error("Failed to list rounds", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list rounds")
		return
	}
	views := make([]*imposterservice.RoundView, 0, len(rounds))
	for i := range rounds {
		views = append(views, imposterservice.NewRoundView(&rounds[i]))
	}
	shared.RespondJSON(w, http.StatusOK, views)
}

// GetRound returns a round snapshot with server-computed timers.
func (h *Handlers) GetRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	snap, err := h.Service.Snapshot(r.Context(), roundID)
	switch {
	case errors.Is(err, imposterdb.ErrRoundNotFound):
		shared.RespondError(w, http.StatusNotFound, "round not found")
	case err != nil:
		h.logger.Error("Failed to load round", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load round")
	default:
		shared.RespondJSON(w, http.StatusOK, snap)
	}
}

// GetAssignment returns one player's private briefing: their role, the
// hint, and the word for crewmates only.
func (h *Handlers) GetAssignment(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	assignment, err := h.Service.PlayerAssignment(r.Context(), roundID, userID)
	switch {
	case errors.Is(err, imposterdb.ErrRoundNotFound),
		errors.Is(err, imposterdb.ErrPlayerNotFound):
		shared.RespondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("Failed to load assignment", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load assignment")
	default:
		shared.RespondJSON(w, http.StatusOK, assignment)
	}
}

// ListJobs shows a round's pending queue jobs, for the host's debugging
// view.
func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	jobs, err := h.Jobs.GetScheduledJobs(r.Context(), roundID)
	if err != nil {
		h.logger.Error("Failed to list round jobs", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list round jobs")
		return
	}
	shared.RespondJSON(w, http.StatusOK, jobs)
}

type eliminateRequest struct {
	ActorID  uuid.UUID `json:"actor_id"`
	TargetID uuid.UUID `json:"target_id"`
}

// Eliminate processes an imposter kill attempt.
func (h *Handlers) Eliminate(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	var req eliminateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.Service.Eliminate(r.Context(), roundID, req.ActorID, req.TargetID)
	switch {
	case errors.Is(err, imposterservice.ErrOnCooldown):
		shared.RespondError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, imposterservice.ErrNotImposter),
		errors.Is(err, imposterservice.ErrInvalidTarget),
		errors.Is(err, imposterservice.ErrWrongRoundState):
		shared.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, imposterdb.ErrRoundNotFound),
		errors.Is(err, imposterdb.ErrPlayerNotFound):
		shared.RespondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("Failed to eliminate player", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to eliminate player")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}

// StartVoting moves the round into its voting phase.
func (h *Handlers) StartVoting(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	err = h.Service.StartVoting(r.Context(), roundID)
	h.respondTransition(w, err)
}

type endRoundRequest struct {
	Verdict imposterdomain.Verdict `json:"verdict"`
}

// EndRound records the host's verdict and closes the round.
func (h *Handlers) EndRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	var req endRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.Service.EndRound(r.Context(), roundID, req.Verdict)
	if errors.Is(err, imposterservice.ErrInvalidVerdict) {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondTransition(w, err)
}

type reassignRoleRequest struct {
	Role imposterdomain.Role `json:"role"`
}

// ReassignRole swaps a player's role while the round is still in the lobby.
func (h *Handlers) ReassignRole(w http.ResponseWriter, r *http.Request) {
	roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid round id")
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req reassignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.Service.ReassignRole(r.Context(), roundID, userID, req.Role)
	switch {
	case errors.Is(err, imposterservice.ErrInvalidRole):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, imposterservice.ErrWrongRoundState):
		shared.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, imposterdb.ErrRoundNotFound),
		errors.Is(err, imposterdb.ErrPlayerNotFound):
		shared.RespondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("Failed to reassign role", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to reassign role")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}

func (h *Handlers) respondTransition(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, imposterservice.ErrWrongRoundState):
		shared.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, imposterdb.ErrRoundNotFound):
		shared.RespondError(w, http.StatusNotFound, "round not found")
	case err != nil:
		h.logger.Error("Failed to transition round", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to transition round")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}
