package leaderboardhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/FamilyVerse/party-os/app/modules/leaderboard/application"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// Handlers exposes the leaderboard module over HTTP.
type Handlers struct {
	Service *leaderboardservice.LeaderboardService
	logger  *slog.Logger
}

// NewHandlers creates the leaderboard HTTP handlers.
func NewHandlers(service *leaderboardservice.LeaderboardService, logger *slog.Logger) *Handlers {
	return &Handlers{Service: service, logger: logger}
}

// Routes mounts the leaderboard endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/games", h.CreateGame)
	r.Get("/games", h.ListGames)
	r.Get("/games/{gameID}/leaderboard", h.GetGameLeaderboard)
	r.Post("/games/{gameID}/laps", h.SubmitLap)
	r.Post("/games/{gameID}/trickshots", h.SubmitTrickshot)
	r.Post("/games/{gameID}/close", h.CloseGame)
	r.Get("/mvp", h.GetPartyMVP)
	r.Get("/mvp/chart.png", h.GetMVPChart)
	r.Get("/export.xlsx", h.ExportResults)
	return r
}

type createGameRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// CreateGame registers a new competitive activity.
func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.Service.CreateGame(r.Context(), req.Title, leaderboarddb.GameType(req.Type))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, game)
}

// ListGames returns every game.
func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.Service.ListGames(r.Context())
	if err != nil {
		h.logger.Error("Failed to list games", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list games")
		return
	}
	shared.RespondJSON(w, http.StatusOK, games)
}

// GetGameLeaderboard returns the ranked standings of one game.
func (h *Handlers) GetGameLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	standings, err := h.Service.ComputeGameLeaderboard(r.Context(), gameID)
	switch {
	case errors.Is(err, leaderboarddb.ErrGameNotFound):
		shared.RespondError(w, http.StatusNotFound, "game not found")
	case err != nil:
		h.logger.Error("Failed to compute leaderboard", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to compute leaderboard")
	default:
		shared.RespondJSON(w, http.StatusOK, standings)
	}
}

type submitLapRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	LapTimeMS int64     `json:"lap_time_ms"`
	CarModel  string    `json:"car_model"`
	Track     string    `json:"track"`
	DNF       bool      `json:"dnf"`
}

// SubmitLap appends one lap submission.
func (h *Handlers) SubmitLap(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req submitLapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.SubmitLap(r.Context(), gameID, req.UserID, req.LapTimeMS, req.CarModel, req.Track, req.DNF)
	switch {
	case errors.Is(err, leaderboardservice.ErrInvalidLapTime), errors.Is(err, leaderboardservice.ErrWrongGameType):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, leaderboarddb.ErrGameNotFound):
		shared.RespondError(w, http.StatusNotFound, "game not found")
	case err != nil:
		h.logger.Error("Failed to submit lap", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to submit lap")
	default:
		shared.RespondJSON(w, http.StatusCreated, entry)
	}
}

type submitTrickshotRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	ShotType string    `json:"shot_type"`
}

// SubmitTrickshot appends one trickshot scoring event.
func (h *Handlers) SubmitTrickshot(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req submitTrickshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.Service.SubmitTrickshot(r.Context(), gameID, req.UserID, leaderboarddb.ShotType(req.ShotType))
	switch {
	case errors.Is(err, leaderboardservice.ErrUnknownShotType), errors.Is(err, leaderboardservice.ErrWrongGameType):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, leaderboarddb.ErrGameNotFound):
		shared.RespondError(w, http.StatusNotFound, "game not found")
	case err != nil:
		h.logger.Error("Failed to submit trickshot", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to submit trickshot")
	default:
		shared.RespondJSON(w, http.StatusCreated, score)
	}
}

// CloseGame transitions a game to CLOSED.
func (h *Handlers) CloseGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	err = h.Service.CloseGame(r.Context(), gameID)
	switch {
	case errors.Is(err, leaderboarddb.ErrGameNotFound):
		shared.RespondError(w, http.StatusNotFound, "game not found")
	case err != nil:
		h.logger.Error("Failed to close game", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to close game")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}

// GetPartyMVP returns the cross-game composite standings.
func (h *Handlers) GetPartyMVP(w http.ResponseWriter, r *http.Request) {
	standings, err := h.Service.ComputePartyMVP(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute MVP", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to compute MVP")
		return
	}
	shared.RespondJSON(w, http.StatusOK, standings)
}

// GetMVPChart renders the MVP standings as a PNG for the party TV.
func (h *Handlers) GetMVPChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.Service.RenderMVPChart(r.Context(), nil)
	if err != nil {
		h.logger.Error("Failed to render MVP chart", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ExportResults streams the end-of-party results workbook.
func (h *Handlers) ExportResults(w http.ResponseWriter, r *http.Request) {
	book, err := h.Service.ExportResults(r.Context())
	if err != nil {
		h.logger.Error("Failed to export results", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to export results")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="party-results.xlsx"`)
	_, _ = w.Write(book)
}
