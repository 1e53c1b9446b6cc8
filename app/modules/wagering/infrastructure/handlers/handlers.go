package wagerhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/FamilyVerse/party-os/app/modules/leaderboard/application"
	wagerservice "github.com/FamilyVerse/party-os/app/modules/wagering/application"
	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// Handlers exposes the wagering module over HTTP.
type Handlers struct {
	Service *wagerservice.WagerService
	logger  *slog.Logger
}

// NewHandlers creates the wagering HTTP handlers.
func NewHandlers(service *wagerservice.WagerService, logger *slog.Logger) *Handlers {
	return &Handlers{Service: service, logger: logger}
}

// Routes mounts the wagering endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/bets", h.PlaceBet)
	r.Get("/games/{gameID}/bets", h.ListGameBets)
	r.Get("/users/{userID}/bets", h.ListUserBets)
	r.Post("/games/{gameID}/close-betting", h.CloseBetting)
	r.Post("/games/{gameID}/settle", h.SettleBets)
	return r
}

type placeBetRequest struct {
	GameID       uuid.UUID `json:"game_id"`
	BettorID     uuid.UUID `json:"bettor_id"`
	TargetUserID uuid.UUID `json:"target_user_id"`
	Amount       int64     `json:"amount"`
}

// PlaceBet stakes wallet balance on a guest winning a game.
func (h *Handlers) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bet, err := h.Service.PlaceBet(r.Context(), req.GameID, req.BettorID, req.TargetUserID, req.Amount)
	switch {
	case errors.Is(err, wagerservice.ErrInvalidAmount),
		errors.Is(err, wagerservice.ErrSelfBet):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wagerservice.ErrBettingClosed):
		shared.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, wagerdb.ErrInsufficientFunds):
		shared.RespondError(w, http.StatusPaymentRequired, "insufficient funds")
	case errors.Is(err, wagerdb.ErrGameNotFound):
		shared.RespondError(w, http.StatusNotFound, "game not found")
	case err != nil:
		h.logger.Error("Failed to place bet", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to place bet")
	default:
		shared.RespondJSON(w, http.StatusCreated, bet)
	}
}

// ListGameBets returns every bet placed on a game.
func (h *Handlers) ListGameBets(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	bets, err := h.Service.ListBetsForGame(r.Context(), gameID)
	if err != nil {
		h.logger.Error("Failed to list bets", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list bets")
		return
	}
	shared.RespondJSON(w, http.StatusOK, bets)
}

// ListUserBets returns every bet a guest has placed.
func (h *Handlers) ListUserBets(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	bets, err := h.Service.ListBetsForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list bets", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list bets")
		return
	}
	shared.RespondJSON(w, http.StatusOK, bets)
}

// CloseBetting stops a game from accepting new bets.
func (h *Handlers) CloseBetting(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	if err := h.Service.CloseBetting(r.Context(), gameID); err != nil {
		h.logger.Error("Failed to close betting", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to close betting")
		return
	}
	shared.RespondJSON(w, http.StatusOK, nil)
}

// SettleBets resolves pending bets against the final leaderboard.
func (h *Handlers) SettleBets(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	result, err := h.Service.SettleBets(r.Context(), gameID)
	switch {
	case errors.Is(err, leaderboardservice.ErrNoWinnerDetermined):
		shared.RespondError(w, http.StatusConflict, "no winner determined yet")
	case err != nil:
		h.logger.Error("Failed to settle bets", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to settle bets")
	default:
		shared.RespondJSON(w, http.StatusOK, result)
	}
}
