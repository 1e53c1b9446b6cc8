package partyhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	partyservice "github.com/FamilyVerse/party-os/app/modules/party/application"
	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// Handlers exposes the party module over HTTP.
type Handlers struct {
	Service *partyservice.PartyService
	logger  *slog.Logger
}

// NewHandlers creates the party HTTP handlers.
func NewHandlers(service *partyservice.PartyService, logger *slog.Logger) *Handlers {
	return &Handlers{Service: service, logger: logger}
}

// Routes mounts the party endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/guests", h.OnboardGuest)
	r.Get("/guests", h.ListGuests)
	r.Get("/guests/{guestID}", h.GetGuest)
	r.Post("/guests/{guestID}/approve", h.ApproveGuest)
	r.Post("/guests/{guestID}/reject", h.RejectGuest)
	r.Post("/guests/{guestID}/credit", h.CreditWallet)
	r.Post("/login", h.Login)
	return r
}

type onboardRequest struct {
	DisplayName string `json:"display_name"`
	PIN         string `json:"pin"`
}

// OnboardGuest registers a new PENDING guest.
func (h *Handlers) OnboardGuest(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	guest, err := h.Service.OnboardGuest(r.Context(), req.DisplayName, req.PIN)
	switch {
	case errors.Is(err, partyservice.ErrInvalidName), errors.Is(err, partyservice.ErrInvalidPIN):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("Failed to onboard guest", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to onboard guest")
	default:
		shared.RespondJSON(w, http.StatusCreated, guestView(guest))
	}
}

type loginRequest struct {
	DisplayName string `json:"display_name"`
	PIN         string `json:"pin"`
}

type loginResponse struct {
	Token string `json:"token"`
	Guest any    `json:"guest"`
}

// Login authenticates a guest via display name and PIN.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, guest, err := h.Service.Authenticate(r.Context(), req.DisplayName, req.PIN)
	switch {
	case errors.Is(err, partyservice.ErrTooManyAttempts):
		shared.RespondError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, partyservice.ErrInvalidCredentials):
		shared.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, partyservice.ErrGuestNotApproved):
		shared.RespondError(w, http.StatusForbidden, err.Error())
	case err != nil:
		h.logger.Error("Login failed", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "login failed")
	default:
		shared.RespondJSON(w, http.StatusOK, loginResponse{Token: token, Guest: guestView(guest)})
	}
}

// GetGuest returns one guest by id.
func (h *Handlers) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "guestID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid guest id")
		return
	}

	guest, err := h.Service.GetGuest(r.Context(), id)
	switch {
	case errors.Is(err, partydb.ErrGuestNotFound):
		shared.RespondError(w, http.StatusNotFound, "guest not found")
	case err != nil:
		h.logger.Error("Failed to fetch guest", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to fetch guest")
	default:
		shared.RespondJSON(w, http.StatusOK, guestView(guest))
	}
}

// ListGuests returns all guests.
func (h *Handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.Service.ListGuests(r.Context())
	if err != nil {
		h.logger.Error("Failed to list guests", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to list guests")
		return
	}

	views := make([]map[string]any, 0, len(guests))
	for i := range guests {
		views = append(views, guestView(&guests[i]))
	}
	shared.RespondJSON(w, http.StatusOK, views)
}

// ApproveGuest approves a pending guest.
func (h *Handlers) ApproveGuest(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Service.ApproveGuest)
}

// RejectGuest rejects a pending guest.
func (h *Handlers) RejectGuest(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Service.RejectGuest)
}

func (h *Handlers) updateStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "guestID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid guest id")
		return
	}

	err = fn(r.Context(), id)
	switch {
	case errors.Is(err, partydb.ErrGuestNotFound):
		shared.RespondError(w, http.StatusNotFound, "guest not found")
	case err != nil:
		h.logger.Error("Failed to update guest status", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to update guest status")
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}

type creditRequest struct {
	Amount int64 `json:"amount"`
}

// CreditWallet tops up a guest's wallet (admin).
func (h *Handlers) CreditWallet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "guestID"))
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid guest id")
		return
	}

	var req creditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.Service.CreditWallet(r.Context(), id, req.Amount)
	switch {
	case errors.Is(err, partydb.ErrGuestNotFound):
		shared.RespondError(w, http.StatusNotFound, "guest not found")
	case err != nil:
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		shared.RespondJSON(w, http.StatusOK, nil)
	}
}

// guestView strips the PIN from API responses.
func guestView(g *partydb.PartyUser) map[string]any {
	return map[string]any{
		"id":             g.ID,
		"display_name":   g.DisplayName,
		"wallet_balance": g.WalletBalance,
		"status":         g.Status,
		"created_at":     g.CreatedAt,
	}
}
