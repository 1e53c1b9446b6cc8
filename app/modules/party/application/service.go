package partyservice

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// PartyService handles guest onboarding, approval, and PIN authentication.
type PartyService struct {
	PartyUserDB partydb.PartyUserDB
	EventBus    shared.EventBus
	logger      *slog.Logger

	jwtSecret       []byte
	sessionTTL      time.Duration
	startingBalance int64

	// Per-guest PIN attempt limiters. A 4-digit PIN space is small enough
	// that unthrottled guessing would walk it in minutes.
	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// NewPartyService creates a new PartyService.
func NewPartyService(db partydb.PartyUserDB, eventBus shared.EventBus, logger *slog.Logger, jwtSecret string, sessionTTL time.Duration, startingBalance int64) *PartyService {
	return &PartyService{
		PartyUserDB:     db,
		EventBus:        eventBus,
		logger:          logger,
		jwtSecret:       []byte(jwtSecret),
		sessionTTL:      sessionTTL,
		startingBalance: startingBalance,
		limiters:        make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the PIN attempt limiter for a display name.
func (s *PartyService) limiterFor(displayName string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	l, ok := s.limiters[displayName]
	if !ok {
		l = rate.NewLimiter(rate.Every(2*time.Second), 5)
		s.limiters[displayName] = l
	}
	return l
}
