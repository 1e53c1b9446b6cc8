package imposterservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// RoundScheduler schedules the timed transitions of a round. Implemented by
// the River-backed queue service.
type RoundScheduler interface {
	ScheduleRoundStart(ctx context.Context, roundID uuid.UUID, at time.Time) error
	ScheduleWarning(ctx context.Context, roundID uuid.UUID, at time.Time) error
	ScheduleVotingTransition(ctx context.Context, roundID uuid.UUID, at time.Time) error
	CancelRoundJobs(ctx context.Context, roundID uuid.UUID) error
}

// ImposterService runs the social-deduction rounds.
type ImposterService struct {
	ImposterDB imposterdb.ImposterDB
	PartyUsers partydb.PartyUserDB
	EventBus   shared.EventBus
	Words      WordProvider

	// Scheduler is assigned after construction because the queue service's
	// workers call back into this service.
	Scheduler RoundScheduler

	logger          *slog.Logger
	cooldown        time.Duration
	defaultDuration time.Duration
	clock           func() time.Time
}

// NewImposterService creates a new ImposterService. cooldownSeconds guards
// consecutive kills; zero falls back to 30. defaultRoundMinutes is used when
// a round is started without an explicit duration; zero falls back to 45.
func NewImposterService(db imposterdb.ImposterDB, partyUsers partydb.PartyUserDB, eventBus shared.EventBus, words WordProvider, logger *slog.Logger, cooldownSeconds, defaultRoundMinutes int) *ImposterService {
	if cooldownSeconds <= 0 {
		cooldownSeconds = 30
	}
	if defaultRoundMinutes <= 0 {
		defaultRoundMinutes = 45
	}
	return &ImposterService{
		ImposterDB:      db,
		PartyUsers:      partyUsers,
		EventBus:        eventBus,
		Words:           words,
		logger:          logger,
		cooldown:        time.Duration(cooldownSeconds) * time.Second,
		defaultDuration: time.Duration(defaultRoundMinutes) * time.Minute,
		clock:           time.Now,
	}
}

// GetRound returns one round.
func (s *ImposterService) GetRound(ctx context.Context, roundID uuid.UUID) (*imposterdb.ImposterRound, error) {
	return s.ImposterDB.GetRound(ctx, roundID)
}

// ListRounds returns every round, newest first.
func (s *ImposterService) ListRounds(ctx context.Context) ([]imposterdb.ImposterRound, error) {
	return s.ImposterDB.ListRounds(ctx)
}
