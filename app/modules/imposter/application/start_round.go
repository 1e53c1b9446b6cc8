package imposterservice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// warningLead is how long before voting the one-shot warning fires.
const warningLead = 10 * time.Minute

// RoundStartedPayload announces a round going live on the party TV.
type RoundStartedPayload struct {
	RoundID         uuid.UUID `json:"round_id"`
	GameID          uuid.UUID `json:"game_id"`
	Players         int       `json:"players"`
	DurationSeconds int       `json:"duration_seconds"`
}

// StartRound assembles a roster, deals exactly one imposter, and puts the
// round straight into ACTIVE with its warning and voting jobs scheduled.
func (s *ImposterService) StartRound(ctx context.Context, gameID uuid.UUID, durationSeconds int, playerIDs []uuid.UUID) (*imposterdb.ImposterRound, error) {
	if durationSeconds <= 0 {
		durationSeconds = int(s.defaultDuration.Seconds())
	}
	players, err := s.buildRoster(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	word, hint, err := s.Words.NextWord(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to draw round word: %w", err)
	}

	now := s.clock()
	round := &imposterdb.ImposterRound{
		GameID:          gameID,
		Status:          imposterdomain.RoundStateActive,
		Word:            word,
		Hint:            hint,
		DurationSeconds: durationSeconds,
		StartedAt:       &now,
	}
	if err := s.ImposterDB.CreateRound(ctx, round, players); err != nil {
		return nil, err
	}

	if err := s.scheduleTransitions(ctx, round.ID, now, durationSeconds); err != nil {
		s.logger.Error("Failed to schedule round jobs", slog.Any("error", err))
	}

	if err := s.EventBus.Publish(ctx, shared.StreamImposter, "imposter.round.started", RoundStartedPayload{
		RoundID:         round.ID,
		GameID:          gameID,
		Players:         len(players),
		DurationSeconds: durationSeconds,
	}); err != nil {
		s.logger.Error("Failed to publish round started event", slog.Any("error", err))
	}

	s.logger.Info("Imposter round started",
		slog.String("round_id", round.ID.String()),
		slog.Int("players", len(players)),
	)
	return round, nil
}

// buildRoster validates the players and deals one uniformly random imposter.
func (s *ImposterService) buildRoster(ctx context.Context, playerIDs []uuid.UUID) ([]imposterdb.PlayerStatus, error) {
	if len(playerIDs) < 3 {
		return nil, ErrNotEnoughPlayers
	}
	for _, id := range playerIDs {
		guest, err := s.PartyUsers.GetGuest(ctx, id)
		if err != nil {
			return nil, err
		}
		if guest.Status != partydb.GuestStatusApproved {
			return nil, fmt.Errorf("%w: %s", ErrGuestNotApproved, guest.DisplayName)
		}
	}

	imposterIdx := rand.IntN(len(playerIDs))
	players := make([]imposterdb.PlayerStatus, len(playerIDs))
	for i, id := range playerIDs {
		role := imposterdomain.RoleCrewmate
		if i == imposterIdx {
			role = imposterdomain.RoleImposter
		}
		players[i] = imposterdb.PlayerStatus{
			UserID: id,
			Role:   role,
			State:  imposterdomain.PlayerStateAlive,
		}
	}
	return players, nil
}

func (s *ImposterService) scheduleTransitions(ctx context.Context, roundID uuid.UUID, startedAt time.Time, durationSeconds int) error {
	if s.Scheduler == nil {
		return nil
	}
	endAt := startedAt.Add(time.Duration(durationSeconds) * time.Second)
	if warningAt := endAt.Add(-warningLead); warningAt.After(startedAt) {
		if err := s.Scheduler.ScheduleWarning(ctx, roundID, warningAt); err != nil {
			return err
		}
	}
	return s.Scheduler.ScheduleVotingTransition(ctx, roundID, endAt)
}
