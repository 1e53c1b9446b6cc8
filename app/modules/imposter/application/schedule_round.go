package imposterservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// ParseStartTime resolves admin input like "tonight at 9pm" against now.
func ParseStartTime(input string, now time.Time) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(strings.ToLower(input), now)
	if err != nil || r == nil {
		return time.Time{}, ErrUnparsableTime
	}
	return r.Time, nil
}

// ScheduleRound creates a LOBBY round whose roster is dealt and whose state
// flips to ACTIVE by a queued job at the parsed start time.
func (s *ImposterService) ScheduleRound(ctx context.Context, gameID uuid.UUID, startTimeInput string, durationSeconds int, playerIDs []uuid.UUID) (*imposterdb.ImposterRound, error) {
	if durationSeconds <= 0 {
		durationSeconds = int(s.defaultDuration.Seconds())
	}
	now := s.clock()
	startAt, err := ParseStartTime(startTimeInput, now)
	if err != nil {
		return nil, err
	}
	if !startAt.After(now) {
		return nil, ErrTimeInPast
	}

	players, err := s.buildRoster(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	word, hint, err := s.Words.NextWord(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to draw round word: %w", err)
	}

	round := &imposterdb.ImposterRound{
		GameID:          gameID,
		Status:          imposterdomain.RoundStateLobby,
		Word:            word,
		Hint:            hint,
		DurationSeconds: durationSeconds,
		ScheduledFor:    &startAt,
	}
	if err := s.ImposterDB.CreateRound(ctx, round, players); err != nil {
		return nil, err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleRoundStart(ctx, round.ID, startAt); err != nil {
			s.logger.Error("Failed to schedule round start", slog.Any("error", err))
		}
	}

	s.logger.Info("Imposter round scheduled",
		slog.String("round_id", round.ID.String()),
		slog.Time("starts_at", startAt),
	)
	return round, nil
}

// ActivateRound flips a scheduled LOBBY round to ACTIVE. Invoked by the
// queued start job, or early by the host.
func (s *ImposterService) ActivateRound(ctx context.Context, roundID uuid.UUID) error {
	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return err
	}

	now := s.clock()
	moved, err := s.ImposterDB.TransitionRound(ctx, roundID, imposterdomain.RoundStateLobby, imposterdomain.RoundStateActive, now)
	if err != nil {
		return err
	}
	if !moved {
		return ErrWrongRoundState
	}

	if err := s.scheduleTransitions(ctx, roundID, now, round.DurationSeconds); err != nil {
		s.logger.Error("Failed to schedule round jobs", slog.Any("error", err))
	}

	players, err := s.ImposterDB.ListPlayers(ctx, roundID)
	if err != nil {
		return err
	}
	if err := s.EventBus.Publish(ctx, shared.StreamImposter, "imposter.round.started", RoundStartedPayload{
		RoundID:         roundID,
		GameID:          round.GameID,
		Players:         len(players),
		DurationSeconds: round.DurationSeconds,
	}); err != nil {
		s.logger.Error("Failed to publish round started event", slog.Any("error", err))
	}
	return nil
}
