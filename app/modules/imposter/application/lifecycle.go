package imposterservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	"github.com/FamilyVerse/party-os/app/shared"
)

// ReassignRole swaps a player's secret role while the round sits in LOBBY.
func (s *ImposterService) ReassignRole(ctx context.Context, roundID, userID uuid.UUID, role imposterdomain.Role) error {
	if role != imposterdomain.RoleCrewmate && role != imposterdomain.RoleImposter {
		return ErrInvalidRole
	}

	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Status != imposterdomain.RoundStateLobby {
		return ErrWrongRoundState
	}

	return s.ImposterDB.UpdatePlayerRole(ctx, roundID, userID, role)
}

// SendWarning fires the one-shot warning near the end of the round. The
// warning_sent flag guards the queue worker against redelivery.
func (s *ImposterService) SendWarning(ctx context.Context, roundID uuid.UUID) error {
	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Status != imposterdomain.RoundStateActive {
		return nil
	}

	claimed, err := s.ImposterDB.ClaimWarning(ctx, roundID)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	if err := s.EventBus.Publish(ctx, shared.StreamImposter, "imposter.round.warning", map[string]any{
		"round_id": roundID,
	}); err != nil {
		s.logger.Error("Failed to publish round warning", slog.Any("error", err))
	}
	s.logger.Info("Round warning sent", slog.String("round_id", roundID.String()))
	return nil
}

// StartVoting moves an ACTIVE round to VOTING. The queue worker calls this at
// the round's end time; the host may call it early.
func (s *ImposterService) StartVoting(ctx context.Context, roundID uuid.UUID) error {
	moved, err := s.ImposterDB.TransitionRound(ctx, roundID, imposterdomain.RoundStateActive, imposterdomain.RoundStateVoting, s.clock())
	if err != nil {
		return err
	}
	if !moved {
		return ErrWrongRoundState
	}

	if err := s.EventBus.Publish(ctx, shared.StreamImposter, "imposter.round.voting", map[string]any{
		"round_id": roundID,
	}); err != nil {
		s.logger.Error("Failed to publish voting event", slog.Any("error", err))
	}
	s.logger.Info("Voting started", slog.String("round_id", roundID.String()))
	return nil
}

// RoundEndedPayload reveals the word and verdict once the round is over.
type RoundEndedPayload struct {
	RoundID uuid.UUID              `json:"round_id"`
	Verdict imposterdomain.Verdict `json:"verdict"`
	Word    string                 `json:"word"`
}

// EndRound closes a VOTING round with the host's verdict. ENDED is terminal.
func (s *ImposterService) EndRound(ctx context.Context, roundID uuid.UUID, verdict imposterdomain.Verdict) error {
	if !imposterdomain.ValidVerdict(verdict) {
		return ErrInvalidVerdict
	}

	moved, err := s.ImposterDB.TransitionRound(ctx, roundID, imposterdomain.RoundStateVoting, imposterdomain.RoundStateEnded, s.clock())
	if err != nil {
		return err
	}
	if !moved {
		return ErrWrongRoundState
	}
	if err := s.ImposterDB.SetVerdict(ctx, roundID, verdict); err != nil {
		return err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.CancelRoundJobs(ctx, roundID); err != nil {
			s.logger.Error("Failed to cancel round jobs", slog.Any("error", err))
		}
	}

	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if err := s.EventBus.Publish(ctx, shared.StreamImposter, "imposter.round.ended", RoundEndedPayload{
		RoundID: roundID,
		Verdict: verdict,
		Word:    round.Word,
	}); err != nil {
		s.logger.Error("Failed to publish round ended event", slog.Any("error", err))
	}

	s.logger.Info("Round ended",
		slog.String("round_id", roundID.String()),
		slog.String("verdict", string(verdict)),
	)
	return nil
}

// RoundSnapshot is the shared read model for a round, with all clocks
// computed server-side from stored timestamps. Roles and the secret word
// never appear here; players fetch their own briefing via PlayerAssignment.
type RoundSnapshot struct {
	Round                    *RoundView   `json:"round"`
	Players                  []PlayerView `json:"players"`
	RemainingSeconds         int          `json:"remaining_seconds"`
	RemainingCooldownSeconds int          `json:"remaining_cooldown_seconds"`
}

// Snapshot returns the redacted round, its roster, and the derived timers.
func (s *ImposterService) Snapshot(ctx context.Context, roundID uuid.UUID) (*RoundSnapshot, error) {
	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	players, err := s.ImposterDB.ListPlayers(ctx, roundID)
	if err != nil {
		return nil, err
	}

	snap := &RoundSnapshot{Round: NewRoundView(round)}
	snap.Players = make([]PlayerView, 0, len(players))
	for i := range players {
		snap.Players = append(snap.Players, NewPlayerView(&players[i]))
	}
	now := s.clock()
	if round.Status == imposterdomain.RoundStateActive && round.StartedAt != nil {
		remaining := round.StartedAt.Add(time.Duration(round.DurationSeconds) * time.Second).Sub(now)
		if remaining > 0 {
			snap.RemainingSeconds = int(remaining.Seconds())
		}
	}
	if round.LastKillAt != nil {
		if cd := s.cooldown - now.Sub(*round.LastKillAt); cd > 0 {
			snap.RemainingCooldownSeconds = int(cd.Seconds())
		}
	}
	return snap, nil
}
