package imposterservice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	"github.com/FamilyVerse/party-os/app/shared"
)

// PlayerEliminatedPayload announces a kill on the imposter stream.
type PlayerEliminatedPayload struct {
	RoundID  uuid.UUID `json:"round_id"`
	TargetID uuid.UUID `json:"target_id"`
	Alive    int       `json:"alive"`
}

// Eliminate lets the imposter take out an alive crewmate. A rejected kill
// changes nothing: the cooldown clock, the target, and the round are left as
// they were.
func (s *ImposterService) Eliminate(ctx context.Context, roundID, actorID, targetID uuid.UUID) error {
	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Status != imposterdomain.RoundStateActive {
		return ErrWrongRoundState
	}

	actor, err := s.ImposterDB.GetPlayer(ctx, roundID, actorID)
	if err != nil {
		return err
	}
	if actor.Role != imposterdomain.RoleImposter {
		return ErrNotImposter
	}
	if actor.State != imposterdomain.PlayerStateAlive {
		return ErrInvalidTarget
	}
	if targetID == actorID {
		return ErrInvalidTarget
	}

	target, err := s.ImposterDB.GetPlayer(ctx, roundID, targetID)
	if err != nil {
		return err
	}
	if target.State != imposterdomain.PlayerStateAlive {
		return ErrInvalidTarget
	}

	// Take the cooldown clock in one guarded update; two overlapping kill
	// attempts cannot both win it.
	now := s.clock()
	claimed, err := s.ImposterDB.ClaimKill(ctx, roundID, now, now.Add(-s.cooldown))
	if err != nil {
		return err
	}
	if !claimed {
		return ErrOnCooldown
	}

	eliminated, err := s.ImposterDB.EliminatePlayer(ctx, roundID, targetID, actorID, now)
	if err != nil {
		return err
	}
	if !eliminated {
		// The target died between the read above and this update.
		return ErrInvalidTarget
	}

	alive := 0
	if players, err := s.ImposterDB.ListPlayers(ctx, roundID); err == nil {
		for _, p := range players {
			if p.State == imposterdomain.PlayerStateAlive {
				alive++
			}
		}
	}

	if err := s.EventBus.Publish(ctx, shared.StreamImposter, "imposter.player.eliminated", PlayerEliminatedPayload{
		RoundID:  roundID,
		TargetID: targetID,
		Alive:    alive,
	}); err != nil {
		s.logger.Error("Failed to publish elimination event", slog.Any("error", err))
	}

	s.logger.Info("Player eliminated",
		slog.String("round_id", roundID.String()),
		slog.String("target_id", targetID.String()),
	)
	return nil
}

// RemainingCooldown reports how long the imposter must wait before the next
// kill, computed from the stored last kill timestamp.
func (s *ImposterService) RemainingCooldown(ctx context.Context, roundID uuid.UUID) (int, error) {
	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return 0, err
	}
	if round.LastKillAt == nil {
		return 0, nil
	}
	remaining := s.cooldown - s.clock().Sub(*round.LastKillAt)
	if remaining < 0 {
		return 0, nil
	}
	return int(remaining.Seconds()), nil
}
