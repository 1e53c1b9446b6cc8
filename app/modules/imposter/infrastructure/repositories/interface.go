package imposterdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
)

// ImposterDB is the interface for imposter round database operations.
type ImposterDB interface {
	// CreateRound inserts a round and its player roster atomically.
	CreateRound(ctx context.Context, round *ImposterRound, players []PlayerStatus) error
	GetRound(ctx context.Context, id uuid.UUID) (*ImposterRound, error)
	ListRounds(ctx context.Context) ([]ImposterRound, error)

	// TransitionRound moves a round between states with a status guard;
	// it reports false when the round was not in the expected state.
	TransitionRound(ctx context.Context, id uuid.UUID, from, to imposterdomain.RoundState, at time.Time) (bool, error)
	// SetVerdict records the admin-adjudicated outcome on an ended round.
	SetVerdict(ctx context.Context, id uuid.UUID, verdict imposterdomain.Verdict) error
	// ClaimWarning flips warning_sent exactly once; it reports false when
	// the flag was already set.
	ClaimWarning(ctx context.Context, id uuid.UUID) (bool, error)
	// ClaimKill stamps last_kill_at only when no kill landed after
	// earliest; it reports false when the cooldown still holds the clock.
	ClaimKill(ctx context.Context, id uuid.UUID, at, earliest time.Time) (bool, error)

	GetPlayer(ctx context.Context, roundID, userID uuid.UUID) (*PlayerStatus, error)
	ListPlayers(ctx context.Context, roundID uuid.UUID) ([]PlayerStatus, error)
	// EliminatePlayer marks an alive player eliminated; it reports false
	// when the player was not alive.
	EliminatePlayer(ctx context.Context, roundID, userID, killedBy uuid.UUID, at time.Time) (bool, error)
	UpdatePlayerRole(ctx context.Context, roundID, userID uuid.UUID, role imposterdomain.Role) error
}
