package powerdb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PowerDB is the interface for blackout-cycle database operations.
type PowerDB interface {
	// GetConfig returns the single config row.
	GetConfig(ctx context.Context) (*GameConfig, error)
	// EnsureConfig inserts the config row if it does not exist yet.
	EnsureConfig(ctx context.Context, cfg *GameConfig) error
	// AddPower shifts the stored meter by delta, clamped to [0,100], and
	// bumps version. It reports false while the cycle is paused.
	AddPower(ctx context.Context, delta int) (bool, error)
	// SetPaused records the pause flag and timestamp, bumping version.
	SetPaused(ctx context.Context, paused bool, at *time.Time) error
	// ShiftPhaseStart moves phase_started_at forward and clears the pause,
	// bumping version. Used on resume to discount the paused stretch.
	ShiftPhaseStart(ctx context.Context, delta time.Duration) error
	// ResetPhase restarts the cycle at a power level, bumping version.
	ResetPhase(ctx context.Context, powerLevel int, at time.Time) error

	CreateTask(ctx context.Context, task *PartyTask) error
	GetTask(ctx context.Context, id uuid.UUID) (*PartyTask, error)
	ListTasks(ctx context.Context) ([]PartyTask, error)
	// CompleteTask stamps completion exactly once; it reports false when
	// the task was already done.
	CompleteTask(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error)
}
