package powerservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	powerdomain "github.com/FamilyVerse/party-os/app/modules/power/domain"
	powerdb "github.com/FamilyVerse/party-os/app/modules/power/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// PowerService drives the task meter and the day/night blackout cycle.
type PowerService struct {
	PowerDB      powerdb.PowerDB
	EventBus     shared.EventBus
	logger       *slog.Logger
	defaultBonus int
	clock        func() time.Time
}

// NewPowerService creates a new PowerService. defaultBonusPercent is used
// when a task is created without an explicit bonus; zero falls back to 15.
func NewPowerService(db powerdb.PowerDB, eventBus shared.EventBus, logger *slog.Logger, defaultBonusPercent int) *PowerService {
	if defaultBonusPercent <= 0 || defaultBonusPercent > 100 {
		defaultBonusPercent = 15
	}
	return &PowerService{
		PowerDB:      db,
		EventBus:     eventBus,
		logger:       logger,
		defaultBonus: defaultBonusPercent,
		clock:        time.Now,
	}
}

// EnsureConfig seeds the config row at startup with the party defaults.
func (s *PowerService) EnsureConfig(ctx context.Context, blackoutIntervalMinutes, killerWindowSeconds int) error {
	return s.PowerDB.EnsureConfig(ctx, &powerdb.GameConfig{
		BlackoutIntervalMinutes: blackoutIntervalMinutes,
		KillerWindowSeconds:     killerWindowSeconds,
		PowerLevel:              100,
		PhaseStartedAt:          s.clock(),
	})
}

// StateSnapshot is the versioned read model for pollers. Clients that sent
// the current version back get an unchanged=true short-circuit.
type StateSnapshot struct {
	powerdomain.Snapshot
	Paused  bool  `json:"paused"`
	Version int64 `json:"version"`
}

// Snapshot computes the cycle state at read time from stored timestamps.
// While paused the clocks freeze at paused_at.
func (s *PowerService) Snapshot(ctx context.Context) (*StateSnapshot, error) {
	cfg, err := s.PowerDB.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	at := s.clock()
	if cfg.Paused && cfg.PausedAt != nil {
		at = *cfg.PausedAt
	}
	elapsed := at.Sub(cfg.PhaseStartedAt)

	snap := powerdomain.Compute(
		cfg.PowerLevel,
		time.Duration(cfg.BlackoutIntervalMinutes)*time.Minute,
		time.Duration(cfg.KillerWindowSeconds)*time.Second,
		elapsed,
	)
	return &StateSnapshot{Snapshot: snap, Paused: cfg.Paused, Version: cfg.Version}, nil
}

// Version returns just the config version, for cheap poll short-circuits.
func (s *PowerService) Version(ctx context.Context) (int64, error) {
	cfg, err := s.PowerDB.GetConfig(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.Version, nil
}

// CreateTask registers a chore worth a power bonus. A zero bonus falls back
// to the party-wide default.
func (s *PowerService) CreateTask(ctx context.Context, title string, bonusPercent int) (*powerdb.PartyTask, error) {
	if bonusPercent == 0 {
		bonusPercent = s.defaultBonus
	}
	if bonusPercent < 0 || bonusPercent > 100 {
		return nil, ErrInvalidBonus
	}
	task := &powerdb.PartyTask{Title: title, BonusPercent: bonusPercent}
	if err := s.PowerDB.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns every task, oldest first.
func (s *PowerService) ListTasks(ctx context.Context) ([]powerdb.PartyTask, error) {
	return s.PowerDB.ListTasks(ctx)
}

// PowerBoostedPayload announces a meter boost on the party TV.
type PowerBoostedPayload struct {
	TaskID       uuid.UUID `json:"task_id"`
	UserID       uuid.UUID `json:"user_id"`
	BonusPercent int       `json:"bonus_percent"`
}

// CompleteTask marks a task done and pumps the meter by its bonus, clamped
// to [0,100]. Rejected while the game is paused; a task pays out once.
func (s *PowerService) CompleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	cfg, err := s.PowerDB.GetConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return ErrGamePaused
	}

	task, err := s.PowerDB.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	claimed, err := s.PowerDB.CompleteTask(ctx, taskID, userID, s.clock())
	if err != nil {
		return err
	}
	if !claimed {
		return ErrTaskAlreadyDone
	}

	boosted, err := s.PowerDB.AddPower(ctx, task.BonusPercent)
	if err != nil {
		return err
	}
	if !boosted {
		// Paused between the check and the boost.
		return ErrGamePaused
	}

	if err := s.EventBus.Publish(ctx, shared.StreamPartyTV, "party-tv.power.boosted", PowerBoostedPayload{
		TaskID:       taskID,
		UserID:       userID,
		BonusPercent: task.BonusPercent,
	}); err != nil {
		s.logger.Error("Failed to publish power boost", slog.Any("error", err))
	}

	s.logger.Info("Task completed",
		slog.String("task_id", taskID.String()),
		slog.Int("bonus_percent", task.BonusPercent),
	)
	return nil
}

// Pause freezes the cycle clocks.
func (s *PowerService) Pause(ctx context.Context) error {
	cfg, err := s.PowerDB.GetConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return ErrAlreadyPaused
	}

	now := s.clock()
	if err := s.PowerDB.SetPaused(ctx, true, &now); err != nil {
		return err
	}
	s.publishPhaseChanged(ctx, "paused")
	s.logger.Info("Game paused")
	return nil
}

// Resume unfreezes the cycle, discounting the paused stretch so the phase
// picks up exactly where it stopped.
func (s *PowerService) Resume(ctx context.Context) error {
	cfg, err := s.PowerDB.GetConfig(ctx)
	if err != nil {
		return err
	}
	if !cfg.Paused || cfg.PausedAt == nil {
		return ErrNotPaused
	}

	if err := s.PowerDB.ShiftPhaseStart(ctx, s.clock().Sub(*cfg.PausedAt)); err != nil {
		return err
	}
	s.publishPhaseChanged(ctx, "resumed")
	s.logger.Info("Game resumed")
	return nil
}

// RestartCycle puts the cycle back at the top of a day phase.
func (s *PowerService) RestartCycle(ctx context.Context, powerLevel int) error {
	if err := s.PowerDB.ResetPhase(ctx, powerdomain.ClampPower(powerLevel), s.clock()); err != nil {
		return err
	}
	s.publishPhaseChanged(ctx, "restarted")
	return nil
}

func (s *PowerService) publishPhaseChanged(ctx context.Context, reason string) {
	if err := s.EventBus.Publish(ctx, shared.StreamPartyTV, "party-tv.phase.changed", map[string]any{
		"reason": reason,
	}); err != nil {
		s.logger.Error("Failed to publish phase change", slog.Any("error", err))
	}
}
