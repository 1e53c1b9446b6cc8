package powerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrConfigNotFound is returned before the config row is seeded.
	ErrConfigNotFound = errors.New("game config not found")

	// ErrTaskNotFound is returned for an unknown task id.
	ErrTaskNotFound = errors.New("party task not found")
)

// configRowID pins the table to a single row.
const configRowID = 1

// PowerDBImpl is the bun-backed implementation of PowerDB.
type PowerDBImpl struct {
	DB *bun.DB
}

func (db *PowerDBImpl) GetConfig(ctx context.Context) (*GameConfig, error) {
	cfg := &GameConfig{}
	err := db.DB.NewSelect().
		Model(cfg).
		Where("id = ?", configRowID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game config: %w", err)
	}
	return cfg, nil
}

func (db *PowerDBImpl) EnsureConfig(ctx context.Context, cfg *GameConfig) error {
	cfg.ID = configRowID
	_, err := db.DB.NewInsert().
		Model(cfg).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure game config: %w", err)
	}
	return nil
}

// AddPower applies the clamp in SQL so concurrent boosts cannot overshoot.
func (db *PowerDBImpl) AddPower(ctx context.Context, delta int) (bool, error) {
	res, err := db.DB.NewUpdate().
		Model((*GameConfig)(nil)).
		Set("power_level = LEAST(100, GREATEST(0, power_level + ?))", delta).
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ?", configRowID).
		Where("paused = false").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to add power: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

func (db *PowerDBImpl) SetPaused(ctx context.Context, paused bool, at *time.Time) error {
	_, err := db.DB.NewUpdate().
		Model((*GameConfig)(nil)).
		Set("paused = ?", paused).
		Set("paused_at = ?", at).
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ?", configRowID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set paused: %w", err)
	}
	return nil
}

func (db *PowerDBImpl) ShiftPhaseStart(ctx context.Context, delta time.Duration) error {
	_, err := db.DB.NewUpdate().
		Model((*GameConfig)(nil)).
		Set("phase_started_at = phase_started_at + ?::interval", fmt.Sprintf("%d seconds", int(delta.Seconds()))).
		Set("paused = false").
		Set("paused_at = NULL").
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ?", configRowID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to shift phase start: %w", err)
	}
	return nil
}

func (db *PowerDBImpl) ResetPhase(ctx context.Context, powerLevel int, at time.Time) error {
	_, err := db.DB.NewUpdate().
		Model((*GameConfig)(nil)).
		Set("power_level = ?", powerLevel).
		Set("phase_started_at = ?", at).
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ?", configRowID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset phase: %w", err)
	}
	return nil
}

func (db *PowerDBImpl) CreateTask(ctx context.Context, task *PartyTask) error {
	if err := db.DB.NewInsert().
		Model(task).
		ExcludeColumn("id").
		Returning("id").
		Scan(ctx, &task.ID); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (db *PowerDBImpl) GetTask(ctx context.Context, id uuid.UUID) (*PartyTask, error) {
	task := &PartyTask{}
	err := db.DB.NewSelect().
		Model(task).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (db *PowerDBImpl) ListTasks(ctx context.Context) ([]PartyTask, error) {
	var tasks []PartyTask
	err := db.DB.NewSelect().
		Model(&tasks).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CompleteTask claims the task with a completed-guard so double taps on the
// tablet award the bonus once.
func (db *PowerDBImpl) CompleteTask(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error) {
	res, err := db.DB.NewUpdate().
		Model((*PartyTask)(nil)).
		Set("completed_by = ?", userID).
		Set("completed_at = ?", at).
		Where("id = ?", id).
		Where("completed_at IS NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}
