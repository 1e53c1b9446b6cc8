package powerdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GameConfig is the single tunable row driving the blackout cycle. Every
// write bumps version so pollers can skip unchanged state.
type GameConfig struct {
	bun.BaseModel `bun:"table:game_config,alias:gc"`

	ID                      int64      `bun:"id,pk"`
	BlackoutIntervalMinutes int        `bun:"blackout_interval_minutes,notnull"`
	KillerWindowSeconds     int        `bun:"killer_window_seconds,notnull"`
	Paused                  bool       `bun:"paused,notnull,default:false"`
	PausedAt                *time.Time `bun:"paused_at,nullzero"`
	PowerLevel              int        `bun:"power_level,notnull"`
	PhaseStartedAt          time.Time  `bun:"phase_started_at,notnull"`
	Version                 int64      `bun:"version,notnull,default:1"`
	UpdatedAt               time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// PartyTask is a physical chore that pumps the power meter when done.
type PartyTask struct {
	bun.BaseModel `bun:"table:party_tasks,alias:pt"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title        string     `bun:"title,notnull"`
	BonusPercent int        `bun:"bonus_percent,notnull"`
	CompletedBy  *uuid.UUID `bun:"completed_by,nullzero,type:uuid"`
	CompletedAt  *time.Time `bun:"completed_at,nullzero"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
