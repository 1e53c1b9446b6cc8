package imposterdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
)

// ImposterRound is one social-deduction round attached to a party game.
type ImposterRound struct {
	bun.BaseModel `bun:"table:imposter_rounds,alias:ir"`

	ID              uuid.UUID                 `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	GameID          uuid.UUID                 `bun:"game_id,notnull,type:uuid"`
	Status          imposterdomain.RoundState `bun:"status,notnull,default:'LOBBY'"`
	Word            string                    `bun:"word,notnull"`
	Hint            string                    `bun:"hint,notnull"`
	DurationSeconds int                       `bun:"duration_seconds,notnull"`
	ScheduledFor    *time.Time                `bun:"scheduled_for,nullzero"`
	StartedAt       *time.Time                `bun:"started_at,nullzero"`
	VotingAt        *time.Time                `bun:"voting_at,nullzero"`
	EndedAt         *time.Time                `bun:"ended_at,nullzero"`
	Verdict         *imposterdomain.Verdict   `bun:"verdict,nullzero"`
	WarningSent     bool                      `bun:"warning_sent,notnull,default:false"`
	LastKillAt      *time.Time                `bun:"last_kill_at,nullzero"`
	CreatedAt       time.Time                 `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time                 `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// PlayerStatus is one guest's secret role and liveness within a round.
type PlayerStatus struct {
	bun.BaseModel `bun:"table:imposter_players,alias:ip"`

	ID       uuid.UUID                  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	RoundID  uuid.UUID                  `bun:"round_id,notnull,type:uuid"`
	UserID   uuid.UUID                  `bun:"user_id,notnull,type:uuid"`
	Role     imposterdomain.Role        `bun:"role,notnull"`
	State    imposterdomain.PlayerState `bun:"state,notnull,default:'ALIVE'"`
	KilledAt *time.Time                 `bun:"killed_at,nullzero"`
	KilledBy *uuid.UUID                 `bun:"killed_by,nullzero,type:uuid"`
}
