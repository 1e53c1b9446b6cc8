package leaderboarddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
)

// GameType identifies the activity a PartyGame represents.
type GameType string

const (
	GameTypeSimRace   GameType = "SIM_RACE"
	GameTypeImposter  GameType = "IMPOSTER"
	GameTypeTrickshot GameType = "TRICKSHOT"
)

// GameStatus is the lifecycle state of a PartyGame.
type GameStatus string

const (
	GameStatusOpen   GameStatus = "OPEN"
	GameStatusClosed GameStatus = "CLOSED"
)

// PartyGame represents one competitive activity instance.
type PartyGame struct {
	bun.BaseModel `bun:"table:party_games,alias:pg"`

	ID               uuid.UUID                          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title            string                             `bun:"title,notnull"`
	Type             GameType                           `bun:"type,notnull"`
	Status           GameStatus                         `bun:"status,notnull,default:'OPEN'"`
	ScoringDirection leaderboarddomain.ScoringDirection `bun:"scoring_direction,notnull"`
	BettingClosed    bool                               `bun:"betting_closed,notnull,default:false"`
	CreatedAt        time.Time                          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time                          `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// SimRaceEntry is one lap submission. Entries are append-only; the
// leaderboard reads only each user's best lap.
type SimRaceEntry struct {
	bun.BaseModel `bun:"table:sim_race_entries,alias:sre"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	GameID    uuid.UUID `bun:"game_id,notnull,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	LapTimeMS int64     `bun:"lap_time_ms,notnull"`
	CarModel  string    `bun:"car_model,nullzero"`
	Track     string    `bun:"track,nullzero"`
	DNF       bool      `bun:"dnf,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ShotType enumerates trickshot varieties with fixed point values.
type ShotType string

const (
	ShotTypeCup           ShotType = "CUP"
	ShotTypeBounce        ShotType = "BOUNCE"
	ShotTypeNoLook        ShotType = "NO_LOOK"
	ShotTypeBehindTheBack ShotType = "BEHIND_THE_BACK"
)

// ShotPoints maps each shot type to its fixed award.
var ShotPoints = map[ShotType]int64{
	ShotTypeCup:           10,
	ShotTypeBounce:        25,
	ShotTypeNoLook:        40,
	ShotTypeBehindTheBack: 50,
}

// TrickshotScore is an append-only scoring event; the trickshot leaderboard
// is a SUM aggregate grouped by user.
type TrickshotScore struct {
	bun.BaseModel `bun:"table:trickshot_scores,alias:ts"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	GameID    uuid.UUID `bun:"game_id,notnull,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	ShotType  ShotType  `bun:"shot_type,notnull"`
	Points    int64     `bun:"points,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
