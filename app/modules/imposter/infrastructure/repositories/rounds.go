package imposterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
)

var (
	// ErrRoundNotFound is returned when a round does not exist.
	ErrRoundNotFound = errors.New("imposter round not found")

	// ErrPlayerNotFound is returned when a user has no seat in a round.
	ErrPlayerNotFound = errors.New("player not found in round")
)

// ImposterDBImpl is the bun-backed implementation of ImposterDB.
type ImposterDBImpl struct {
	DB *bun.DB
}

// CreateRound inserts the round and its roster in one transaction.
func (db *ImposterDBImpl) CreateRound(ctx context.Context, round *ImposterRound, players []PlayerStatus) error {
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewInsert().
			Model(round).
			ExcludeColumn("id").
			Returning("id").
			Scan(ctx, &round.ID); err != nil {
			return fmt.Errorf("failed to create round: %w", err)
		}
		for i := range players {
			players[i].RoundID = round.ID
		}
		if _, err := tx.NewInsert().
			Model(&players).
			ExcludeColumn("id").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert round players: %w", err)
		}
		return nil
	})
}

func (db *ImposterDBImpl) GetRound(ctx context.Context, id uuid.UUID) (*ImposterRound, error) {
	round := &ImposterRound{}
	err := db.DB.NewSelect().
		Model(round).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

func (db *ImposterDBImpl) ListRounds(ctx context.Context) ([]ImposterRound, error) {
	var rounds []ImposterRound
	err := db.DB.NewSelect().
		Model(&rounds).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

// TransitionRound applies a status-guarded state change. The guard makes
// concurrent admin actions and queue workers race safely: only one caller
// observes true.
func (db *ImposterDBImpl) TransitionRound(ctx context.Context, id uuid.UUID, from, to imposterdomain.RoundState, at time.Time) (bool, error) {
	q := db.DB.NewUpdate().
		Model((*ImposterRound)(nil)).
		Set("status = ?", to).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Where("status = ?", from)

	switch to {
	case imposterdomain.RoundStateActive:
		q = q.Set("started_at = ?", at)
	case imposterdomain.RoundStateVoting:
		q = q.Set("voting_at = ?", at)
	case imposterdomain.RoundStateEnded:
		q = q.Set("ended_at = ?", at)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to transition round: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

func (db *ImposterDBImpl) SetVerdict(ctx context.Context, id uuid.UUID, verdict imposterdomain.Verdict) error {
	res, err := db.DB.NewUpdate().
		Model((*ImposterRound)(nil)).
		Set("verdict = ?", verdict).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set verdict: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrRoundNotFound
	}
	return nil
}

func (db *ImposterDBImpl) ClaimWarning(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := db.DB.NewUpdate().
		Model((*ImposterRound)(nil)).
		Set("warning_sent = true").
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Where("warning_sent = false").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to claim warning: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

// ClaimKill takes the cooldown clock in one guarded update, so two
// overlapping kill attempts cannot both pass the cooldown check.
func (db *ImposterDBImpl) ClaimKill(ctx context.Context, id uuid.UUID, at, earliest time.Time) (bool, error) {
	res, err := db.DB.NewUpdate().
		Model((*ImposterRound)(nil)).
		Set("last_kill_at = ?", at).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Where("last_kill_at IS NULL OR last_kill_at <= ?", earliest).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to claim kill: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

func (db *ImposterDBImpl) GetPlayer(ctx context.Context, roundID, userID uuid.UUID) (*PlayerStatus, error) {
	player := &PlayerStatus{}
	err := db.DB.NewSelect().
		Model(player).
		Where("round_id = ?", roundID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (db *ImposterDBImpl) ListPlayers(ctx context.Context, roundID uuid.UUID) ([]PlayerStatus, error) {
	var players []PlayerStatus
	err := db.DB.NewSelect().
		Model(&players).
		Where("round_id = ?", roundID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// EliminatePlayer marks the target eliminated only while still alive.
func (db *ImposterDBImpl) EliminatePlayer(ctx context.Context, roundID, userID, killedBy uuid.UUID, at time.Time) (bool, error) {
	res, err := db.DB.NewUpdate().
		Model((*PlayerStatus)(nil)).
		Set("state = ?", imposterdomain.PlayerStateEliminated).
		Set("killed_at = ?", at).
		Set("killed_by = ?", killedBy).
		Where("round_id = ?", roundID).
		Where("user_id = ?", userID).
		Where("state = ?", imposterdomain.PlayerStateAlive).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to eliminate player: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

func (db *ImposterDBImpl) UpdatePlayerRole(ctx context.Context, roundID, userID uuid.UUID, role imposterdomain.Role) error {
	res, err := db.DB.NewUpdate().
		Model((*PlayerStatus)(nil)).
		Set("role = ?", role).
		Where("round_id = ?", roundID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update player role: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrPlayerNotFound
	}
	return nil
}
