package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
)

// ErrGameNotFound is returned when a game id matches no row.
var ErrGameNotFound = errors.New("party game not found")

// LeaderboardDBImpl is the concrete implementation of the LeaderboardDB interface using bun.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

// CreateGame inserts a new game and retrieves the generated ID.
func (db *LeaderboardDBImpl) CreateGame(ctx context.Context, game *PartyGame) error {
	err := db.DB.NewInsert().
		Model(game).
		ExcludeColumn("id").
		Returning("id").
		Scan(ctx, &game.ID)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetGame retrieves a specific game by ID.
func (db *LeaderboardDBImpl) GetGame(ctx context.Context, id uuid.UUID) (*PartyGame, error) {
	game := new(PartyGame)
	err := db.DB.NewSelect().
		Model(game).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game: %w", err)
	}
	return game, nil
}

// ListGames returns every game, oldest first.
func (db *LeaderboardDBImpl) ListGames(ctx context.Context) ([]PartyGame, error) {
	var games []PartyGame
	err := db.DB.NewSelect().
		Model(&games).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// SetGameStatus transitions a game between OPEN and CLOSED.
func (db *LeaderboardDBImpl) SetGameStatus(ctx context.Context, id uuid.UUID, status GameStatus) error {
	res, err := db.DB.NewUpdate().
		Model((*PartyGame)(nil)).
		Set("status = ?", status).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrGameNotFound
	}
	return nil
}

// InsertRaceEntry appends one lap submission.
func (db *LeaderboardDBImpl) InsertRaceEntry(ctx context.Context, entry *SimRaceEntry) error {
	err := db.DB.NewInsert().
		Model(entry).
		ExcludeColumn("id").
		Returning("id").
		Scan(ctx, &entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert race entry: %w", err)
	}
	return nil
}

// BestRaceScores returns each user's single lowest non-DNF lap for a game.
// Best-attempt semantics: worse and later laps never displace a faster one.
func (db *LeaderboardDBImpl) BestRaceScores(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error) {
	var rows []struct {
		UserID uuid.UUID `bun:"user_id"`
		Score  int64     `bun:"score"`
	}
	err := db.DB.NewSelect().
		Model((*SimRaceEntry)(nil)).
		ColumnExpr("user_id").
		ColumnExpr("MIN(lap_time_ms) AS score").
		Where("game_id = ?", gameID).
		Where("dnf = false").
		Group("user_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate race scores: %w", err)
	}

	scores := make([]leaderboarddomain.BestScore, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, leaderboarddomain.BestScore{UserID: r.UserID, Score: r.Score})
	}
	return scores, nil
}

// InsertTrickshot appends one trickshot scoring event.
func (db *LeaderboardDBImpl) InsertTrickshot(ctx context.Context, score *TrickshotScore) error {
	err := db.DB.NewInsert().
		Model(score).
		ExcludeColumn("id").
		Returning("id").
		Scan(ctx, &score.ID)
	if err != nil {
		return fmt.Errorf("failed to insert trickshot score: %w", err)
	}
	return nil
}

// TrickshotTotals returns each user's summed points for a game.
func (db *LeaderboardDBImpl) TrickshotTotals(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error) {
	var rows []struct {
		UserID uuid.UUID `bun:"user_id"`
		Score  int64     `bun:"score"`
	}
	err := db.DB.NewSelect().
		Model((*TrickshotScore)(nil)).
		ColumnExpr("user_id").
		ColumnExpr("SUM(points) AS score").
		Where("game_id = ?", gameID).
		Group("user_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trickshot totals: %w", err)
	}

	scores := make([]leaderboarddomain.BestScore, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, leaderboarddomain.BestScore{UserID: r.UserID, Score: r.Score})
	}
	return scores, nil
}
