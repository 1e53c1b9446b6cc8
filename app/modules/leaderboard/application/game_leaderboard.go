package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
)

// ComputeGameLeaderboard ranks a game by each user's best attempt.
// Pure read; ranks are recomputed on every call.
func (s *LeaderboardService) ComputeGameLeaderboard(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.Standing, error) {
	game, err := s.LeaderboardDB.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	scores, err := s.bestScores(ctx, game)
	if err != nil {
		s.logger.Error("Failed to load best scores", slog.String("game_id", gameID.String()), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load best scores: %w", err)
	}

	return leaderboarddomain.RankStandings(scores, game.ScoringDirection), nil
}

// Winner returns the rank-1 user of a game. DNF-only and empty games have
// no winner.
func (s *LeaderboardService) Winner(ctx context.Context, gameID uuid.UUID) (uuid.UUID, error) {
	standings, err := s.ComputeGameLeaderboard(ctx, gameID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(standings) == 0 {
		return uuid.Nil, ErrNoWinnerDetermined
	}
	return standings[0].UserID, nil
}

// CreateGame registers a new competitive activity. The scoring direction
// follows the game type: races rank lowest time first, everything else
// highest score first.
func (s *LeaderboardService) CreateGame(ctx context.Context, title string, gameType leaderboarddb.GameType) (*leaderboarddb.PartyGame, error) {
	if title == "" {
		return nil, fmt.Errorf("game title is required")
	}

	direction := leaderboarddomain.ScoreDesc
	if gameType == leaderboarddb.GameTypeSimRace {
		direction = leaderboarddomain.TimeAsc
	}

	game := &leaderboarddb.PartyGame{
		Title:            title,
		Type:             gameType,
		Status:           leaderboarddb.GameStatusOpen,
		ScoringDirection: direction,
	}
	if err := s.LeaderboardDB.CreateGame(ctx, game); err != nil {
		s.logger.Error("Failed to create game", slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("Game created", slog.String("game_id", game.ID.String()), slog.String("type", string(gameType)))
	return game, nil
}

// GetGame returns a single game.
func (s *LeaderboardService) GetGame(ctx context.Context, gameID uuid.UUID) (*leaderboarddb.PartyGame, error) {
	return s.LeaderboardDB.GetGame(ctx, gameID)
}

// ListGames returns every game.
func (s *LeaderboardService) ListGames(ctx context.Context) ([]leaderboarddb.PartyGame, error) {
	return s.LeaderboardDB.ListGames(ctx)
}

// CloseGame transitions a game to CLOSED.
func (s *LeaderboardService) CloseGame(ctx context.Context, gameID uuid.UUID) error {
	return s.LeaderboardDB.SetGameStatus(ctx, gameID, leaderboarddb.GameStatusClosed)
}

func (s *LeaderboardService) bestScores(ctx context.Context, game *leaderboarddb.PartyGame) ([]leaderboarddomain.BestScore, error) {
	switch game.Type {
	case leaderboarddb.GameTypeTrickshot:
		return s.LeaderboardDB.TrickshotTotals(ctx, game.ID)
	default:
		return s.LeaderboardDB.BestRaceScores(ctx, game.ID)
	}
}
