package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
)

// ComputePartyMVP combines every game's best-attempt ranking into the
// cross-game meta-point standings. Games without entries contribute nothing;
// imposter games have no score table and are skipped.
func (s *LeaderboardService) ComputePartyMVP(ctx context.Context) ([]leaderboarddomain.MVPStanding, error) {
	games, err := s.LeaderboardDB.ListGames(ctx)
	if err != nil {
		s.logger.Error("Failed to list games for MVP", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	perGame := make([][]leaderboarddomain.Standing, 0, len(games))
	for i := range games {
		game := &games[i]
		if game.Type == leaderboarddb.GameTypeImposter {
			continue
		}

		scores, err := s.bestScores(ctx, game)
		if err != nil {
			s.logger.Error("Failed to load scores for MVP",
				slog.String("game_id", game.ID.String()), slog.Any("error", err))
			return nil, fmt.Errorf("failed to load scores for game %s: %w", game.ID, err)
		}
		if len(scores) == 0 {
			continue
		}
		perGame = append(perGame, leaderboarddomain.RankStandings(scores, game.ScoringDirection))
	}

	return leaderboarddomain.ComputeMVP(perGame), nil
}
