package leaderboardservice

import (
	"log/slog"

	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// LeaderboardService handles game rankings, the MVP composite score, and
// score submissions.
type LeaderboardService struct {
	LeaderboardDB leaderboarddb.LeaderboardDB
	EventBus      shared.EventBus
	logger        *slog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(db leaderboarddb.LeaderboardDB, eventBus shared.EventBus, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{
		LeaderboardDB: db,
		EventBus:      eventBus,
		logger:        logger,
	}
}
