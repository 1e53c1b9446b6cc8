package wageradapters

import (
	"context"

	"github.com/google/uuid"

	leaderboardservice "github.com/FamilyVerse/party-os/app/modules/leaderboard/application"
)

// LeaderboardOutcome resolves game winners through the leaderboard module.
type LeaderboardOutcome struct {
	Leaderboard *leaderboardservice.LeaderboardService
}

func (a *LeaderboardOutcome) Winner(ctx context.Context, gameID uuid.UUID) (uuid.UUID, error) {
	return a.Leaderboard.Winner(ctx, gameID)
}
