package leaderboardservice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// LapSubmittedPayload is the advisory event published after a lap lands.
// Clients re-fetch the leaderboard; this payload is never the source of truth.
type LapSubmittedPayload struct {
	GameID    uuid.UUID `json:"game_id"`
	UserID    uuid.UUID `json:"user_id"`
	LapTimeMS int64     `json:"lap_time_ms"`
	Display   string    `json:"display"`
	DNF       bool      `json:"dnf"`
}

// TrickshotScoredPayload is the advisory event for trickshot points.
type TrickshotScoredPayload struct {
	GameID   uuid.UUID              `json:"game_id"`
	UserID   uuid.UUID              `json:"user_id"`
	ShotType leaderboarddb.ShotType `json:"shot_type"`
	Points   int64                  `json:"points"`
}

// SubmitLap appends one lap to a sim race game.
func (s *LeaderboardService) SubmitLap(ctx context.Context, gameID, userID uuid.UUID, lapTimeMS int64, carModel, track string, dnf bool) (*leaderboarddb.SimRaceEntry, error) {
	if !dnf && lapTimeMS <= 0 {
		return nil, ErrInvalidLapTime
	}

	game, err := s.LeaderboardDB.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Type != leaderboarddb.GameTypeSimRace {
		return nil, ErrWrongGameType
	}

	entry := &leaderboarddb.SimRaceEntry{
		GameID:    gameID,
		UserID:    userID,
		LapTimeMS: lapTimeMS,
		CarModel:  carModel,
		Track:     track,
		DNF:       dnf,
	}
	if err := s.LeaderboardDB.InsertRaceEntry(ctx, entry); err != nil {
		s.logger.Error("Failed to insert race entry", slog.Any("error", err))
		return nil, err
	}

	if err := s.EventBus.Publish(ctx, shared.StreamPartyTV, "party-tv.lap.submitted", LapSubmittedPayload{
		GameID:    gameID,
		UserID:    userID,
		LapTimeMS: lapTimeMS,
		Display:   leaderboarddomain.FormatLapTime(lapTimeMS),
		DNF:       dnf,
	}); err != nil {
		s.logger.Error("Failed to publish lap event", slog.Any("error", err))
	}

	s.logger.Info("Lap submitted",
		slog.String("game_id", gameID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("lap_time_ms", lapTimeMS),
		slog.Bool("dnf", dnf),
	)
	return entry, nil
}

// SubmitTrickshot appends one trickshot scoring event with its fixed points.
func (s *LeaderboardService) SubmitTrickshot(ctx context.Context, gameID, userID uuid.UUID, shotType leaderboarddb.ShotType) (*leaderboarddb.TrickshotScore, error) {
	points, ok := leaderboarddb.ShotPoints[shotType]
	if !ok {
		return nil, ErrUnknownShotType
	}

	game, err := s.LeaderboardDB.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Type != leaderboarddb.GameTypeTrickshot {
		return nil, ErrWrongGameType
	}

	score := &leaderboarddb.TrickshotScore{
		GameID:   gameID,
		UserID:   userID,
		ShotType: shotType,
		Points:   points,
	}
	if err := s.LeaderboardDB.InsertTrickshot(ctx, score); err != nil {
		s.logger.Error("Failed to insert trickshot score", slog.Any("error", err))
		return nil, err
	}

	if err := s.EventBus.Publish(ctx, shared.StreamPartyTV, "party-tv.trickshot.scored", TrickshotScoredPayload{
		GameID:   gameID,
		UserID:   userID,
		ShotType: shotType,
		Points:   points,
	}); err != nil {
		s.logger.Error("Failed to publish trickshot event", slog.Any("error", err))
	}

	return score, nil
}
