package leaderboardservice

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
)

func newTestService(db leaderboarddb.LeaderboardDB, bus *FakeEventBus) *LeaderboardService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLeaderboardService(db, bus, logger)
}

func raceGame(id uuid.UUID) *leaderboarddb.PartyGame {
	return &leaderboarddb.PartyGame{
		ID:               id,
		Title:            "Sim Racing Championship",
		Type:             leaderboarddb.GameTypeSimRace,
		Status:           leaderboarddb.GameStatusOpen,
		ScoringDirection: leaderboarddomain.TimeAsc,
	}
}

func TestLeaderboardService_ComputeGameLeaderboard(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()
	racerA := uuid.New()
	racerB := uuid.New()

	tests := []struct {
		name        string
		dbSetup     func(*FakeLeaderboardDB)
		expectedErr error
		verify      func(t *testing.T, standings []leaderboarddomain.Standing)
	}{
		{
			name: "ranks best attempts ascending for races",
			dbSetup: func(db *FakeLeaderboardDB) {
				db.GetGameFunc = func(ctx context.Context, id uuid.UUID) (*leaderboarddb.PartyGame, error) {
					return raceGame(gameID), nil
				}
				db.BestRaceScoresFunc = func(ctx context.Context, id uuid.UUID) ([]leaderboarddomain.BestScore, error) {
					return []leaderboarddomain.BestScore{
						{UserID: racerB, Score: 83200},
						{UserID: racerA, Score: 82500},
					}, nil
				}
			},
			verify: func(t *testing.T, standings []leaderboarddomain.Standing) {
				require.Len(t, standings, 2)
				assert.Equal(t, racerA, standings[0].UserID)
				assert.Equal(t, 1, standings[0].Rank)
				assert.Equal(t, racerB, standings[1].UserID)
				assert.Equal(t, 2, standings[1].Rank)
			},
		},
		{
			name:        "unknown game fails with NotFound",
			dbSetup:     func(db *FakeLeaderboardDB) {},
			expectedErr: leaderboarddb.ErrGameNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := NewFakeLeaderboardDB()
			tt.dbSetup(db)
			svc := newTestService(db, NewFakeEventBus())

			standings, err := svc.ComputeGameLeaderboard(ctx, gameID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			tt.verify(t, standings)
		})
	}
}

func TestLeaderboardService_Winner(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()
	champion := uuid.New()

	t.Run("rank one user wins", func(t *testing.T) {
		db := NewFakeLeaderboardDB()
		db.GetGameFunc = func(ctx context.Context, id uuid.UUID) (*leaderboarddb.PartyGame, error) {
			return raceGame(gameID), nil
		}
		db.BestRaceScoresFunc = func(ctx context.Context, id uuid.UUID) ([]leaderboarddomain.BestScore, error) {
			return []leaderboarddomain.BestScore{
				{UserID: champion, Score: 80000},
				{UserID: uuid.New(), Score: 91000},
			}, nil
		}
		svc := newTestService(db, NewFakeEventBus())

		winner, err := svc.Winner(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, champion, winner)
	})

	t.Run("all DNF yields no winner", func(t *testing.T) {
		db := NewFakeLeaderboardDB()
		db.GetGameFunc = func(ctx context.Context, id uuid.UUID) (*leaderboarddb.PartyGame, error) {
			return raceGame(gameID), nil
		}
		// BestRaceScores already filters DNF rows, so an all-DNF game
		// comes back empty.
		svc := newTestService(db, NewFakeEventBus())

		_, err := svc.Winner(ctx, gameID)
		assert.ErrorIs(t, err, ErrNoWinnerDetermined)
	})
}

func TestLeaderboardService_CreateGame_ScoringDirection(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(NewFakeLeaderboardDB(), NewFakeEventBus())

	race, err := svc.CreateGame(ctx, "Sim Racing", leaderboarddb.GameTypeSimRace)
	require.NoError(t, err)
	assert.Equal(t, leaderboarddomain.TimeAsc, race.ScoringDirection)

	trickshot, err := svc.CreateGame(ctx, "Trickshots", leaderboarddb.GameTypeTrickshot)
	require.NoError(t, err)
	assert.Equal(t, leaderboarddomain.ScoreDesc, trickshot.ScoringDirection)
}
