package imposterservice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
)

// activeRound starts a round with a known imposter at index 0.
func activeRound(t *testing.T, s *ImposterService, db *FakeImposterDB, guests *FakeGuestDB) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	roster := approvedRoster(guests, 4)
	round, err := s.StartRound(context.Background(), uuid.New(), 45*60, roster)
	require.NoError(t, err)

	// Force a deterministic imposter.
	for _, p := range db.Players[round.ID] {
		p.Role = imposterdomain.RoleCrewmate
	}
	db.Players[round.ID][0].Role = imposterdomain.RoleImposter
	return round.ID, roster
}

func TestImposterService_Eliminate(t *testing.T) {
	now := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*ImposterService, *FakeImposterDB, *FakeEventBus, uuid.UUID, []uuid.UUID) {
		db := NewFakeImposterDB()
		guests := NewFakeGuestDB()
		bus := &FakeEventBus{}
		s := newTestService(db, guests, bus, &FakeScheduler{})
		s.clock = func() time.Time { return now }
		roundID, roster := activeRound(t, s, db, guests)
		return s, db, bus, roundID, roster
	}

	t.Run("imposter eliminates an alive crewmate", func(t *testing.T) {
		s, db, bus, roundID, roster := setup(t)

		require.NoError(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]))

		target, err := db.GetPlayer(context.Background(), roundID, roster[1])
		require.NoError(t, err)
		assert.Equal(t, imposterdomain.PlayerStateEliminated, target.State)
		require.NotNil(t, target.KilledBy)
		assert.Equal(t, roster[0], *target.KilledBy)

		round, err := db.GetRound(context.Background(), roundID)
		require.NoError(t, err)
		require.NotNil(t, round.LastKillAt)
		assert.Equal(t, now, *round.LastKillAt)

		subjects := make([]string, 0, len(bus.Published))
		for _, ev := range bus.Published {
			subjects = append(subjects, ev.Subject)
		}
		assert.Contains(t, subjects, "imposter.player.eliminated")
	})

	t.Run("crewmates cannot kill", func(t *testing.T) {
		s, db, _, roundID, roster := setup(t)

		err := s.Eliminate(context.Background(), roundID, roster[1], roster[2])
		assert.ErrorIs(t, err, ErrNotImposter)

		target, err := db.GetPlayer(context.Background(), roundID, roster[2])
		require.NoError(t, err)
		assert.Equal(t, imposterdomain.PlayerStateAlive, target.State)
	})

	t.Run("cooldown blocks a second kill and leaves state untouched", func(t *testing.T) {
		s, db, _, roundID, roster := setup(t)

		require.NoError(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]))

		// 10 seconds later, inside the 30 second cooldown.
		s.clock = func() time.Time { return now.Add(10 * time.Second) }
		err := s.Eliminate(context.Background(), roundID, roster[0], roster[2])
		assert.ErrorIs(t, err, ErrOnCooldown)

		target, err := db.GetPlayer(context.Background(), roundID, roster[2])
		require.NoError(t, err)
		assert.Equal(t, imposterdomain.PlayerStateAlive, target.State)

		round, err := db.GetRound(context.Background(), roundID)
		require.NoError(t, err)
		assert.Equal(t, now, *round.LastKillAt, "rejected kill must not reset the cooldown clock")

		// Once the cooldown elapses the kill goes through.
		s.clock = func() time.Time { return now.Add(31 * time.Second) }
		require.NoError(t, s.Eliminate(context.Background(), roundID, roster[0], roster[2]))
	})

	t.Run("overlapping kill attempts cannot both win the cooldown claim", func(t *testing.T) {
		s, db, _, roundID, roster := setup(t)

		// Two attempts race at the same instant: only one takes the clock.
		require.NoError(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]))
		err := s.Eliminate(context.Background(), roundID, roster[0], roster[2])
		assert.ErrorIs(t, err, ErrOnCooldown)

		target, err := db.GetPlayer(context.Background(), roundID, roster[2])
		require.NoError(t, err)
		assert.Equal(t, imposterdomain.PlayerStateAlive, target.State)

		claimed, err := db.ClaimKill(context.Background(), roundID, now, now.Add(-30*time.Second))
		require.NoError(t, err)
		assert.False(t, claimed, "a held cooldown clock rejects further claims")
	})

	t.Run("rejects dead targets and self kills", func(t *testing.T) {
		s, _, _, roundID, roster := setup(t)

		require.NoError(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]))
		s.clock = func() time.Time { return now.Add(time.Minute) }

		assert.ErrorIs(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]), ErrInvalidTarget)
		assert.ErrorIs(t, s.Eliminate(context.Background(), roundID, roster[0], roster[0]), ErrInvalidTarget)
	})

	t.Run("rejects kills outside ACTIVE", func(t *testing.T) {
		s, _, _, roundID, roster := setup(t)

		require.NoError(t, s.StartVoting(context.Background(), roundID))
		assert.ErrorIs(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]), ErrWrongRoundState)
	})
}

func TestImposterService_RemainingCooldown(t *testing.T) {
	now := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	db := NewFakeImposterDB()
	guests := NewFakeGuestDB()
	s := newTestService(db, guests, &FakeEventBus{}, &FakeScheduler{})
	s.clock = func() time.Time { return now }
	roundID, roster := activeRound(t, s, db, guests)

	remaining, err := s.RemainingCooldown(context.Background(), roundID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	require.NoError(t, s.Eliminate(context.Background(), roundID, roster[0], roster[1]))

	s.clock = func() time.Time { return now.Add(12 * time.Second) }
	remaining, err = s.RemainingCooldown(context.Background(), roundID)
	require.NoError(t, err)
	assert.Equal(t, 18, remaining)
}
