package leaderboarddomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	alice = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	cara  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	dave  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func TestRankStandings_TimeAsc(t *testing.T) {
	scores := []BestScore{
		{UserID: cara, Score: 84100},
		{UserID: alice, Score: 82500},
		{UserID: dave, Score: 85750},
		{UserID: bob, Score: 83200},
	}

	got := RankStandings(scores, TimeAsc)

	want := []Standing{
		{UserID: alice, BestScore: 82500, Rank: 1},
		{UserID: bob, BestScore: 83200, Rank: 2},
		{UserID: cara, BestScore: 84100, Rank: 3},
		{UserID: dave, BestScore: 85750, Rank: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestRankStandings_TiesShareRankAndSkip(t *testing.T) {
	scores := []BestScore{
		{UserID: alice, Score: 100},
		{UserID: bob, Score: 100},
		{UserID: cara, Score: 90},
	}

	got := RankStandings(scores, ScoreDesc)

	// RANK() semantics: 1, 1, 3, not 1, 1, 2.
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 1, got[1].Rank)
	assert.Equal(t, 3, got[2].Rank)
}

func TestRankStandings_ScoreDesc(t *testing.T) {
	scores := []BestScore{
		{UserID: alice, Score: 40},
		{UserID: bob, Score: 75},
	}

	got := RankStandings(scores, ScoreDesc)

	assert.Equal(t, bob, got[0].UserID)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, alice, got[1].UserID)
	assert.Equal(t, 2, got[1].Rank)
}

func TestRankStandings_Empty(t *testing.T) {
	assert.Empty(t, RankStandings(nil, TimeAsc))
}

func TestComputeMVP(t *testing.T) {
	// Game 1: alice wins, bob second, cara third, dave fourth.
	// Game 2: bob wins, alice second.
	perGame := [][]Standing{
		{
			{UserID: alice, Rank: 1},
			{UserID: bob, Rank: 2},
			{UserID: cara, Rank: 3},
			{UserID: dave, Rank: 4},
		},
		{
			{UserID: bob, Rank: 1},
			{UserID: alice, Rank: 2},
		},
	}

	got := ComputeMVP(perGame)

	// alice: 10 + 5 = 15, bob: 5 + 10 = 15, cara: 3, dave: 1.
	// alice and bob tie on points and games won; order falls back to UUID.
	assert.Len(t, got, 4)
	assert.Equal(t, 15, got[0].MetaPoints)
	assert.Equal(t, 15, got[1].MetaPoints)
	assert.Equal(t, cara, got[2].UserID)
	assert.Equal(t, 3, got[2].MetaPoints)
	assert.Equal(t, dave, got[3].UserID)
	assert.Equal(t, 1, got[3].MetaPoints)

	for _, s := range got[:2] {
		assert.Equal(t, 1, s.GamesWon)
		assert.Equal(t, 2, s.TotalGames)
	}
}

func TestMetaPointsForRank(t *testing.T) {
	tests := []struct {
		rank int
		want int
	}{
		{1, 10},
		{2, 5},
		{3, 3},
		{4, 1},
		{17, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MetaPointsForRank(tt.rank), "rank %d", tt.rank)
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{82500, "1:22.500"},
		{59999, "59.999"},
		{60000, "1:00.000"},
		{5042, "5.042"},
		{0, "0.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLapTime(tt.ms), "ms %d", tt.ms)
	}
}
