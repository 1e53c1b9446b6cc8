package leaderboarddomain

import (
	"sort"

	"github.com/google/uuid"
)

// ScoringDirection declares which way a game's raw scores are ordered.
type ScoringDirection string

const (
	// TimeAsc ranks lower scores first (lap times).
	TimeAsc ScoringDirection = "TIME_ASC"
	// ScoreDesc ranks higher scores first (point totals).
	ScoreDesc ScoringDirection = "SCORE_DESC"
)

// BestScore is one user's single best raw score within a game.
type BestScore struct {
	UserID uuid.UUID
	Score  int64
}

// Standing is a ranked leaderboard row.
type Standing struct {
	UserID    uuid.UUID `json:"user_id"`
	BestScore int64     `json:"best_score"`
	Rank      int       `json:"rank"`
}

// RankStandings assigns competition ranks (RANK() semantics: ties share a
// rank, the next distinct score skips past the tied group) ordered by the
// scoring direction.
func RankStandings(scores []BestScore, direction ScoringDirection) []Standing {
	sorted := make([]BestScore, len(scores))
	copy(sorted, scores)

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == TimeAsc {
			return sorted[i].Score < sorted[j].Score
		}
		return sorted[i].Score > sorted[j].Score
	})

	standings := make([]Standing, 0, len(sorted))
	for i, s := range sorted {
		rank := i + 1
		if i > 0 && s.Score == sorted[i-1].Score {
			rank = standings[i-1].Rank
		}
		standings = append(standings, Standing{
			UserID:    s.UserID,
			BestScore: s.Score,
			Rank:      rank,
		})
	}
	return standings
}
