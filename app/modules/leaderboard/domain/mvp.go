package leaderboarddomain

import (
	"sort"

	"github.com/google/uuid"
)

// Meta point awards per game placement. Any participant outside the podium
// still earns the participation floor.
const (
	metaPointsFirst  = 10
	metaPointsSecond = 5
	metaPointsThird  = 3
	metaPointsFloor  = 1
)

// MVPStanding is one user's cross-game composite score.
type MVPStanding struct {
	UserID     uuid.UUID `json:"user_id"`
	MetaPoints int       `json:"meta_points"`
	GamesWon   int       `json:"games_won"`
	TotalGames int       `json:"total_games"`
}

// MetaPointsForRank converts a single game placement into bounded meta points.
func MetaPointsForRank(rank int) int {
	switch rank {
	case 1:
		return metaPointsFirst
	case 2:
		return metaPointsSecond
	case 3:
		return metaPointsThird
	default:
		return metaPointsFloor
	}
}

// ComputeMVP folds per-game standings into a single party-wide ranking.
// Ordering: meta points descending, games won as the tiebreak.
func ComputeMVP(perGameStandings [][]Standing) []MVPStanding {
	byUser := make(map[uuid.UUID]*MVPStanding)

	for _, standings := range perGameStandings {
		for _, s := range standings {
			agg, ok := byUser[s.UserID]
			if !ok {
				agg = &MVPStanding{UserID: s.UserID}
				byUser[s.UserID] = agg
			}
			agg.MetaPoints += MetaPointsForRank(s.Rank)
			agg.TotalGames++
			if s.Rank == 1 {
				agg.GamesWon++
			}
		}
	}

	result := make([]MVPStanding, 0, len(byUser))
	for _, agg := range byUser {
		result = append(result, *agg)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].MetaPoints != result[j].MetaPoints {
			return result[i].MetaPoints > result[j].MetaPoints
		}
		if result[i].GamesWon != result[j].GamesWon {
			return result[i].GamesWon > result[j].GamesWon
		}
		// Stable order for equal records so repeated reads agree.
		return result[i].UserID.String() < result[j].UserID.String()
	})

	return result
}
