package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
)

// ExportResults builds an xlsx workbook with one sheet per game's standings
// plus an MVP summary sheet. Used by the admin at the end of the party.
func (s *LeaderboardService) ExportResults(ctx context.Context) ([]byte, error) {
	games, err := s.LeaderboardDB.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	mvpSheet := "MVP"
	if err := f.SetSheetName("Sheet1", mvpSheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	standings, err := s.ComputePartyMVP(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeHeader(f, mvpSheet, []string{"Rank", "User", "Meta Points", "Games Won", "Games Entered"}); err != nil {
		return nil, err
	}
	for i, st := range standings {
		row := i + 2
		cells := []any{i + 1, st.UserID.String(), st.MetaPoints, st.GamesWon, st.TotalGames}
		if err := writeRow(f, mvpSheet, row, cells); err != nil {
			return nil, err
		}
	}

	for i := range games {
		game := &games[i]
		if game.Type == leaderboarddb.GameTypeImposter {
			continue
		}

		sheet := sheetName(game.Title, i)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		scores, err := s.bestScores(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to load scores for game %s: %w", game.ID, err)
		}
		gameStandings := leaderboarddomain.RankStandings(scores, game.ScoringDirection)

		if err := writeHeader(f, sheet, []string{"Rank", "User", "Best Score", "Display"}); err != nil {
			return nil, err
		}
		for j, st := range gameStandings {
			display := fmt.Sprintf("%d", st.BestScore)
			if game.ScoringDirection == leaderboarddomain.TimeAsc {
				display = leaderboarddomain.FormatLapTime(st.BestScore)
			}
			if err := writeRow(f, sheet, j+2, []any{st.Rank, st.UserID.String(), st.BestScore, display}); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
	}
	return nil
}

// sheetName keeps titles within excelize's 31-character sheet name limit and
// unique across games.
func sheetName(title string, index int) string {
	if len(title) > 25 {
		title = title[:25]
	}
	return fmt.Sprintf("%s #%d", title, index+1)
}
