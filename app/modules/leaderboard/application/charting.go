package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
)

// RenderMVPChart produces a PNG bar chart of the current MVP standings for
// the party TV screen.
func (s *LeaderboardService) RenderMVPChart(ctx context.Context, names func(leaderboarddomain.MVPStanding) string) ([]byte, error) {
	standings, err := s.ComputePartyMVP(ctx)
	if err != nil {
		return nil, err
	}
	if len(standings) == 0 {
		return renderNoDataPlaceholder()
	}

	// go-chart bar charts get cramped past a dozen bars; the TV only shows
	// the top ten anyway.
	if len(standings) > 10 {
		standings = standings[:10]
	}

	bars := make([]chart.Value, 0, len(standings))
	for _, st := range standings {
		label := st.UserID.String()[:8]
		if names != nil {
			label = names(st)
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(st.MetaPoints),
		})
	}

	graph := chart.BarChart{
		Title:    "Party MVP",
		Width:    800,
		Height:   400,
		BarWidth: 48,
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render MVP chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	graph := chart.BarChart{
		Title:    "Party MVP (no scores yet)",
		Width:    800,
		Height:   400,
		BarWidth: 48,
		Bars:     []chart.Value{{Label: "", Value: 0.0001}},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}
