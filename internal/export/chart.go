package export

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart dimensions in pixels
const (
	ChartWidth  = 1024
	ChartHeight = 512
)

// WriteChart renders the league point totals of every player as a PNG bar chart, in
// standings order. ErrNoData is returned when there are no players or nobody has
// any points yet.
func WriteChart(w io.Writer, standings *model.Standings) error {
	if standings == nil || len(standings.Players) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(standings.Players))
	total := 0
	for _, p := range standings.Players {
		total += p.LeaguePointsTotal
		bars = append(bars, chart.Value{
			Label: p.Name,
			Value: float64(p.LeaguePointsTotal),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("b5541c"),
				StrokeColor: drawing.ColorFromHex("7a3712"),
				StrokeWidth: 1,
			},
		})
	}
	if total == 0 {
		return ErrNoData
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("Wurstliga %s", standings.Season),
		Width:  ChartWidth,
		Height: ChartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth: barWidth(len(bars)),
		XAxis:    chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxPoints(standings))},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func barWidth(n int) int {
	return max(8, min(60, (ChartWidth-100)/max(n, 1)-10))
}

func maxPoints(standings *model.Standings) int {
	best := 0
	for _, p := range standings.Players {
		best = max(best, p.LeaguePointsTotal)
	}
	return best
}
