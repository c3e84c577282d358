package standings

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/wurstliga/internal/model"
)

var now = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type scored struct {
	name   string
	raw    int
	points int
}

func makeRound(number int, status model.Status, rows ...scored) *model.Round {
	r := &model.Round{Season: "2025-26", Number: number, Status: status, Matches: []model.Match{}}
	for _, row := range rows {
		r.Players = append(r.Players, model.ScoredPlayer{
			RawPlayer:        model.RawPlayer{Name: row.name, RawScore: row.raw},
			LeaguePoints:     row.points,
			TopScorer:        row.points == 10,
			ZeroRaw:          row.raw == 0,
			ZeroLeaguePoints: row.points == 0,
		})
	}
	return r
}

func TestAggregate_Accumulates(t *testing.T) {
	rounds := []*model.Round{
		makeRound(3, model.StatusComplete, scored{"X", 9, 6}, scored{"Y", 4, 10}),
		makeRound(1, model.StatusComplete, scored{"X", 14, 10}, scored{"Y", 2, 8}),
		makeRound(2, model.StatusComplete, scored{"X", 0, 0}, scored{"Y", 7, 10}),
	}

	got := Aggregate("2025-26", rounds, now)

	want := &model.Standings{
		Season:        "2025-26",
		RoundsCounted: []int{1, 2, 3},
		GeneratedAt:   now,
		Players: []model.PlayerTotals{
			{Name: "Y", LeaguePointsTotal: 28, RawScoreTotal: 13, TopScorerTotal: 2},
			{Name: "X", LeaguePointsTotal: 16, RawScoreTotal: 23, TopScorerTotal: 1, ZeroLeaguePointsTotal: 1, ZeroRawTotal: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_SkipsRounds(t *testing.T) {
	rounds := []*model.Round{
		makeRound(1, model.StatusComplete, scored{"X", 5, 10}),
		makeRound(2, model.StatusNotStarted, scored{"X", 5, 10}),
		makeRound(3, model.StatusInProgress, scored{"X", 0, 10}, scored{"Y", 0, 10}),
		makeRound(4, model.StatusInProgress, scored{"X", 2, 8}),
		makeRound(5, model.StatusComplete),
		nil,
	}

	got := Aggregate("2025-26", rounds, now)

	if diff := cmp.Diff([]int{1, 4, 5}, got.RoundsCounted); diff != "" {
		t.Errorf("RoundsCounted mismatch (-want +got):\n%s", diff)
	}
	if len(got.Players) != 1 || got.Players[0].LeaguePointsTotal != 18 {
		t.Errorf("Players = %+v, want only X with 18 points", got.Players)
	}
}

func TestAggregate_AbsentPlayer(t *testing.T) {
	rounds := []*model.Round{
		makeRound(1, model.StatusComplete, scored{"P", 8, 10}, scored{"Q", 3, 8}),
		makeRound(2, model.StatusComplete, scored{"Q", 6, 10}),
		makeRound(3, model.StatusComplete, scored{"P", 2, 6}, scored{"Q", 5, 10}),
	}

	got := Aggregate("2025-26", rounds, now)

	totals := make(map[string]int)
	for _, p := range got.Players {
		totals[p.Name] = p.LeaguePointsTotal
	}
	if totals["P"] != 16 {
		t.Errorf("P league points = %d, want 16", totals["P"])
	}
	if totals["Q"] != 28 {
		t.Errorf("Q league points = %d, want 28", totals["Q"])
	}
}

func TestAggregate_Ordering(t *testing.T) {
	rounds := []*model.Round{
		makeRound(1, model.StatusComplete,
			scored{"C", 99, 10},
			scored{"A", 30, 16},
			scored{"B", 40, 16},
			scored{"E", 20, 5},
			scored{"D", 20, 5},
		),
	}

	got := Aggregate("2025-26", rounds, now)

	var names []string
	for _, p := range got.Players {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"B", "A", "C", "D", "E"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate("2025-26", nil, now)

	if got.RoundsCounted == nil || len(got.RoundsCounted) != 0 {
		t.Errorf("RoundsCounted = %v, want empty non-nil", got.RoundsCounted)
	}
	if got.Players == nil || len(got.Players) != 0 {
		t.Errorf("Players = %v, want empty non-nil", got.Players)
	}
	if got.Season != "2025-26" {
		t.Errorf("Season = %v, want 2025-26", got.Season)
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name  string
		round *model.Round
		want  bool
	}{
		{"nil", nil, false},
		{"not started", makeRound(1, model.StatusNotStarted, scored{"X", 3, 10}), false},
		{"all zero", makeRound(1, model.StatusComplete, scored{"X", 0, 10}), false},
		{"no players", makeRound(1, model.StatusComplete), true},
		{"in progress", makeRound(1, model.StatusInProgress, scored{"X", 1, 10}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Counts(tt.round); got != tt.want {
				t.Errorf("Counts() = %v, want %v", got, tt.want)
			}
		})
	}
}
