// Package standings folds the rounds of a season into the cumulative Wurstliga table.
package standings

import (
	"cmp"
	"slices"
	"time"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

// Counts reports whether a round contributes to the standings. Rounds that have not
// started and rounds where every player scored 0 are left out.
func Counts(r *model.Round) bool {
	if r == nil || r.Status == model.StatusNotStarted {
		return false
	}
	return !r.AllRawScoresZero()
}

// Aggregate recomputes the standings of season from rounds. Players are ordered by
// league points, then raw score, both descending, then by name.
func Aggregate(season string, rounds []*model.Round, now time.Time) *model.Standings {
	totals := make(map[string]*model.PlayerTotals)
	counted := make([]int, 0)

	for _, r := range rounds {
		if !Counts(r) {
			continue
		}
		counted = append(counted, r.Number)

		for _, p := range r.Players {
			t, ok := totals[p.Name]
			if !ok {
				t = &model.PlayerTotals{Name: p.Name}
				totals[p.Name] = t
			}
			t.LeaguePointsTotal += p.LeaguePoints
			t.RawScoreTotal += p.RawScore
			t.TopScorerTotal += p.TopScorer.Int()
			t.ZeroLeaguePointsTotal += p.ZeroLeaguePoints.Int()
			t.ZeroRawTotal += p.ZeroRaw.Int()
		}
	}

	players := make([]model.PlayerTotals, 0, len(totals))
	for _, t := range totals {
		players = append(players, *t)
	}
	slices.SortFunc(players, Compare)
	slices.Sort(counted)

	return &model.Standings{
		Season:        season,
		RoundsCounted: counted,
		GeneratedAt:   now,
		Players:       players,
	}
}

// Compare orders two standings rows: league points desc, raw score desc, name asc
func Compare(a, b model.PlayerTotals) int {
	if c := cmp.Compare(b.LeaguePointsTotal, a.LeaguePointsTotal); c != 0 {
		return c
	}
	if c := cmp.Compare(b.RawScoreTotal, a.RawScoreTotal); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}
