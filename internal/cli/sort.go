package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

// SortOrder represents the available sorting options for standings output
type SortOrder string

const (
	SortByRank SortOrder = "rank"
	SortByName SortOrder = "name"
	SortByRaw  SortOrder = "raw"
	SortByTop  SortOrder = "top"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByRank, SortByName, SortByRaw, SortByTop:
		return order, nil
	case "":
		return SortByRank, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be rank, name, raw or top)", s)
}

// rankedPlayer is a standings row with its place in the table
type rankedPlayer struct {
	model.PlayerTotals
	Rank int
}

// rankPlayers numbers standings rows; players level on league points and raw score
// share a place
func rankPlayers(players []model.PlayerTotals) []rankedPlayer {
	ranked := make([]rankedPlayer, 0, len(players))
	for i, p := range players {
		rank := i + 1
		if i > 0 {
			prev := ranked[i-1]
			if prev.LeaguePointsTotal == p.LeaguePointsTotal && prev.RawScoreTotal == p.RawScoreTotal {
				rank = prev.Rank
			}
		}
		ranked = append(ranked, rankedPlayer{PlayerTotals: p, Rank: rank})
	}
	return ranked
}

// sortPlayers reorders ranked rows for display. Rows keep their table rank.
func sortPlayers(players []rankedPlayer, order SortOrder) {
	switch order {
	case SortByName:
		slices.SortStableFunc(players, func(a, b rankedPlayer) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortByRaw:
		slices.SortStableFunc(players, func(a, b rankedPlayer) int {
			return cmp.Compare(b.RawScoreTotal, a.RawScoreTotal)
		})
	case SortByTop:
		slices.SortStableFunc(players, func(a, b rankedPlayer) int {
			return cmp.Compare(b.TopScorerTotal, a.TopScorerTotal)
		})
	default:
		slices.SortStableFunc(players, func(a, b rankedPlayer) int {
			return cmp.Compare(a.Rank, b.Rank)
		})
	}
}
