// Package scoring derives Wurstliga league points from kicktipp raw scores.
package scoring

import (
	"slices"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

// DenseRanks maps every distinct raw score to its dense rank: the highest score is
// rank 1 and tied scores share a rank without consuming the next one.
func DenseRanks(players []model.RawPlayer) map[int]int {
	distinct := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if !seen[p.RawScore] {
			seen[p.RawScore] = true
			distinct = append(distinct, p.RawScore)
		}
	}

	slices.Sort(distinct)
	slices.Reverse(distinct)

	ranks := make(map[int]int, len(distinct))
	for i, score := range distinct {
		ranks[score] = i + 1
	}
	return ranks
}

// LadderPoints returns the league points for a dense rank. Ranks beyond the ladder
// (and invalid ranks) earn 0.
func LadderPoints(ladder []int, rank int) int {
	if rank < 1 || rank > len(ladder) {
		return 0
	}
	return ladder[rank-1]
}

// Score ranks the players of a round and derives their league points and flags.
// The result has the same order as players; players itself is not modified.
func Score(players []model.RawPlayer, ladder []int) []model.ScoredPlayer {
	ranks := DenseRanks(players)

	scored := make([]model.ScoredPlayer, 0, len(players))
	for _, p := range players {
		rank := ranks[p.RawScore]
		points := LadderPoints(ladder, rank)

		scored = append(scored, model.ScoredPlayer{
			RawPlayer:        p,
			DenseRank:        rank,
			LeaguePoints:     points,
			TopScorer:        rank == 1,
			ZeroRaw:          p.RawScore == 0,
			ZeroLeaguePoints: points == 0,
		})
	}

	return scored
}
