package model

import (
	"time"
)

// Status is the completion state of a round
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Match is one fixture row of a round
type Match struct {
	RowIndex int        `json:"row_index"`
	Kickoff  *time.Time `json:"datetime_local"`
	Home     string     `json:"home"`
	Away     string     `json:"away"`
	Result   string     `json:"result"` // "" or "a:b"
}

// Finished reports whether the match carries a final score
func (m Match) Finished() bool {
	return m.Result != ""
}

// RawPlayer is a player row as read from the standings page
type RawPlayer struct {
	Name     string `json:"name"`
	RawScore int    `json:"raw_score"`
}

// ScoredPlayer is a RawPlayer with the values derived by the scoring engine
type ScoredPlayer struct {
	RawPlayer
	DenseRank        int  `json:"dense_rank"`
	LeaguePoints     int  `json:"league_points"`
	TopScorer        Flag `json:"top_scorer"`
	ZeroRaw          Flag `json:"zero_raw"`
	ZeroLeaguePoints Flag `json:"zero_league_points"`
}

// Round is the persisted document for a single round
type Round struct {
	Season  string         `json:"season"`
	Number  int            `json:"round"`
	Status  Status         `json:"status"`
	Matches []Match        `json:"matches"`
	Players []ScoredPlayer `json:"players"`
}

// CompletedMatches counts matches with a final score
func (r *Round) CompletedMatches() int {
	n := 0
	for _, m := range r.Matches {
		if m.Finished() {
			n++
		}
	}
	return n
}

// AllRawScoresZero reports whether the round has players and every one of them scored 0
func (r *Round) AllRawScoresZero() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if p.RawScore != 0 {
			return false
		}
	}
	return true
}

// PlayerTotals holds a player's cumulative values over all counted rounds
type PlayerTotals struct {
	Name                  string `json:"name"`
	LeaguePointsTotal     int    `json:"league_points_total"`
	RawScoreTotal         int    `json:"raw_score_total"`
	TopScorerTotal        int    `json:"top_scorer_total"`
	ZeroLeaguePointsTotal int    `json:"zero_league_points_total"`
	ZeroRawTotal          int    `json:"zero_raw_total"`
}

// Standings is the season-wide ranked table
type Standings struct {
	Season        string         `json:"season"`
	RoundsCounted []int          `json:"rounds_counted"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Players       []PlayerTotals `json:"players"`
}
