package model

import (
	"sort"
	"time"
)

// RoundSummary is the per-round entry of a Metadata document
type RoundSummary struct {
	Status  Status `json:"status"`
	Players int    `json:"players"`
}

// Metadata summarises every stored round of a season
type Metadata struct {
	Season    string               `json:"season"`
	Rounds    map[int]RoundSummary `json:"rounds"` // keyed by round number
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewMetadata creates an empty metadata document
func NewMetadata(season string) *Metadata {
	return &Metadata{
		Season: season,
		Rounds: make(map[int]RoundSummary),
	}
}

// BuildMetadata creates a metadata document from a list of rounds
func BuildMetadata(season string, rounds []*Round, updatedAt time.Time) *Metadata {
	meta := NewMetadata(season)
	meta.UpdatedAt = updatedAt

	for _, r := range rounds {
		meta.Rounds[r.Number] = RoundSummary{
			Status:  r.Status,
			Players: len(r.Players),
		}
	}

	return meta
}

// StatusChange records a round whose status differs from the previous run.
// From is empty for rounds that were not stored before.
type StatusChange struct {
	Round int    `json:"round"`
	From  Status `json:"from,omitempty"`
	To    Status `json:"to"`
}

// DiffMetadata compares the current metadata against the previous one and returns
// rounds that are new or changed status. Rounds missing from next are ignored.
func DiffMetadata(previous, next *Metadata) []StatusChange {
	changes := make([]StatusChange, 0)

	if next == nil {
		return changes
	}
	if previous == nil {
		previous = NewMetadata(next.Season)
	}

	for number, summary := range next.Rounds {
		prev, exists := previous.Rounds[number]
		if exists && prev.Status == summary.Status {
			continue
		}
		change := StatusChange{Round: number, To: summary.Status}
		if exists {
			change.From = prev.Status
		}
		changes = append(changes, change)
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Round < changes[j].Round
	})

	return changes
}

// Merge returns a copy of previous with the entries of next laid over it.
// Rounds that were scraped in an earlier run but not in this one keep their summary.
func Merge(previous, next *Metadata) *Metadata {
	merged := NewMetadata(next.Season)
	merged.UpdatedAt = next.UpdatedAt

	if previous != nil && previous.Season == next.Season {
		for number, summary := range previous.Rounds {
			merged.Rounds[number] = summary
		}
	}
	for number, summary := range next.Rounds {
		merged.Rounds[number] = summary
	}

	return merged
}
