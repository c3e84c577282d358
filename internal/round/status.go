package round

import "github.com/pfrederiksen/wurstliga/internal/model"

// ExpectedMatches returns the number of matches a round should have: the number of
// fixture slots on the page, else the number of parsed matches, else fallback.
func ExpectedMatches(slots, parsed, fallback int) int {
	switch {
	case slots > 0:
		return slots
	case parsed > 0:
		return parsed
	default:
		return fallback
	}
}

// ResolveStatus classifies a round by its finished matches. A round whose players all
// scored 0 while no match is finished is not_started; that override never promotes a
// round.
func ResolveStatus(completed, expected int, players []model.RawPlayer) model.Status {
	var status model.Status
	switch {
	case completed <= 0:
		status = model.StatusNotStarted
	case completed < expected:
		status = model.StatusInProgress
	default:
		status = model.StatusComplete
	}

	if completed == 0 && allZero(players) {
		return model.StatusNotStarted
	}
	return status
}

// DeriveStatus resolves the status of extracted matches and players
func DeriveStatus(matches []model.Match, slots int, players []model.RawPlayer, matchesPerRound int) model.Status {
	completed := 0
	for _, m := range matches {
		if m.Finished() {
			completed++
		}
	}

	expected := ExpectedMatches(slots, len(matches), matchesPerRound)
	return ResolveStatus(completed, expected, players)
}

func allZero(players []model.RawPlayer) bool {
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if p.RawScore != 0 {
			return false
		}
	}
	return true
}
