package calendar

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

// MatchDuration is the length of a calendar entry for one match
const MatchDuration = 2 * time.Hour

// GenerateICS generates an iCalendar (.ics) file with one event per match of a round.
// Matches without a known kickoff are left out. pageURL, when set, is linked from every
// event; stamp becomes the DTSTAMP of all events.
func GenerateICS(r *model.Round, pageURL string, stamp time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Wurstliga//wurstliga//DE\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(fmt.Sprintf("Wurstliga %s - Spieltag %d", r.Season, r.Number))))

	for _, m := range r.Matches {
		if m.Kickoff == nil {
			continue
		}
		writeMatch(&ics, r, m, pageURL, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeMatch(ics *strings.Builder, r *model.Round, m model.Match, pageURL string, stamp time.Time) {
	start := *m.Kickoff
	end := start.Add(MatchDuration)

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@wurstliga\r\n", matchUID(r.Season, r.Number, m.RowIndex)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))

	summary := fmt.Sprintf("%s - %s", m.Home, m.Away)
	if m.Finished() {
		summary = fmt.Sprintf("%s (%s)", summary, m.Result)
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Spieltag %d, Saison %s", r.Number, r.Season)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if pageURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", pageURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// matchUID is stable across runs so calendar clients update events in place
func matchUID(season string, round, row int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%d|%d", season, round, row)))
	return hex.EncodeToString(sum[:])[:16]
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
