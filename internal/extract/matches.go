package extract

import (
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/wurstliga/internal/model"
)

// Header labels of the kicktipp fixtures table
const (
	HeaderKickoff = "Termin"
	HeaderHome    = "Heim"
	HeaderAway    = "Gast"
	HeaderResult  = "Ergebnis"
)

// KickoffLayout is the date format of the kickoff column, e.g. "22.08.25 20:30"
const KickoffLayout = "02.01.06 15:04"

var (
	kickoffPattern = regexp.MustCompile(`(\d{2}\.\d{2}\.\d{2})\s+(\d{2}:\d{2})`)
	resultPattern  = regexp.MustCompile(`^\s*(\d+)\s*:\s*(\d+)\s*$`)
)

// MatchTable locates the fixtures table
var MatchTable = HasAllHeaders(HeaderKickoff, HeaderHome, HeaderAway, HeaderResult)

// Matches extracts the fixtures of a round. The second return value is the number of
// data rows in the fixtures table, including rows too short to parse, and is 0 when
// the page has no fixtures table.
func Matches(doc *goquery.Document, loc *time.Location) ([]model.Match, int) {
	matches := make([]model.Match, 0)

	table, ok := FindTable(doc.Selection, MatchTable)
	if !ok {
		return matches, 0
	}

	for i, cells := range table.Rows {
		if len(cells) < 4 {
			continue
		}

		matches = append(matches, model.Match{
			RowIndex: i + 1,
			Kickoff:  ParseKickoff(cells[0], loc),
			Home:     cells[1],
			Away:     cells[2],
			Result:   NormalizeResult(cells[3]),
		})
	}

	return matches, len(table.Rows)
}

// ParseKickoff finds a "dd.mm.yy hh:mm" timestamp in text and returns it in loc.
// It returns nil when there is none or it is not a valid date.
func ParseKickoff(text string, loc *time.Location) *time.Time {
	m := kickoffPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	t, err := time.ParseInLocation(KickoffLayout, m[1]+" "+m[2], loc)
	if err != nil {
		return nil
	}
	return &t
}

// NormalizeResult returns "a:b" for final scores and "" for anything else
// (pending "-:-", postponed markers, half-time annotations).
func NormalizeResult(text string) string {
	m := resultPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + ":" + m[2]
}
