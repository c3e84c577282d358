package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/wurstliga/internal/logger"
	"github.com/pfrederiksen/wurstliga/internal/model"
)

// Header labels of the kicktipp player table
const (
	HeaderName   = "Name"
	HeaderPoints = "P"
)

// PlayerTable locates the player scoring table
var PlayerTable = HeaderTextContains(HeaderName, HeaderPoints)

var (
	// kicktipp tables usually start with "Pos | +/- | Name"
	nameColumn = []ColumnResolver{ExactHeader(HeaderName), Positional(2, 0)}
	// per-match columns come before the round total, which usually sits before "S" and "G"
	pointsColumn = []ColumnResolver{LastExactHeader(HeaderPoints), FromEnd(3)}
)

// Players extracts the raw player scores of a round. Rows without a name or with too
// few cells are skipped, and a repeated name keeps its first row.
func Players(doc *goquery.Document) []model.RawPlayer {
	players := make([]model.RawPlayer, 0)

	table, ok := FindTable(doc.Selection, PlayerTable)
	if !ok {
		return players
	}

	nameIdx := ResolveColumn(table.Headers, nameColumn...)
	pointsIdx := ResolveColumn(table.Headers, pointsColumn...)

	seen := make(map[string]bool)
	for _, cells := range table.Rows {
		if len(cells) <= max(nameIdx, pointsIdx) {
			continue
		}

		name := strings.TrimSpace(cells[nameIdx])
		if name == "" {
			continue
		}
		if seen[name] {
			logger.Warn("duplicate player row dropped", logger.Fields{"name": name})
			continue
		}
		seen[name] = true

		players = append(players, model.RawPlayer{
			Name:     name,
			RawScore: ParseScore(cells[pointsIdx]),
		})
	}

	return players
}

// ParseScore converts a points cell to a non-negative integer, using 0 for blanks,
// placeholders and anything else that is not a whole number.
func ParseScore(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
