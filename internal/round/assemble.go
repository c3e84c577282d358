package round

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/wurstliga/internal/config"
	"github.com/pfrederiksen/wurstliga/internal/extract"
	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/pfrederiksen/wurstliga/internal/scoring"
)

// Assemble builds round number of cfg.Season from a parsed page. A page without the
// expected tables yields an empty round with status not_started.
func Assemble(doc *goquery.Document, number int, cfg config.Config) *model.Round {
	matches, slots := extract.Matches(doc, cfg.Location())
	players := extract.Players(doc)

	return &model.Round{
		Season:  cfg.Season,
		Number:  number,
		Status:  DeriveStatus(matches, slots, players, cfg.MatchesPerRound),
		Matches: matches,
		Players: scoring.Score(players, cfg.Ladder),
	}
}

// Parse reads an HTML page and assembles it. The only error is a failure to read the
// document.
func Parse(r io.Reader, number int, cfg config.Config) (*model.Round, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing round %d HTML: %w", number, err)
	}
	return Assemble(doc, number, cfg), nil
}
