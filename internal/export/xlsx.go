package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrNoData is returned when there is nothing to export
var ErrNoData = errors.New("no data to export")

// Sheet names of the exported workbook
const (
	SheetStandings = "Standings"
	SheetRounds    = "Rounds"
)

var standingsHeader = []any{"Platz", "Name", "Wurstliga-Punkte", "Tipp-Punkte", "Tagessieger", "Nuller Wurstliga", "Nuller Tipp"}

// WriteXLSX writes a workbook with the standings table and, on a second sheet, the
// league points every player earned in each counted round.
func WriteXLSX(w io.Writer, standings *model.Standings, rounds []*model.Round) error {
	f := excelize.NewFile()
	defer f.Close() // nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetStandings); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeStandingsSheet(f, standings); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetRounds); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeRoundsSheet(f, standings, rounds); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeStandingsSheet(f *excelize.File, standings *model.Standings) error {
	if err := setRow(f, SheetStandings, 1, standingsHeader); err != nil {
		return err
	}

	rank := 0
	for i, p := range standings.Players {
		// players level on both totals share a place
		if i == 0 || standings.Players[i-1].LeaguePointsTotal != p.LeaguePointsTotal ||
			standings.Players[i-1].RawScoreTotal != p.RawScoreTotal {
			rank = i + 1
		}

		row := []any{rank, p.Name, p.LeaguePointsTotal, p.RawScoreTotal, p.TopScorerTotal, p.ZeroLeaguePointsTotal, p.ZeroRawTotal}
		if err := setRow(f, SheetStandings, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetStandings, "B", "B", 24); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	return boldHeader(f, SheetStandings, len(standingsHeader))
}

func writeRoundsSheet(f *excelize.File, standings *model.Standings, rounds []*model.Round) error {
	counted := make(map[int]*model.Round)
	for _, r := range rounds {
		if r != nil {
			counted[r.Number] = r
		}
	}

	header := []any{"Name"}
	for _, n := range standings.RoundsCounted {
		header = append(header, fmt.Sprintf("ST %d", n))
	}
	if err := setRow(f, SheetRounds, 1, header); err != nil {
		return err
	}

	for i, p := range standings.Players {
		row := []any{p.Name}
		for _, n := range standings.RoundsCounted {
			row = append(row, roundPoints(counted[n], p.Name))
		}
		if err := setRow(f, SheetRounds, i+2, row); err != nil {
			return err
		}
	}

	return boldHeader(f, SheetRounds, len(header))
}

// roundPoints returns the league points of name in r, or nil when the player did not
// take part
func roundPoints(r *model.Round, name string) any {
	if r == nil {
		return nil
	}
	for _, p := range r.Players {
		if p.Name == name {
			return p.LeaguePoints
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func boldHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(columns, 1), 1)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return nil
}
