package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// textWriter is implemented by every printable command result
type textWriter interface {
	writeText(w io.Writer, verbose bool) error
}

// StandingsResult is the output of the standings command. Its JSON form is the plain
// standings document.
type StandingsResult struct {
	*model.Standings
	Sort SortOrder `json:"-"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result textWriter, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return result.writeText(w, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func (r *RunResult) writeText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Season %s\n", r.Season)

	if len(r.Rounds) == 0 {
		fmt.Fprintln(w, "No rounds fetched.")
	}
	for _, rd := range r.Rounds {
		fmt.Fprintf(w, "Round %2d: %-11s (%d/%d matches, %d players)\n",
			rd.Round, rd.Status, rd.Completed, rd.Matches, rd.Players)
	}

	if len(r.Changes) > 0 {
		fmt.Fprintln(w, "\nStatus changes:")
		for _, c := range r.Changes {
			from := string(c.From)
			if from == "" {
				from = "new"
			}
			fmt.Fprintf(w, "  Round %d: %s -> %s\n", c.Round, from, c.To)
		}
	}

	fmt.Fprintf(w, "\nchanged=%t\n\n", r.Changed)

	return writeStandingsText(w, r.Standings, SortByRank, verbose)
}

func (s *StandingsResult) writeText(w io.Writer, verbose bool) error {
	return writeStandingsText(w, s.Standings, s.Sort, verbose)
}

func writeStandingsText(w io.Writer, st *model.Standings, order SortOrder, verbose bool) error {
	if st == nil || len(st.Players) == 0 {
		fmt.Fprintln(w, "No standings yet.")
		return nil
	}

	rounds := make([]string, 0, len(st.RoundsCounted))
	for _, n := range st.RoundsCounted {
		rounds = append(rounds, strconv.Itoa(n))
	}
	fmt.Fprintf(w, "Wurstliga %s, %d rounds counted (%s)\n", st.Season, len(st.RoundsCounted), strings.Join(rounds, ", "))
	if verbose {
		fmt.Fprintf(w, "Generated at %s\n", st.GeneratedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(w)

	players := rankPlayers(st.Players)
	sortPlayers(players, order)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tName\tPunkte\tTipp\tSieger\t0 WL\t0 Tipp\t")
	for _, p := range players {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t\n",
			p.Rank, p.Name, p.LeaguePointsTotal, p.RawScoreTotal,
			p.TopScorerTotal, p.ZeroLeaguePointsTotal, p.ZeroRawTotal)
	}
	return tw.Flush()
}
