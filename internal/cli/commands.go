package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pfrederiksen/wurstliga/internal/calendar"
	"github.com/pfrederiksen/wurstliga/internal/export"
	"github.com/pfrederiksen/wurstliga/internal/logger"
	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/pfrederiksen/wurstliga/internal/scraper"
	"github.com/pfrederiksen/wurstliga/internal/standings"
	"github.com/pfrederiksen/wurstliga/internal/storage"
	"github.com/spf13/cobra"
)

func newScrapeCmd(opts *rootOptions) *cobra.Command {
	var rounds []int

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch round overviews from kicktipp and update the standings",
		Long: `Fetches the "Tippübersicht" of every round of the season (or only the rounds
given with --round), stores the assembled rounds, reports status changes since the
previous run and recomputes the standings.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().IntSliceVar(&rounds, "round", nil, "Round(s) to fetch instead of discovering all rounds")

	cmd.RunE = withApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		client := scraper.New(a.cfg, scraper.WithLogger(a.log), scraper.WithMetrics(a.metrics))
		return runScrape(ctx, cmd, a, client, rounds)
	})

	return cmd
}

func runScrape(ctx context.Context, cmd *cobra.Command, a *app, client *scraper.Client, rounds []int) error {
	if len(rounds) == 0 {
		discovered, err := client.DiscoverRounds(ctx)
		if err != nil {
			return err
		}
		rounds = discovered
	}
	a.log.Debug("rounds to fetch", logger.Fields{"rounds": rounds})

	stored := make([]*model.Round, 0, len(rounds))
	for _, n := range rounds {
		if n <= 0 {
			return fmt.Errorf("invalid round %d", n)
		}

		page, err := client.FetchRound(ctx, n)
		if err != nil {
			return err
		}

		r, err := a.storeRound(ctx, bytes.NewReader(page), n)
		if err != nil {
			return err
		}
		stored = append(stored, r)
	}

	result, err := a.finishRun(ctx, stored)
	if err != nil {
		return err
	}
	return WriteOutput(cmd.OutOrStdout(), result, a.format, a.verbose)
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a saved round overview page",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().IntVar(&number, "round", 0, "Round number of the page (required)")
	cmd.MarkFlagRequired("round") // nolint:errcheck

	cmd.RunE = withApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		if number <= 0 {
			return fmt.Errorf("--round must be positive, got %d", number)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening page: %w", err)
		}
		defer f.Close() // nolint:errcheck

		r, err := a.storeRound(ctx, f, number)
		if err != nil {
			return err
		}

		result, err := a.finishRun(ctx, []*model.Round{r})
		if err != nil {
			return err
		}
		return WriteOutput(cmd.OutOrStdout(), result, a.format, a.verbose)
	})

	return cmd
}

func newStandingsCmd(opts *rootOptions) *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Recompute and print the season standings",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&sortFlag, "sort", string(SortByRank), "Sort order for text output: rank, name, raw or top")

	cmd.RunE = withApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		order, err := ParseSortOrder(sortFlag)
		if err != nil {
			return err
		}

		table, err := a.recomputeStandings(ctx)
		if err != nil {
			return err
		}

		return WriteOutput(cmd.OutOrStdout(), &StandingsResult{Standings: table, Sort: order}, a.format, a.verbose)
	})

	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var xlsxPath, chartPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the standings as an Excel workbook and/or a PNG chart",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the standings workbook to this path")
	cmd.Flags().StringVar(&chartPath, "chart", "", "Write the league points chart to this path")

	cmd.RunE = withApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		if xlsxPath == "" && chartPath == "" {
			return fmt.Errorf("nothing to export: use --xlsx and/or --chart")
		}

		rounds, err := a.store.LoadRounds(ctx, a.cfg.Season)
		if err != nil {
			return fmt.Errorf("loading rounds: %w", err)
		}
		table := standings.Aggregate(a.cfg.Season, rounds, a.now())

		if xlsxPath != "" {
			var buf bytes.Buffer
			if err := export.WriteXLSX(&buf, table, rounds); err != nil {
				return err
			}
			if err := os.WriteFile(xlsxPath, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("writing workbook: %w", err)
			}
			a.log.Info("workbook written", logger.Fields{"path": xlsxPath, "players": len(table.Players)})
		}

		if chartPath != "" {
			var buf bytes.Buffer
			err := export.WriteChart(&buf, table)
			switch {
			case errors.Is(err, export.ErrNoData):
				a.log.Warn("no league points yet, chart skipped", logger.Fields{"path": chartPath})
			case err != nil:
				return err
			default:
				if err := os.WriteFile(chartPath, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("writing chart: %w", err)
				}
				a.log.Info("chart written", logger.Fields{"path": chartPath})
			}
		}

		return nil
	})

	return cmd
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var number int
	var out string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export the fixtures of a stored round as iCalendar",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&number, "round", 0, "Round number (required)")
	cmd.Flags().StringVar(&out, "out", "", "Write the .ics file to this path instead of stdout")
	cmd.MarkFlagRequired("round") // nolint:errcheck

	cmd.RunE = withApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		r, err := findRound(ctx, a.store, a.cfg.Season, number)
		if err != nil {
			return err
		}

		ics := calendar.GenerateICS(r, scraper.New(a.cfg).RoundURL(number), a.now())

		if out == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
			return err
		}
		if err := os.WriteFile(out, []byte(ics), 0644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		a.log.Info("calendar written", logger.Fields{"path": out, "round": number})
		return nil
	})

	return cmd
}

func findRound(ctx context.Context, store storage.Store, season string, number int) (*model.Round, error) {
	rounds, err := store.LoadRounds(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("loading rounds: %w", err)
	}
	for _, r := range rounds {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, fmt.Errorf("round %d of season %s: %w", number, season, storage.ErrNotFound)
}
