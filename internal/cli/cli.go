package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/wurstliga/internal/config"
	"github.com/pfrederiksen/wurstliga/internal/logger"
	"github.com/pfrederiksen/wurstliga/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// rootOptions holds the persistent flags shared by all commands
type rootOptions struct {
	configFile string
	dataDir    string
	season     string
	format     string
	verbose    bool
}

// app is the per-invocation environment of a command
type app struct {
	cfg     config.Config
	format  OutputFormat
	verbose bool
	store   storage.Store
	log     *logger.Logger
	metrics *logger.Metrics
	now     func() time.Time
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wurstliga",
		Short: "Build Wurstliga standings from kicktipp round overviews",
		Long: `A CLI tool that scrapes the kicktipp "Tippübersicht" of every round, derives
Wurstliga league points from the raw tip scores and maintains the season standings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "wurstliga.yaml", "Path to the YAML config file")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Data directory (overrides config)")
	flags.StringVar(&opts.season, "season", "", "Season label such as 2025-26 (overrides config)")
	flags.StringVar(&opts.format, "format", "text", "Output format: text or json")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newScrapeCmd(opts),
		newImportCmd(opts),
		newStandingsCmd(opts),
		newExportCmd(opts),
		newCalendarCmd(opts),
	)

	return cmd
}

// open loads the configuration, applies flag overrides and opens the store
func (o *rootOptions) open(cmd *cobra.Command) (*app, error) {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.season != "" {
		cfg.Season = o.season
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := logger.LevelInfo
	if o.verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr()).With(logger.Fields{
		"run_id": uuid.NewString(),
		"season": cfg.Season,
	})
	logger.SetDefault(log)

	store, err := storage.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	loc := cfg.Location()
	return &app{
		cfg:     cfg,
		format:  format,
		verbose: o.verbose,
		store:   store,
		log:     log,
		metrics: logger.NewMetrics(),
		now:     func() time.Time { return time.Now().In(loc) },
	}, nil
}

// close releases the store and writes the metrics textfile when configured
func (a *app) close() {
	if a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			a.log.Warn("could not write metrics", logger.Fields{"file": a.cfg.MetricsFile, "error": err.Error()})
		}
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn("could not close store", logger.Fields{"error": err.Error()})
	}
}

// withApp wraps a command body with open and close
func withApp(opts *rootOptions, run func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.open(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		return run(cmd.Context(), cmd, a, args)
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", nil, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
