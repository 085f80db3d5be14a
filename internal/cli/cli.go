package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/config"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
	"github.com/pfrederiksen/fiba-stats/internal/runner"
	"github.com/pfrederiksen/fiba-stats/internal/scraper"
	"github.com/pfrederiksen/fiba-stats/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitGamesFailed = 2
)

// ErrGamesFailed is returned by the games command when the run completed but
// at least one game could not be scraped.
var ErrGamesFailed = errors.New("some games failed")

var (
	flagBaseURL   string
	flagDelay     time.Duration
	flagTimeout   time.Duration
	flagCookieJar bool
	flagFormat    string
	flagLogLevel  string
	flagVerbose   bool

	flagGamesFile   string
	flagOutDir      string
	flagSummaryFile string
	flagSort        string

	flagRosterOut      string
	flagCompetition    string
	flagDownloadImages bool
	flagImageDir       string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "fiba-stats",
		Short: "Scrape game statistics and rosters from fiba.basketball",
		Long: `A CLI tool to scrape FIBA basketball game statistics.
Collects game summaries, play-by-play, box scores and team comparisons for a
list of games, and national-team rosters, into CSV and HTML files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", defaults.BaseURL, "Origin that relative game and tab links are resolved against")
	pf.DurationVar(&flagDelay, "delay", defaults.Delay, "Pause between tab fragment requests (0 disables)")
	pf.DurationVar(&flagTimeout, "timeout", defaults.Timeout, "HTTP request timeout")
	pf.BoolVar(&flagCookieJar, "cookie-jar", defaults.CookieJar, "Keep cookies between requests")
	pf.StringVar(&flagFormat, "format", defaults.Format, "Output format: text or json")
	pf.StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose output and debug logging")

	cmd.AddCommand(newGamesCmd(defaults), newRosterCmd(defaults))

	return cmd
}

func newGamesCmd(defaults config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Scrape every game listed in the games file",
		Long: `Reads game links from a CSV file with a "url" column and scrapes each
game in order. Summaries are appended to the summary file; box scores, team
comparisons and play-by-play go to the output directory.

Exit status is 2 when the run completed but some games failed.`,
		Args: cobra.NoArgs,
		RunE: runGames,
	}

	cmd.Flags().StringVar(&flagGamesFile, "games-file", defaults.GamesFile, "CSV file listing game URLs")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", defaults.OutDir, "Directory for per-game raw files")
	cmd.Flags().StringVar(&flagSummaryFile, "summary-file", defaults.SummaryFile, "Cumulative game summary CSV")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByInput), "Report order: input, date or team")

	return cmd
}

func newRosterCmd(defaults config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster <url>",
		Short: "Scrape a national-team roster page",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoster,
	}

	cmd.Flags().StringVar(&flagRosterOut, "out", defaults.RosterFile, "Roster CSV file (appended)")
	cmd.Flags().StringVar(&flagCompetition, "competition", defaults.Competition, "Competition written into every row")
	cmd.Flags().BoolVar(&flagDownloadImages, "download-images", false, "Download player images")
	cmd.Flags().StringVar(&flagImageDir, "image-dir", defaults.ImageDir, "Directory for player images")

	return cmd
}

// loadConfig merges environment settings with the flags given on the
// command line. Flags win over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if flags.Changed("delay") {
		cfg.Delay = flagDelay
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flags.Changed("cookie-jar") {
		cfg.CookieJar = flagCookieJar
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(flagLogLevel)
	}
	cfg.Format = strings.ToLower(flagFormat)
	cfg.Verbose = flagVerbose

	switch cmd.Name() {
	case "games":
		if flags.Changed("games-file") {
			cfg.GamesFile = flagGamesFile
		}
		if flags.Changed("out-dir") {
			cfg.OutDir = flagOutDir
		}
		if flags.Changed("summary-file") {
			cfg.SummaryFile = flagSummaryFile
		}
	case "roster":
		cfg.RosterFile = flagRosterOut
		cfg.Competition = flagCompetition
		cfg.DownloadImages = flagDownloadImages
		cfg.ImageDir = flagImageDir
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setup configures logging and builds the scraper for cfg.
func setup(cfg config.Config) (*scraper.Scraper, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	client, err := scraper.NewClient(scraper.ClientOptions{
		BaseURL:   cfg.BaseURL,
		Delay:     cfg.Delay,
		Timeout:   cfg.Timeout,
		CookieJar: cfg.CookieJar,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing client")
	}
	return scraper.New(client), nil
}

// runGames is the games command logic
func runGames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(flagSort)
	if err != nil {
		return err
	}

	s, err := setup(cfg)
	if err != nil {
		return err
	}
	defer logger.Default().Sync()

	// Initialize storage
	store, err := storage.New(cfg.OutDir)
	if err != nil {
		return errors.Wrap(err, "initializing storage")
	}

	r, err := runner.New(s, store, cfg.SummaryFile)
	if err != nil {
		return err
	}

	report, err := r.RunFile(cmd.Context(), cfg.GamesFile)
	if err != nil {
		return err
	}

	sortGames(report.Games, order)

	if err := WriteGamesReport(cmd.OutOrStdout(), report, OutputFormat(cfg.Format), cfg.Verbose); err != nil {
		return errors.Wrap(err, "writing output")
	}

	if report.HasFailures() {
		return errors.Wrapf(ErrGamesFailed, "%d of %d games failed", report.Failed, len(report.Games))
	}
	return nil
}

// runRoster is the roster command logic
func runRoster(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := setup(cfg)
	if err != nil {
		return err
	}
	defer logger.Default().Sync()

	report, err := runner.Roster(cmd.Context(), s, args[0], runner.RosterOptions{
		OutFile:        cfg.RosterFile,
		Competition:    cfg.Competition,
		DownloadImages: cfg.DownloadImages,
		ImageDir:       cfg.ImageDir,
	})
	if err != nil {
		return err
	}

	if err := WriteRosterReport(cmd.OutOrStdout(), report, OutputFormat(cfg.Format), cfg.Verbose); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrGamesFailed):
		return ExitGamesFailed
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, ErrGamesFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(ExitCode(err))
}
