// Package config holds the runtime settings of fiba-stats.
//
// Values start from Default, are overlaid with FIBA_STATS_* environment
// variables by Load, and are finally overridden by command-line flags. The
// result is checked with Validate before any request is made.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/pfrederiksen/fiba-stats/internal/scraper"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	DefaultGamesFile   = "games-links.csv"
	DefaultOutDir      = "final/data/raw"
	DefaultSummaryFile = "all_games_in_brief.csv"
	DefaultRosterFile  = "roster.csv"
	DefaultImageDir    = "images"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config stores runtime configuration for the scraper.
type Config struct {
	BaseURL   string        `validate:"required,url"`
	Delay     time.Duration `validate:"gte=0s"`
	Timeout   time.Duration `validate:"gt=0s"`
	CookieJar bool

	GamesFile   string `validate:"required"`
	OutDir      string `validate:"required"`
	SummaryFile string `validate:"required"`

	RosterFile     string `validate:"required"`
	Competition    string
	DownloadImages bool
	ImageDir       string `validate:"required_if=DownloadImages true"`

	Format   string `validate:"oneof=text json"`
	LogLevel string `validate:"oneof=debug info warn warning error"`
	Verbose  bool
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		BaseURL:     scraper.DefaultBaseURL,
		Delay:       scraper.DefaultDelay,
		Timeout:     scraper.Timeout,
		GamesFile:   DefaultGamesFile,
		OutDir:      DefaultOutDir,
		SummaryFile: DefaultSummaryFile,
		RosterFile:  DefaultRosterFile,
		Competition: scraper.DefaultCompetition,
		ImageDir:    DefaultImageDir,
		Format:      FormatText,
		LogLevel:    "info",
	}
}

// Load returns Default overlaid with environment variables.
func Load() (Config, error) {
	cfg := Default()

	cfg.BaseURL = getEnv("FIBA_STATS_BASE_URL", cfg.BaseURL)
	cfg.GamesFile = getEnv("FIBA_STATS_GAMES_FILE", cfg.GamesFile)
	cfg.OutDir = getEnv("FIBA_STATS_OUT_DIR", cfg.OutDir)
	cfg.SummaryFile = getEnv("FIBA_STATS_SUMMARY_FILE", cfg.SummaryFile)
	cfg.LogLevel = strings.ToLower(getEnv("FIBA_STATS_LOG_LEVEL", cfg.LogLevel))

	var err error
	if cfg.Delay, err = getEnvAsDuration("FIBA_STATS_DELAY", cfg.Delay); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = getEnvAsDuration("FIBA_STATS_TIMEOUT", cfg.Timeout); err != nil {
		return Config{}, err
	}
	if cfg.CookieJar, err = getEnvAsBool("FIBA_STATS_COOKIE_JAR", cfg.CookieJar); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the struct tags of cfg.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return errors.Wrapf(ErrInvalidConfig, "%s", strings.Join(fields, ", "))
		}
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return d, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "parse %s", key)
	}
	return b, nil
}
