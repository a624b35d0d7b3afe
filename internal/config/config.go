package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pfrederiksen/playoff-picture/internal/schedule"
	"github.com/pfrederiksen/playoff-picture/internal/scraper"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
	"github.com/pfrederiksen/playoff-picture/internal/storage"
)

// EnvPrefix prefixes every environment override: PLAYOFF_LOG_LEVEL.
const EnvPrefix = "PLAYOFF"

// Default source pages.
const (
	DefaultPlayoffURL  = "https://www.nfl.com/standings/playoff-picture"
	DefaultRankingsURL = "https://www.nfl.com/news/nfl-power-rankings-week-15-2025-nfl-season"
)

// Keys are the viper keys, also used to bind flags.
const (
	KeyStandingsURL  = "sources.standings_url"
	KeyPlayoffURL    = "sources.playoff_url"
	KeyScheduleURL   = "sources.schedule_url"
	KeyRankingsURL   = "sources.rankings_url"
	KeyWeeks         = "sources.weeks"
	KeyHTTPTimeout   = "http.timeout"
	KeyUserAgent     = "http.user_agent"
	KeySettleTimeout = "render.settle_timeout"
	KeyPollInterval  = "render.poll_interval"
	KeyDataDir       = "data.dir"
	KeyOutputPath    = "output.path"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyLogMaxSize    = "log.max_size"
	KeyLogMaxBackups = "log.max_backups"
)

// Config is the resolved run configuration.
type Config struct {
	Sources Sources `mapstructure:"sources"`
	HTTP    HTTP    `mapstructure:"http"`
	Render  Render  `mapstructure:"render"`
	Data    Data    `mapstructure:"data"`
	Output  Output  `mapstructure:"output"`
	Log     Log     `mapstructure:"log"`
}

// Sources are the pages a run reads. Any of them may be a local path.
type Sources struct {
	StandingsURL string   `mapstructure:"standings_url"`
	PlayoffURL   string   `mapstructure:"playoff_url"`
	ScheduleURL  string   `mapstructure:"schedule_url"`
	RankingsURL  string   `mapstructure:"rankings_url"`
	Weeks        []string `mapstructure:"weeks"`
}

type HTTP struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type Render struct {
	SettleTimeout time.Duration `mapstructure:"settle_timeout"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

type Data struct {
	Dir string `mapstructure:"dir"`
}

type Output struct {
	Path string `mapstructure:"path"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ScraperOptions maps the HTTP and render sections to scraper options.
func (c *Config) ScraperOptions() scraper.Options {
	return scraper.Options{
		Timeout:       c.HTTP.Timeout,
		UserAgent:     c.HTTP.UserAgent,
		SettleTimeout: c.Render.SettleTimeout,
		PollInterval:  c.Render.PollInterval,
	}
}

// New returns a viper instance carrying the defaults and environment
// bindings. Flags are bound by the caller before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyStandingsURL, standings.DefaultURL)
	v.SetDefault(KeyPlayoffURL, DefaultPlayoffURL)
	v.SetDefault(KeyScheduleURL, schedule.DefaultURLTemplate)
	v.SetDefault(KeyRankingsURL, DefaultRankingsURL)
	v.SetDefault(KeyWeeks, schedule.DefaultWeeks)
	v.SetDefault(KeyHTTPTimeout, scraper.Timeout)
	v.SetDefault(KeyUserAgent, scraper.UserAgent)
	v.SetDefault(KeySettleTimeout, scraper.DefaultSettleTimeout)
	v.SetDefault(KeyPollInterval, scraper.DefaultPollInterval)
	v.SetDefault(KeyDataDir, storage.DefaultDataDir)
	v.SetDefault(KeyOutputPath, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxBackups, 5)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// DefaultPath is $HOME/.config/playoff-picture/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "playoff-picture", "config.yaml")
}

// Load reads cfgFile (or the default path, if it exists) into v and returns
// the validated configuration. An explicit cfgFile must exist.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else if path := DefaultPath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations a run cannot start with.
func (c *Config) Validate() error {
	var errs []error

	urls := []struct {
		key, value string
	}{
		{KeyStandingsURL, c.Sources.StandingsURL},
		{KeyPlayoffURL, c.Sources.PlayoffURL},
		{KeyScheduleURL, c.Sources.ScheduleURL},
		{KeyRankingsURL, c.Sources.RankingsURL},
	}
	for _, u := range urls {
		if strings.TrimSpace(u.value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", u.key))
		}
	}
	if c.Sources.ScheduleURL != "" && !strings.Contains(c.Sources.ScheduleURL, "%s") {
		errs = append(errs, fmt.Errorf("%s must contain %%s for the week", KeyScheduleURL))
	}
	for _, w := range c.Sources.Weeks {
		if _, err := schedule.ParseWeek(w); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyWeeks, err))
		}
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{KeyHTTPTimeout, c.HTTP.Timeout},
		{KeySettleTimeout, c.Render.SettleTimeout},
		{KeyPollInterval, c.Render.PollInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", d.key, d.value))
		}
	}

	if c.Data.Dir == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyDataDir))
	}

	return errors.Join(errs...)
}
