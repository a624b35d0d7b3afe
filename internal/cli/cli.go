package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/playoff-picture/internal/change"
	"github.com/pfrederiksen/playoff-picture/internal/config"
	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/pipeline"
	"github.com/pfrederiksen/playoff-picture/internal/scraper"
	"github.com/pfrederiksen/playoff-picture/internal/storage"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

const (
	ExitSuccess = 0
	ExitFatal   = 1
	ExitPartial = 2 // output written, some sources failed
)

// ExitError carries a non-default exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// flags shared by every command
type flags struct {
	configFile string
	dataDir    string
	format     string
	logFile    string
	verbose    bool
}

// env is everything a command needs, built from the resolved config.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *storage.Storage
	scraper *scraper.Scraper
	reg     *team.Registry
	format  OutputFormat
	closer  io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

func (e *env) orchestrator(fetchStandings bool) *pipeline.Orchestrator {
	src := e.cfg.Sources
	return pipeline.New(e.scraper, e.scraper, e.store, e.reg, pipeline.Options{
		StandingsURL:   src.StandingsURL,
		PlayoffURL:     src.PlayoffURL,
		ScheduleURL:    src.ScheduleURL,
		RankingsURL:    src.RankingsURL,
		Weeks:          src.Weeks,
		FetchStandings: fetchStandings,
	}, e.log)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "playoff-picture",
		Short: "Build the NFL playoff picture from standings, schedule and rankings pages",
		Long: `A CLI tool that scrapes the playoff standings page, the remaining weekly
schedules and the power rankings article, merges them with the authoritative
standings table and writes one JSON document with seeds, bubble and
eliminated teams per conference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "Config file (default $HOME/.config/playoff-picture/config.yaml)")
	pf.StringVar(&f.dataDir, "data-dir", "", "Data directory for snapshots and output (default "+storage.DefaultDataDir+")")
	pf.StringVar(&f.format, "format", string(FormatText), "Output format: text or json")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	pf.BoolVar(&f.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(f), newStandingsCmd(f), newRankingsCmd(f), newShowCmd(f))
	return cmd
}

// setup resolves configuration and builds the shared collaborators.
func setup(cmd *cobra.Command, f *flags) (*env, error) {
	format := OutputFormat(strings.ToLower(f.format))
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("invalid format: %s (must be 'text' or 'json')", f.format)
	}

	v := config.New()
	for key, name := range map[string]string{
		config.KeyDataDir:    "data-dir",
		config.KeyLogFile:    "log-file",
		config.KeyOutputPath: "output",
	} {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(v, f.configFile)
	if err != nil {
		return nil, err
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if f.verbose {
		level = logger.LevelDebug
	}

	e := &env{cfg: cfg, format: format}
	if cfg.Log.File != "" {
		path, err := storage.ExpandHome(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		e.log, e.closer = logger.NewRotating(level, logger.RotateOptions{
			Filename:   path,
			MaxSizeMB:  cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
		})
	} else {
		e.log = logger.New(level, cmd.ErrOrStderr())
	}
	logger.SetDefault(e.log)

	e.store, err = storage.New(cfg.Data.Dir)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	e.reg = team.NewRegistry(e.log)
	e.scraper = scraper.New(cfg.ScraperOptions(), e.log)

	e.log.Debug("configuration loaded", logger.Fields{
		"data_dir": e.store.Dir(),
		"playoff":  cfg.Sources.PlayoffURL,
		"weeks":    cfg.Sources.Weeks,
	})
	return e, nil
}

func newRunCmd(f *flags) *cobra.Command {
	var fetchStandings bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build and save the playoff picture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer e.Close()

			previous, err := e.store.LoadPicture(e.cfg.Output.Path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					e.log.Warn("previous picture unreadable", logger.Fields{"error": err.Error()})
				}
				previous = nil
			}

			res, err := e.orchestrator(fetchStandings).Run(cmd.Context())
			if err != nil {
				return err
			}

			path, err := e.store.SavePicture(res.Picture, e.cfg.Output.Path)
			if err != nil {
				return fmt.Errorf("saving picture: %w", err)
			}
			e.log.Info("picture saved", logger.Fields{"path": path, "run_id": res.RunID})

			if err := WritePicture(cmd.OutOrStdout(), res.Picture, e.reg, e.format, f.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			if previous != nil {
				changes := change.Diff(previous, res.Picture, time.Now())
				e.log.Info("changes since last run", logger.Fields{"count": len(changes), "run_id": res.RunID})
				if e.format == FormatText {
					WriteChanges(cmd.OutOrStdout(), changes)
				}
			}

			if res.Partial() {
				for _, failure := range res.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", failure)
				}
				return &ExitError{Code: ExitPartial}
			}
			return nil
		},
	}

	cmd.Flags().String("output", "", "Output document path (default <data-dir>/playoff-picture.json)")
	cmd.Flags().BoolVar(&fetchStandings, "fetch-standings", true, "Refresh the standings snapshot before building")
	return cmd
}

func newStandingsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Fetch and save the authoritative standings table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer e.Close()

			snap, err := e.orchestrator(true).RefreshStandings(cmd.Context())
			if err != nil {
				return err
			}
			return WriteStandings(cmd.OutOrStdout(), snap, e.format)
		},
	}
}

func newRankingsCmd(f *flags) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Fetch and print the power rankings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer e.Close()

			entries, err := e.orchestrator(false).Rankings(cmd.Context())
			if err != nil {
				return err
			}
			if top > 0 && len(entries) > top {
				entries = entries[:top]
			}
			return WriteRankings(cmd.OutOrStdout(), entries, e.format)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "Only print the first N entries")
	return cmd
}

func newShowCmd(f *flags) *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print a saved playoff picture",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order := SortOrder(strings.ToLower(sortFlag))
			if !order.Valid() {
				return fmt.Errorf("invalid sort order: %s (must be 'standings', 'name' or 'record')", sortFlag)
			}

			e, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer e.Close()

			path := e.cfg.Output.Path
			if len(args) == 1 {
				path = args[0]
			}
			p, err := e.store.LoadPicture(path)
			if err != nil {
				return err
			}

			sortPicture(p, order)
			return WritePicture(cmd.OutOrStdout(), p, e.reg, e.format, f.verbose)
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", string(SortByStandings), "Order within each bucket: standings, name or record")
	return cmd
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		if exit.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exit.Err)
		}
		return exit.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFatal
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
