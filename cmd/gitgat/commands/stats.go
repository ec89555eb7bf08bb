// Package commands implements the gitgat command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitgat/pkg/authorstats"
	"github.com/Sumatoshi-tech/gitgat/pkg/config"
	"github.com/Sumatoshi-tech/gitgat/pkg/observability"
	"github.com/Sumatoshi-tech/gitgat/pkg/report"
	"github.com/Sumatoshi-tech/gitgat/pkg/version"
)

// ErrEmptyAuthor is returned when the AUTHOR argument is empty.
var ErrEmptyAuthor = errors.New("author must not be empty")

// statsSource is a history source that holds native resources.
type statsSource interface {
	authorstats.Source
	Close()
}

type sourceOpener func(path string, logger *slog.Logger) (statsSource, error)

type observabilityInit func(cfg observability.Config) (observability.Providers, error)

// StatsCommand holds flags and dependencies for the root stats command.
type StatsCommand struct {
	exclude     []string
	format      string
	configPath  string
	verbose     bool
	silent      bool
	noColor     bool
	metricsFile string

	openSource sourceOpener
	initObs    observabilityInit
}

// NewStatsCommand creates the gitgat root command.
func NewStatsCommand() *cobra.Command {
	return newStatsCommandWithDeps(openGitSource, observability.Init)
}

func openGitSource(path string, logger *slog.Logger) (statsSource, error) {
	return authorstats.OpenGitSource(path, logger)
}

func newStatsCommandWithDeps(openSource sourceOpener, initObs observabilityInit) *cobra.Command {
	sc := &StatsCommand{
		openSource: openSource,
		initObs:    initObs,
	}

	cmd := &cobra.Command{
		Use:   "gitgat [flags] REPO AUTHOR",
		Short: "Per-author contribution statistics for a git repository",
		Long: `gitgat walks the history of REPO and reports how many commits AUTHOR made,
how many lines they added and deleted, and their largest commit.

AUTHOR is matched exactly against the commit author name and must not be
empty.
Paths starting with an --exclude prefix are not counted.`,
		Args:          exactArgsWithUsage(2),
		RunE:          sc.run,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("gitgat {{.Version}}\n")

	cmd.Flags().StringSliceVarP(&sc.exclude, "exclude", "e", nil,
		"Path prefixes to leave out of line counts (repeatable, comma separated)")
	cmd.Flags().StringVar(&sc.format, "format", config.DefaultOutputFormat,
		"Output format: "+strings.Join(config.Formats(), ", "))
	cmd.Flags().StringVar(&sc.configPath, "config", "", "Config file (default: .gitgat.yaml in the working directory or $HOME)")
	cmd.Flags().BoolVarP(&sc.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&sc.silent, "silent", false, "Disable progress output")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "Disable colored table output")
	cmd.Flags().StringVar(&sc.metricsFile, "metrics-file", "", "Write run metrics to this file in Prometheus text format")

	return cmd
}

// exactArgsWithUsage is cobra.ExactArgs that also prints usage on failure.
func exactArgsWithUsage(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := cobra.ExactArgs(n)(cmd, args)
		if err != nil {
			cmd.SilenceUsage = false
		}

		return err
	}
}

func (sc *StatsCommand) run(cmd *cobra.Command, args []string) (err error) {
	repoPath, author := args[0], args[1]
	if author == "" {
		return ErrEmptyAuthor
	}

	cfg, err := sc.loadConfig(cmd)
	if err != nil {
		return err
	}

	obsCfg, err := sc.observabilityConfig(cmd, cfg)
	if err != nil {
		return err
	}

	providers, err := sc.initObs(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(cmd.Context()))
		if shutdownErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown observability: %w", shutdownErr))
		}
	}()

	metrics, err := observability.NewRunMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create run metrics: %w", err)
	}

	logger := providers.Logger
	silent := sc.silent || !cfg.Progress.Enabled
	progressWriter := cmd.ErrOrStderr()

	progressf(silent || !sc.verbose, progressWriter, "opening repository path=%s", repoPath)

	source, err := sc.openSource(repoPath, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	exclude := authorstats.NewExclusionSet(cfg.Exclude...)
	reporter := newProgressReporter(progressWriter, !silent && isTerminal(progressWriter))

	runner := &authorstats.Runner{
		Source:       source,
		Author:       author,
		Exclude:      exclude,
		Logger:       logger,
		Tracer:       providers.Tracer,
		Metrics:      metrics,
		TraceCommits: cfg.Telemetry.TraceVerbose,
		OnProgress:   reporter.Update,
	}

	reporter.Start()
	stats, err := runner.Run(cmd.Context())
	reporter.Finish()

	if err != nil {
		return err
	}

	progressf(silent || !sc.verbose, progressWriter, "run completed commits=%d", stats.Commits)

	return report.Render(cmd.OutOrStdout(), cfg.Output.Format, report.Report{
		Repository: repoPath,
		Author:     author,
		Exclude:    exclude.Prefixes(),
		Stats:      stats,
	}, report.Options{NoColor: cfg.Output.NoColor})
}

// loadConfig reads the config file and layers explicitly set flags on top.
// Exclusion prefixes from flags are appended after configured ones.
func (sc *StatsCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = sc.format
	}

	if flags.Changed("no-color") {
		cfg.Output.NoColor = sc.noColor
	}

	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = sc.metricsFile
	}

	if sc.verbose {
		cfg.Logging.Level = slog.LevelDebug.String()
	}

	cfg.Exclude = append(cfg.Exclude, sc.exclude...)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (sc *StatsCommand) observabilityConfig(cmd *cobra.Command, cfg *config.Config) (observability.Config, error) {
	level, err := config.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.DebugTrace = cfg.Telemetry.DebugTrace
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.LogOutput = cmd.ErrOrStderr()

	return obsCfg, nil
}
