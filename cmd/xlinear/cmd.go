package main

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benz9527/xlinear/bench"
	"github.com/benz9527/xlinear/lib/infra"
	"github.com/benz9527/xlinear/observability"
	"github.com/benz9527/xlinear/xlog"
)

// logFlags are shared by every sub command.
type logFlags struct {
	level   string
	encoder string
}

func (f *logFlags) loggerOptions() ([]xlog.XLoggerOption, error) {
	enc, err := xlog.ParseLogEncoder(f.encoder)
	if err != nil {
		return nil, err
	}
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerConsoleCore(),
		xlog.WithXLoggerEncoder(enc),
	}
	// Without the flag the level comes from XLOG_LVL.
	if strings.TrimSpace(f.level) != "" {
		opts = append(opts, xlog.WithXLoggerLevel(xlog.ParseLogLevel(f.level)))
	}
	return opts, nil
}

type benchFlags struct {
	suite     string
	workers   int
	metrics   string
	promAddr  string
	sqlite    string
	redis     string
	reportDir string
}

// benchConfig is the validated form of the bench command line.
type benchConfig struct {
	repeat     int64
	suites     []bench.Kind
	workers    int
	metrics    observability.MetricsExporter
	promAddr   string
	sqlite     string
	redis      string
	reportDir  string
	loggerOpts []xlog.XLoggerOption
}

func (f *benchFlags) config(log *logFlags, args []string) (benchConfig, error) {
	cfg := benchConfig{
		promAddr:  f.promAddr,
		sqlite:    f.sqlite,
		redis:     f.redis,
		reportDir: f.reportDir,
		workers:   f.workers,
	}
	var err error
	if cfg.repeat, err = parseRepeat(args); err != nil {
		return cfg, err
	}
	if cfg.suites, err = bench.ParseKinds(f.suite); err != nil {
		return cfg, err
	}
	if cfg.metrics, err = observability.ParseMetricsExporter(f.metrics); err != nil {
		return cfg, err
	}
	if cfg.loggerOpts, err = log.loggerOptions(); err != nil {
		return cfg, err
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	return cfg, nil
}

// parseRepeat reads the optional positional repeat count.
func parseRepeat(args []string) (int64, error) {
	if len(args) == 0 {
		return bench.DefaultRepeat, nil
	}
	repeat, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, infra.WrapErrorStackWithMessage(err, "repeat "+args[0])
	}
	if repeat <= 0 {
		return 0, bench.ErrInvalidRepeat
	}
	return repeat, nil
}

func newRootCmd() *cobra.Command {
	log := &logFlags{}
	root := &cobra.Command{
		Use:           "xlinear",
		Short:         "exercises the linked sequence and the vector containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&log.level, "log-level", "", "DEBUG, INFO, WARN or ERROR, defaults to $XLOG_LVL")
	root.PersistentFlags().StringVar(&log.encoder, "log-encoder", "json", "json or text")
	root.AddCommand(newBenchCmd(log), newSmokeCmd(log))
	return root
}

func newBenchCmd(log *logFlags) *cobra.Command {
	flags := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench [repeat]",
		Short: "times append, prepend, erase-front and erase-back per container",
		Long: `
	Runs every phase repeat times (100000 by default) for each selected
	container and reports the elapsed time per phase to the log and to
	the configured sinks.
	`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(log, args)
			if err != nil {
				return err
			}
			_, err = runBench(cmd.Context(), cfg)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.suite, "suite", "all", "list, vector or all")
	f.IntVar(&flags.workers, "workers", 1, "suites run in parallel, 0 means GOMAXPROCS")
	f.StringVar(&flags.metrics, "metrics", "none", "none, stdout or prometheus")
	f.StringVar(&flags.promAddr, "prom-addr", ":9464", "listen address of /metrics with --metrics prometheus")
	f.StringVar(&flags.sqlite, "sqlite", "", "sqlite database the results are stored into")
	f.StringVar(&flags.redis, "redis", "", "redis address the results are pushed to")
	f.StringVar(&flags.reportDir, "report-dir", "", "directory of the JSON lines report")
	return cmd
}

func newSmokeCmd(log *logFlags) *cobra.Command {
	var suite string
	cmd := &cobra.Command{
		Use:   "smoke [repeat]",
		Short: "builds a fresh container and appends one element, repeat times",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			repeat, err := parseRepeat(args)
			if err != nil {
				return err
			}
			kind, err := bench.ParseKind(suite)
			if err != nil {
				return err
			}
			opts, err := log.loggerOptions()
			if err != nil {
				return err
			}
			logger := xlog.NewXLogger(opts...)
			defer func() {
				if syncErr := xlog.SyncLogger(logger); syncErr != nil && err == nil {
					err = syncErr
				}
			}()

			report, err := bench.Smoke(cmd.Context(), kind, repeat)
			if err != nil {
				logger.ErrorStack(err, "smoke failed", zap.String("kind", string(kind)))
				return err
			}
			logger.Info("smoke done",
				zap.String("kind", string(report.Kind)),
				zap.Int64("repeat", report.Repeat),
				zap.Duration("elapsed", report.Elapsed),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", string(bench.KindList), "list or vector")
	return cmd
}
