package main

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xlinear/bench"
	"github.com/benz9527/xlinear/observability"
	"github.com/benz9527/xlinear/xlog"
)

type xlinearBanner struct{}

func (xlinearBanner) JSON() string {
	return `{"app":"xlinear","about":"linked sequence and vector benchmark"}`
}

func (xlinearBanner) PlainText() string {
	return `
 __  __ _ _
 \ \/ /| (_)_ __   ___  __ _ _ __
  \  / | | | '_ \ / _ \/ _' | '__|
  /  \ | | | | | |  __/ (_| | |
 /_/\_\|_|_|_| |_|\___|\__,_|_|
`
}

func newLogger(cfg benchConfig, lc fx.Lifecycle) xlog.XLogger {
	logger := xlog.NewXLogger(cfg.loggerOpts...)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return xlog.SyncLogger(logger)
		},
	})
	return logger
}

// newMeter installs the exporter and hands out the meter of the runner.
func newMeter(cfg benchConfig, lc fx.Lifecycle, logger xlog.XLogger) (metric.Meter, error) {
	shutdown, err := observability.InitMetricsExporter(cfg.metrics, nil, 0)
	if err != nil {
		return nil, err
	}
	if err = observability.InitAppStats("bench"); err != nil {
		logger.Warn("runtime stats disabled", zap.Error(err))
	}
	var srv *http.Server
	if cfg.metrics == observability.PrometheusExporter && cfg.promAddr != "" {
		srv = observability.NewPrometheusServer(cfg.promAddr)
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if srv == nil {
				return nil
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.ErrorStack(err, "prometheus endpoint stopped", zap.String("addr", srv.Addr))
				}
			}()
			logger.Info("prometheus endpoint", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var merr error
			if srv != nil {
				merr = multierr.Append(merr, srv.Shutdown(ctx))
			}
			return multierr.Append(merr, shutdown(ctx))
		},
	})
	return otel.Meter("xlinear/bench"), nil
}

// newSinks opens every configured sink. The log sink is always on.
func newSinks(cfg benchConfig, logger xlog.XLogger) (sinks []bench.Sink, err error) {
	sinks = append(sinks, bench.NewLogSink(logger))
	defer func() {
		if err == nil {
			return
		}
		for _, s := range sinks {
			err = multierr.Append(err, s.Close())
		}
		sinks = nil
	}()
	if cfg.sqlite != "" {
		s, err := bench.NewGormSink(cfg.sqlite, logger)
		if err != nil {
			return sinks, err
		}
		sinks = append(sinks, s)
	}
	if cfg.redis != "" {
		sinks = append(sinks, bench.NewRedisSink(cfg.redis, logger))
	}
	if cfg.reportDir != "" {
		s, err := bench.NewFileSink(cfg.reportDir, "")
		if err != nil {
			return sinks, err
		}
		logger.Info("report file", zap.String("name", s.Name()))
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func newRunner(
	cfg benchConfig,
	lc fx.Lifecycle,
	logger xlog.XLogger,
	meter metric.Meter,
	sinks []bench.Sink,
) (*bench.Runner, error) {
	runner, err := bench.NewRunner(
		bench.WithRepeat(cfg.repeat),
		bench.WithSuites(cfg.suites...),
		bench.WithWorkers(cfg.workers),
		bench.WithLogger(logger),
		bench.WithMeter(meter),
		bench.WithSinks(sinks...),
	)
	if err != nil {
		for _, s := range sinks {
			err = multierr.Append(err, s.Close())
		}
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := runner.Close(); err != nil {
				logger.Warn("close sinks", zap.Error(err))
			}
			return nil
		},
	})
	return runner, nil
}

func newBenchApp(cfg benchConfig, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newMeter,
			newSinks,
			newRunner,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(func(logger xlog.XLogger) {
			logger.Banner(xlinearBanner{})
		}),
		fx.Options(opts...),
	)
}

// runBench starts the application graph, runs every suite once and stops
// the graph, which closes the sinks and flushes the metrics.
func runBench(ctx context.Context, cfg benchConfig) (results []bench.Result, err error) {
	var runner *bench.Runner
	app := newBenchApp(cfg, fx.Populate(&runner))
	if err = app.Err(); err != nil {
		return nil, err
	}
	startCtx, cancelStart := context.WithTimeout(ctx, app.StartTimeout())
	defer cancelStart()
	if err = app.Start(startCtx); err != nil {
		return nil, err
	}
	defer func() {
		stopCtx, cancelStop := context.WithTimeout(context.WithoutCancel(ctx), app.StopTimeout())
		defer cancelStop()
		err = multierr.Append(err, app.Stop(stopCtx))
	}()
	return runner.Run(ctx)
}
