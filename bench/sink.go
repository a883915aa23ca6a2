package bench

import (
	"context"

	"go.uber.org/zap"

	"github.com/benz9527/xlinear/xlog"
)

// Sink receives the results of a finished run.
type Sink interface {
	Write(ctx context.Context, results []Result) error
	Close() error
}

var _ Sink = (*LogSink)(nil)

// LogSink prints the elapsed time of every phase.
type LogSink struct {
	logger xlog.XLogger
}

func NewLogSink(logger xlog.XLogger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, results []Result) error {
	for _, res := range results {
		s.logger.InfoContext(ctx, string(res.Suite)+" "+string(res.Phase),
			zap.Int64("repeat", res.Repeat),
			zap.Duration("elapsed", res.Elapsed),
			zap.Int64("elapsedMs", res.Elapsed.Milliseconds()),
			zap.Float64("opsPerSec", res.OpsPerSecond()),
			zap.Uint64("rssBytes", res.RSSBytes),
		)
	}
	return nil
}

func (s *LogSink) Close() error {
	return xlog.SyncLogger(s.logger)
}
