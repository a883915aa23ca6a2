package bench

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xlinear/lib/hrtime"
	"github.com/benz9527/xlinear/xlog"
)

// DefaultRepeat is the repetition count when none is given.
const DefaultRepeat int64 = 100000

type config struct {
	repeat  int64
	suites  []Kind
	workers int
	logger  xlog.XLogger
	sinks   []Sink
	meter   metric.Meter
	clock   hrtime.Clock
	sampler rssSampler
}

type Option func(*config) error

func WithRepeat(repeat int64) Option {
	return func(cfg *config) error {
		if repeat <= 0 {
			return ErrInvalidRepeat
		}
		cfg.repeat = repeat
		return nil
	}
}

func WithSuites(kinds ...Kind) Option {
	return func(cfg *config) error {
		if len(kinds) == 0 {
			return ErrNoSuites
		}
		for _, k := range kinds {
			if _, err := ParseKind(string(k)); err != nil {
				return err
			}
		}
		cfg.suites = kinds
		return nil
	}
}

// WithWorkers sets the size of the pool the suites run on. More than one
// worker runs the suites concurrently, which disturbs the timings.
func WithWorkers(workers int) Option {
	return func(cfg *config) error {
		if workers > 0 {
			cfg.workers = workers
		}
		return nil
	}
}

func WithLogger(logger xlog.XLogger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}

// WithSinks adds result sinks. The runner owns them and closes them when
// the run ends.
func WithSinks(sinks ...Sink) Option {
	return func(cfg *config) error {
		for _, s := range sinks {
			if s != nil {
				cfg.sinks = append(cfg.sinks, s)
			}
		}
		return nil
	}
}

func WithMeter(meter metric.Meter) Option {
	return func(cfg *config) error {
		cfg.meter = meter
		return nil
	}
}

func WithClock(clock hrtime.Clock) Option {
	return func(cfg *config) error {
		cfg.clock = clock
		return nil
	}
}

func withRSSSampler(sampler rssSampler) Option {
	return func(cfg *config) error {
		cfg.sampler = sampler
		return nil
	}
}

func (cfg *config) applyDefaults() error {
	if cfg.repeat == 0 {
		cfg.repeat = DefaultRepeat
	}
	if len(cfg.suites) == 0 {
		cfg.suites = append([]Kind(nil), Kinds...)
	}
	if cfg.workers <= 0 {
		cfg.workers = 1
	}
	if cfg.logger == nil {
		cfg.logger = xlog.NewXLogger()
	}
	if cfg.clock == nil {
		cfg.clock = hrtime.DefaultClock
	}
	if cfg.sampler == nil {
		sampler, err := newProcessRSSSampler()
		if err != nil {
			return err
		}
		cfg.sampler = sampler
	}
	return nil
}
