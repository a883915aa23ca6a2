package bench

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	antsv2 "github.com/panjf2000/ants/v2"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xlinear/lib/infra"
	"github.com/benz9527/xlinear/observability"
	"github.com/benz9527/xlinear/xlog"
)

type rssSampler func(ctx context.Context) (uint64, error)

func newProcessRSSSampler() (rssSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] process lookup")
	}
	return func(ctx context.Context) (uint64, error) {
		mem, err := proc.MemoryInfoWithContext(ctx)
		if err != nil {
			return 0, err
		}
		return mem.RSS, nil
	}, nil
}

// Runner executes the configured suites and hands the results to the sinks.
type Runner struct {
	cfg         *config
	instruments *observability.PhaseInstruments
}

func NewRunner(opts ...Option) (*Runner, error) {
	cfg := &config{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	ins, err := observability.NewPhaseInstruments(cfg.meter)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] instruments")
	}
	return &Runner{cfg: cfg, instruments: ins}, nil
}

// Run submits one task per suite to the pool and waits for all of them.
// A failed suite does not stop the others, the errors are combined. The
// results are ordered by suite then phase whatever the completion order.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	pool, err := antsv2.NewPool(
		r.cfg.workers,
		antsv2.WithLogger(xlog.NewAntsXLogger(r.cfg.logger)),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] pool")
	}
	defer pool.Release()

	var (
		lock    sync.Mutex
		wg      sync.WaitGroup
		results = make([]Result, 0, len(r.cfg.suites)*len(Phases))
		runErr  error
	)
	collect := func(res []Result, err error) {
		lock.Lock()
		defer lock.Unlock()
		results = append(results, res...)
		runErr = multierr.Append(runErr, err)
	}

	for _, kind := range r.cfg.suites {
		if err := ctx.Err(); err != nil {
			collect(nil, err)
			break
		}
		wg.Add(1)
		suite := kind
		if err := pool.Submit(func() {
			defer wg.Done()
			collect(r.runSuite(ctx, suite))
		}); err != nil {
			wg.Done()
			collect(nil, infra.WrapErrorStackWithMessage(err, "[bench] submit "+string(suite)))
		}
	}
	wg.Wait()

	slices.SortStableFunc(results, resultOrder)
	for _, sink := range r.cfg.sinks {
		runErr = multierr.Append(runErr, sink.Write(ctx, results))
	}
	if runErr != nil {
		r.cfg.logger.ErrorStack(runErr, "bench run finished with errors",
			zap.Int("results", len(results)),
		)
	}
	return results, runErr
}

// Close closes every sink.
func (r *Runner) Close() error {
	var err error
	for _, sink := range r.cfg.sinks {
		err = multierr.Append(err, sink.Close())
	}
	return err
}

func (r *Runner) runSuite(ctx context.Context, kind Kind) (results []Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = multierr.Append(err, infra.NewErrorStack(fmt.Sprintf("[bench] suite %s panicked: %v", kind, p)))
		}
	}()

	results = make([]Result, 0, len(Phases))
	for _, phase := range Phases {
		if err = ctx.Err(); err != nil {
			return results, err
		}
		elapsed, phaseErr := runPhase(kind, phase, r.cfg.repeat, r.cfg.clock)
		if phaseErr != nil {
			return results, phaseErr
		}
		rss, rssErr := r.cfg.sampler(ctx)
		if rssErr != nil {
			r.cfg.logger.Warn("rss sample failed",
				zap.String("suite", string(kind)),
				zap.String("error", rssErr.Error()),
			)
		}
		res := Result{
			Suite:      kind,
			Phase:      phase,
			Repeat:     r.cfg.repeat,
			Elapsed:    elapsed,
			RSSBytes:   rss,
			FinishedAt: r.cfg.clock.NowInUTC(),
		}
		r.instruments.Record(ctx, string(kind), string(phase), res.Repeat, res.Elapsed, res.RSSBytes)
		r.cfg.logger.Debug("phase done", zap.Object("result", res))
		results = append(results, res)
	}
	return results, nil
}
