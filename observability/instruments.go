package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const benchMeterName = "xlinear/bench"

var (
	suiteKey = attribute.Key("suite")
	phaseKey = attribute.Key("phase")
)

// PhaseInstruments records the outcome of one benchmark phase.
type PhaseInstruments struct {
	elapsed metric.Float64Histogram
	ops     metric.Int64Counter
	rss     metric.Int64Histogram
}

// NewPhaseInstruments creates the instruments from meter. A nil meter
// falls back to the global meter provider.
func NewPhaseInstruments(meter metric.Meter) (*PhaseInstruments, error) {
	if meter == nil {
		meter = otel.Meter(benchMeterName)
	}
	elapsed, err := meter.Float64Histogram(
		"bench.phase.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Elapsed wall-clock time of a benchmark phase."),
	)
	if err != nil {
		return nil, err
	}
	ops, err := meter.Int64Counter(
		"bench.phase.operations",
		metric.WithDescription("Container operations performed by benchmark phases."),
	)
	if err != nil {
		return nil, err
	}
	rss, err := meter.Int64Histogram(
		"bench.phase.rss",
		metric.WithUnit("By"),
		metric.WithDescription("Resident set size sampled after a benchmark phase."),
	)
	if err != nil {
		return nil, err
	}
	return &PhaseInstruments{elapsed: elapsed, ops: ops, rss: rss}, nil
}

func (ins *PhaseInstruments) Record(ctx context.Context, suite, phase string, ops int64, elapsed time.Duration, rssBytes uint64) {
	if ins == nil {
		return
	}
	attrs := metric.WithAttributes(suiteKey.String(suite), phaseKey.String(phase))
	ins.elapsed.Record(ctx, elapsed.Seconds(), attrs)
	ins.ops.Add(ctx, ops, attrs)
	if rssBytes > 0 {
		ins.rss.Record(ctx, int64(rssBytes), attrs)
	}
}
