package observability

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/process"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	once  sync.Once
	stats *appStats
)

type appStats struct {
	goroutines metric.Int64ObservableUpDownCounter
	processes  metric.Int64ObservableUpDownCounter
	rss        metric.Int64ObservableGauge
}

func meterName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xlinear/app/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

// InitAppStats registers the process level instruments and the go runtime
// instrumentation against the global meter provider. Only the first call
// takes effect.
func InitAppStats(name string) (err error) {
	once.Do(func() {
		meter := otel.Meter(
			meterName(name),
			metric.WithInstrumentationVersion(otelruntime.Version()),
		)
		proc, procErr := process.NewProcess(int32(os.Getpid()))
		if procErr != nil {
			err = procErr
			return
		}
		stats = &appStats{
			goroutines: lo.Must(meter.Int64ObservableUpDownCounter(
				"app.core.goroutines",
				metric.WithDescription(`The application goroutines' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.NumGoroutine()))
					return nil
				}),
			)),
			processes: lo.Must(meter.Int64ObservableUpDownCounter(
				"app.core.processes",
				metric.WithDescription(`The application processes' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.GOMAXPROCS(0)))
					return nil
				}),
			)),
			rss: lo.Must(meter.Int64ObservableGauge(
				"app.core.rss",
				metric.WithUnit("By"),
				metric.WithDescription(`The application resident set size.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					mem, err := proc.MemoryInfoWithContext(ctx)
					if err != nil {
						return err
					}
					ob.Observe(int64(mem.RSS))
					return nil
				}),
			)),
		}
		err = otelruntime.Start()
	})
	return err
}
