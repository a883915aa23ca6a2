package hrtime

import "time"

// Clock is the time source of the benchmarks. Elapsed durations are
// taken as differences of MonotonicElapsed readings.
type Clock interface {
	NowInUTC() time.Time
	MonotonicElapsed() time.Duration
}
