package hrtime

import "time"

var appStartTime time.Time

func NowInUTC() time.Time {
	return time.Now().UTC()
}

// MonotonicElapsed returns the time since the package was loaded, read from
// the Go runtime monotonic clock.
func MonotonicElapsed() time.Duration {
	return time.Since(appStartTime)
}

type sdkClockTime struct{}

func (s *sdkClockTime) NowInUTC() time.Time {
	return NowInUTC()
}

func (s *sdkClockTime) MonotonicElapsed() time.Duration {
	return MonotonicElapsed()
}
