//go:build !windows
// +build !windows

package hrtime

import (
	"time"

	"github.com/samber/lo"
	"golang.org/x/sys/unix"
)

var (
	SdkClock             Clock = &sdkClockTime{}
	UnixMonotonicClock   Clock = &unixNonSysClockTime{}
	DefaultClock               = UnixMonotonicClock
	unixMonotonicStartTs int64
)

func init() {
	appStartTime = time.Now()

	ts := unix.Timespec{}
	lo.Must0(unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts))
	unixMonotonicStartTs = ts.Nano()
}

// unixNonSysClockTime reads CLOCK_MONOTONIC directly, it is not affected
// by wall clock adjustments.
type unixNonSysClockTime struct{}

// NowInUTC derives the wall clock from the start time and the monotonic
// elapsed time.
func (u *unixNonSysClockTime) NowInUTC() time.Time {
	nano := appStartTime.UnixNano() + u.MonotonicElapsed().Nanoseconds()
	return time.Unix(0, nano).UTC()
}

func (u *unixNonSysClockTime) MonotonicElapsed() time.Duration {
	ts := unix.Timespec{}
	lo.Must0(unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts))
	return time.Duration(ts.Nano() - unixMonotonicStartTs)
}
