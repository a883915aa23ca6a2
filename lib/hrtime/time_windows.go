//go:build windows
// +build windows

package hrtime

import "time"

var (
	SdkClock     Clock = &sdkClockTime{}
	DefaultClock       = SdkClock
)

func init() {
	appStartTime = time.Now()
}
