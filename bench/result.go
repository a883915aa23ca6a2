package bench

import (
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap/zapcore"
)

// Result is the outcome of one phase of one suite.
type Result struct {
	Suite      Kind          `json:"suite"`
	Phase      Phase         `json:"phase"`
	Repeat     int64         `json:"repeat"`
	Elapsed    time.Duration `json:"elapsedNs"`
	RSSBytes   uint64        `json:"rssBytes"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// OpsPerSecond returns the throughput of the phase, 0 when nothing was
// measured.
func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Repeat) / r.Elapsed.Seconds()
}

func (r Result) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("suite", string(r.Suite))
	enc.AddString("phase", string(r.Phase))
	enc.AddInt64("repeat", r.Repeat)
	enc.AddDuration("elapsed", r.Elapsed)
	enc.AddFloat64("opsPerSec", r.OpsPerSecond())
	enc.AddUint64("rssBytes", r.RSSBytes)
	enc.AddTime("finishedAt", r.FinishedAt)
	return nil
}

// resultOrder sorts results by suite then phase, following Kinds and
// Phases.
func resultOrder(a, b Result) int {
	if d := lo.IndexOf(Kinds, a.Suite) - lo.IndexOf(Kinds, b.Suite); d != 0 {
		return d
	}
	return lo.IndexOf(Phases, a.Phase) - lo.IndexOf(Phases, b.Phase)
}
