package bench

import (
	"context"
	"time"

	"github.com/benz9527/xlinear/lib/hrtime"
	"github.com/benz9527/xlinear/lib/infra"
)

// SmokeReport summarizes a smoke run.
type SmokeReport struct {
	Kind    Kind
	Repeat  int64
	Elapsed time.Duration
}

// Smoke constructs a fresh container of kind and appends one element to
// it, repeat times. The context is checked every 1024 rounds.
func Smoke(ctx context.Context, kind Kind, repeat int64) (SmokeReport, error) {
	report := SmokeReport{Kind: kind}
	if repeat <= 0 {
		return report, ErrInvalidRepeat
	}
	begin := hrtime.DefaultClock.MonotonicElapsed()
	for i := int64(0); i < repeat; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return report, err
			}
		}
		s, err := newSubject(kind)
		if err != nil {
			return report, err
		}
		s.Append(payload)
		if s.Len() != 1 {
			return report, infra.NewErrorStack("[bench] smoke append lost the element")
		}
		report.Repeat++
	}
	report.Elapsed = hrtime.DefaultClock.MonotonicElapsed() - begin
	return report, nil
}
