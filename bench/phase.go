package bench

import (
	"time"

	"github.com/benz9527/xlinear/lib/hrtime"
	"github.com/benz9527/xlinear/lib/infra"
)

// Phase is one timed cycle of repeated container operations.
type Phase string

const (
	PhaseAppend     Phase = "append"
	PhasePrepend    Phase = "prepend"
	PhaseEraseFront Phase = "erase-front"
	PhaseEraseBack  Phase = "erase-back"
)

// Phases lists the phases of a suite in the order they run.
var Phases = []Phase{PhaseAppend, PhasePrepend, PhaseEraseFront, PhaseEraseBack}

// payload is the element every phase inserts.
const payload = "TODO"

type phaseSpec struct {
	// fill is the number of elements appended before timing starts.
	fill   func(repeat int64) int64
	op     func(s subject) error
	shrink bool
}

var phaseSpecs = map[Phase]phaseSpec{
	PhaseAppend: {
		fill: func(int64) int64 { return 0 },
		op: func(s subject) error {
			s.Append(payload)
			return nil
		},
	},
	PhasePrepend: {
		fill: func(int64) int64 { return 0 },
		op: func(s subject) error {
			s.Prepend(payload)
			return nil
		},
	},
	PhaseEraseFront: {
		fill:   func(repeat int64) int64 { return repeat },
		op:     func(s subject) error { return s.eraseFront() },
		shrink: true,
	},
	PhaseEraseBack: {
		fill:   func(repeat int64) int64 { return repeat },
		op:     func(s subject) error { return s.eraseBack() },
		shrink: true,
	},
}

// runPhase prepares a fresh container of kind and times repeat runs of
// the phase operation on it.
func runPhase(kind Kind, phase Phase, repeat int64, clock hrtime.Clock) (time.Duration, error) {
	spec, ok := phaseSpecs[phase]
	if !ok {
		return 0, infra.NewErrorStack("[bench] unknown phase " + string(phase))
	}
	s, err := newSubject(kind)
	if err != nil {
		return 0, err
	}
	filled := spec.fill(repeat)
	for i := filled; i > 0; i-- {
		s.Append(payload)
	}

	begin := clock.MonotonicElapsed()
	for i := int64(0); i < repeat; i++ {
		if err = spec.op(s); err != nil {
			return 0, infra.WrapErrorStackWithMessage(err, "[bench] "+string(kind)+" "+string(phase))
		}
	}
	elapsed := clock.MonotonicElapsed() - begin

	want := filled + repeat
	if spec.shrink {
		want = filled - repeat
	}
	if s.Len() != want {
		return elapsed, infra.NewErrorStack("[bench] " + string(kind) + " " + string(phase) + " left an unexpected length")
	}
	return elapsed, nil
}
