package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xlinear/lib/hrtime"
	"github.com/benz9527/xlinear/lib/linear"
	"github.com/benz9527/xlinear/xlog"
)

// stepClock advances by step on every monotonic reading.
type stepClock struct {
	step  time.Duration
	ticks atomic.Int64
	now   time.Time
}

var _ hrtime.Clock = (*stepClock)(nil)

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{step: step, now: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *stepClock) NowInUTC() time.Time { return c.now }
func (c *stepClock) MonotonicElapsed() time.Duration {
	return time.Duration(c.ticks.Add(1)) * c.step
}

func fixedRSS(rss uint64) rssSampler {
	return func(context.Context) (uint64, error) { return rss, nil }
}

type memSink struct {
	lock    sync.Mutex
	batches [][]Result
	closed  bool
	err     error
}

func (s *memSink) Write(_ context.Context, results []Result) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.batches = append(s.batches, append([]Result(nil), results...))
	return s.err
}

func (s *memSink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.closed = true
	return nil
}

func testLogger() xlog.XLogger {
	return xlog.NewXLogger(xlog.WithXLoggerLevel(xlog.LogLevelError))
}

func TestParseKinds(t *testing.T) {
	testcases := []struct {
		name     string
		expected []Kind
		err      error
	}{
		{"list", []Kind{KindList}, nil},
		{" Vector ", []Kind{KindVector}, nil},
		{"all", []Kind{KindList, KindVector}, nil},
		{"ALL", []Kind{KindList, KindVector}, nil},
		{"deque", nil, ErrUnknownKind},
		{"", nil, ErrUnknownKind},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			kinds, err := ParseKinds(tc.name)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, kinds)
		})
	}
	kinds, err := ParseKinds("all")
	require.NoError(t, err)
	kinds[0] = KindVector
	require.Equal(t, KindList, Kinds[0])
}

func TestSubjects_EraseEnds(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			s, err := newSubject(kind)
			require.NoError(t, err)
			require.ErrorIs(t, s.eraseFront(), linear.ErrInvalidPosition)
			require.Error(t, s.eraseBack())

			for _, v := range []string{"a", "b", "c", "d"} {
				s.Append(v)
			}
			require.NoError(t, s.eraseFront())
			require.NoError(t, s.eraseBack())
			require.Equal(t, []string{"b", "c"}, s.ToSlice())
			require.NoError(t, s.eraseBack())
			require.NoError(t, s.eraseBack())
			require.True(t, s.IsEmpty())
			require.Error(t, s.eraseBack())
		})
	}
	_, err := newSubject(Kind("deque"))
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestRunPhase(t *testing.T) {
	for _, kind := range Kinds {
		for _, phase := range Phases {
			t.Run(string(kind)+"/"+string(phase), func(t *testing.T) {
				clock := newStepClock(time.Millisecond)
				elapsed, err := runPhase(kind, phase, 1000, clock)
				require.NoError(t, err)
				require.Equal(t, time.Millisecond, elapsed)
			})
		}
	}
	_, err := runPhase(KindList, Phase("shuffle"), 10, newStepClock(time.Millisecond))
	require.Error(t, err)
	_, err = runPhase(Kind("deque"), PhaseAppend, 10, newStepClock(time.Millisecond))
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestRunPhase_MonotonicClock(t *testing.T) {
	elapsed, err := runPhase(KindVector, PhaseAppend, 10000, hrtime.DefaultClock)
	require.NoError(t, err)
	require.Greater(t, elapsed, time.Duration(0))
}

func TestSmoke(t *testing.T) {
	for _, kind := range Kinds {
		report, err := Smoke(context.Background(), kind, 5000)
		require.NoError(t, err)
		require.Equal(t, kind, report.Kind)
		require.Equal(t, int64(5000), report.Repeat)
		require.GreaterOrEqual(t, report.Elapsed, time.Duration(0))
	}

	_, err := Smoke(context.Background(), KindList, 0)
	require.ErrorIs(t, err, ErrInvalidRepeat)
	_, err = Smoke(context.Background(), Kind("deque"), 1)
	require.ErrorIs(t, err, ErrUnknownKind)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := Smoke(ctx, KindVector, 10)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, report.Repeat)
}

func TestResult_OpsPerSecond(t *testing.T) {
	res := Result{Repeat: 1000, Elapsed: 500 * time.Millisecond}
	require.InDelta(t, 2000.0, res.OpsPerSecond(), 1e-9)
	require.Zero(t, Result{Repeat: 10}.OpsPerSecond())
}
