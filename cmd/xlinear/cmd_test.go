package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xlinear/bench"
	"github.com/benz9527/xlinear/observability"
	"github.com/benz9527/xlinear/xlog"
)

func TestParseRepeat(t *testing.T) {
	testcases := []struct {
		args     []string
		expected int64
		wantErr  bool
	}{
		{nil, bench.DefaultRepeat, false},
		{[]string{"1"}, 1, false},
		{[]string{" 2048 "}, 2048, false},
		{[]string{"0"}, 0, true},
		{[]string{"-5"}, 0, true},
		{[]string{"abc"}, 0, true},
	}
	for _, tc := range testcases {
		repeat, err := parseRepeat(tc.args)
		if tc.wantErr {
			require.Error(t, err, tc.args)
			continue
		}
		require.NoError(t, err, tc.args)
		require.Equal(t, tc.expected, repeat)
	}
	_, err := parseRepeat([]string{"-1"})
	require.ErrorIs(t, err, bench.ErrInvalidRepeat)
}

func TestBenchFlags_Config(t *testing.T) {
	log := &logFlags{}
	cmd := newBenchCmd(log)
	require.NoError(t, cmd.ParseFlags([]string{
		"--suite", "vector",
		"--workers", "3",
		"--metrics", "stdout",
		"--sqlite", ":memory:",
		"--redis", "127.0.0.1:6379",
		"--report-dir", "reports",
	}))
	flags := &benchFlags{}
	flags.suite, _ = cmd.Flags().GetString("suite")
	flags.workers, _ = cmd.Flags().GetInt("workers")
	flags.metrics, _ = cmd.Flags().GetString("metrics")
	flags.sqlite, _ = cmd.Flags().GetString("sqlite")
	flags.redis, _ = cmd.Flags().GetString("redis")
	flags.reportDir, _ = cmd.Flags().GetString("report-dir")

	cfg, err := flags.config(log, []string{"512"})
	require.NoError(t, err)
	require.Equal(t, int64(512), cfg.repeat)
	require.Equal(t, []bench.Kind{bench.KindVector}, cfg.suites)
	require.Equal(t, 3, cfg.workers)
	require.Equal(t, observability.StdoutExporter, cfg.metrics)
	require.Equal(t, ":memory:", cfg.sqlite)
	require.Equal(t, "127.0.0.1:6379", cfg.redis)
	require.Equal(t, "reports", cfg.reportDir)
	require.NotEmpty(t, cfg.loggerOpts)
}

func TestBenchFlags_Defaults(t *testing.T) {
	cfg, err := (&benchFlags{suite: "all", metrics: "none"}).config(&logFlags{}, nil)
	require.NoError(t, err)
	require.Equal(t, bench.DefaultRepeat, cfg.repeat)
	require.Equal(t, bench.Kinds, cfg.suites)
	require.Equal(t, runtime.GOMAXPROCS(0), cfg.workers)
	require.Equal(t, observability.NoneExporter, cfg.metrics)
}

func TestBenchFlags_Invalid(t *testing.T) {
	_, err := (&benchFlags{suite: "tree", metrics: "none"}).config(&logFlags{}, nil)
	require.ErrorIs(t, err, bench.ErrUnknownKind)

	_, err = (&benchFlags{suite: "list", metrics: "otlp"}).config(&logFlags{}, nil)
	require.ErrorIs(t, err, observability.ErrUnknownExporter)

	_, err = (&benchFlags{suite: "list", metrics: "none"}).config(&logFlags{encoder: "xml"}, nil)
	require.ErrorIs(t, err, xlog.ErrUnknownEncoder)
}

func executeRoot(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRootCmd_Smoke(t *testing.T) {
	require.NoError(t, executeRoot(t, "smoke", "100", "--suite", "vector", "--log-level", "error"))
	require.NoError(t, executeRoot(t, "smoke", "100", "--log-encoder", "text", "--log-level", "error"))
	require.ErrorIs(t, executeRoot(t, "smoke", "--", "-1"), bench.ErrInvalidRepeat)
	require.ErrorIs(t, executeRoot(t, "smoke", "0"), bench.ErrInvalidRepeat)
	require.ErrorIs(t, executeRoot(t, "smoke", "10", "--suite", "all"), bench.ErrUnknownKind)
	require.Error(t, executeRoot(t, "smoke", "1", "2"))
}

func TestRootCmd_Bench(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, executeRoot(t,
		"bench", "64",
		"--report-dir", dir,
		"--sqlite", ":memory:",
		"--log-level", "error",
	))

	matches, err := filepath.Glob(filepath.Join(dir, "bench-*.jsonl"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
	}
	require.Equal(t, len(bench.Kinds)*len(bench.Phases), lines)

	require.ErrorIs(t, executeRoot(t, "bench", "--suite", "tree"), bench.ErrUnknownKind)
}

func TestRunBench_Results(t *testing.T) {
	cfg, err := (&benchFlags{suite: "list", metrics: "none", workers: 1}).config(
		&logFlags{level: "error"}, []string{"32"},
	)
	require.NoError(t, err)
	results, err := runBench(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, len(bench.Phases))
	for i, res := range results {
		require.Equal(t, bench.KindList, res.Suite)
		require.Equal(t, bench.Phases[i], res.Phase)
		require.Equal(t, int64(32), res.Repeat)
	}
}
