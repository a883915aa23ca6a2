package xlog

import (
	"context"
	"testing"
	"time"

	mredisv2 "github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestGoRedisXLogger_ParentLogLevelChanged(t *testing.T) {
	var logger *GoRedisXLogger
	logger.Printf(context.TODO(), "test %d", 123)

	parentLogger, w := newTestMemXLogger(t)
	logger = NewGoRedisXLogger(parentLogger)
	parentLogger.IncreaseLogLevel(zapcore.ErrorLevel)
	logger.Printf(context.TODO(), "test %d", 123)
	logger.Printf(context.TODO(), "test failed: %d", 123)
	parentLogger.IncreaseLogLevel(zapcore.DebugLevel)
	logger.Printf(context.TODO(), "test %d%%", 456)

	lines := w.Lines(t)
	require.Len(t, lines, 2)
	require.Equal(t, "test failed: 123", lines[0]["msg"])
	require.Equal(t, "ERROR", lines[0]["lvl"])
	require.Equal(t, "test 456%", lines[1]["msg"])
	require.Equal(t, "INFO", lines[1]["lvl"])
	require.Equal(t, "GoRedis", lines[1]["component"])

	require.Panics(t, func() {
		NewGoRedisXLogger(&xLogger{})
	})
}

func TestGoRedisXLogger_MiniRedis(t *testing.T) {
	parentLogger, _ := newTestMemXLogger(t)
	logger := NewGoRedisXLogger(parentLogger)

	mredis := mredisv2.RunT(t)
	redisv9.SetLogger(logger)
	rclient := redisv9.NewClient(&redisv9.Options{
		Addr: mredis.Addr(),
		DB:   0,
	})
	defer func() { _ = rclient.Close() }()
	require.NoError(t, rclient.Set(context.TODO(), "abc", "123", 0).Err())
	cmd := rclient.BLPop(context.TODO(), 1*time.Millisecond, "abc")
	_, err := cmd.Result()
	require.Error(t, err)
	parentLogger.Debug("go redis", zap.Any("cmd", cmd.String()))
	_ = parentLogger.Sync()
}
