package xlog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConsoleCore(t *testing.T) {
	w := newTestMemWriter()
	lvlEnabler := zap.NewAtomicLevelAt(LogLevelDebug.zapLevel())
	cc := newConsoleCore(
		&lvlEnabler,
		JSON,
		_writerMax,
		zapcore.CapitalLevelEncoder,
		zapcore.ISO8601TimeEncoder,
	)
	require.Nil(t, cc)

	cc = newConsoleCore(
		&lvlEnabler,
		JSON,
		testMemAsOut,
		zapcore.CapitalLevelEncoder,
		zapcore.ISO8601TimeEncoder,
	)
	require.NotNil(t, cc.outEncoder())
	require.NotNil(t, cc.writeSyncer())
	require.NotNil(t, cc.levelEncoder())
	require.NotNil(t, cc.timeEncoder())
	require.NotNil(t, cc.(*consoleCore).core.lvlEnabler)
	require.NotNil(t, cc.(*consoleCore).core.core)

	require.True(t, cc.Enabled(zapcore.DebugLevel))
	require.True(t, cc.Enabled(zapcore.ErrorLevel))
	lvlEnabler.SetLevel(zapcore.ErrorLevel)
	require.False(t, cc.Enabled(zapcore.DebugLevel))
	require.False(t, cc.Enabled(zapcore.InfoLevel))
	require.False(t, cc.Enabled(zapcore.WarnLevel))
	require.True(t, cc.Enabled(zapcore.ErrorLevel))
	lvlEnabler.SetLevel(zapcore.DebugLevel)

	core := cc.With([]zap.Field{zap.String("key", "value")})
	require.NotNil(t, core)

	ent := cc.Check(zapcore.Entry{Level: zapcore.DebugLevel, Message: "console"}, nil)
	require.NotNil(t, ent)
	err := cc.Write(ent.Entry, []zap.Field{zap.String("key", "value")})
	require.NoError(t, err)
	require.NoError(t, cc.Sync())

	wrapped, err := WrapCore(cc, componentCoreEncoderCfg())
	require.NoError(t, err)
	err = wrapped.Write(zapcore.Entry{Level: zapcore.DebugLevel, LoggerName: "Component", Message: "wrapped"}, nil)
	require.NoError(t, err)

	lines := w.Lines(t)
	require.Len(t, lines, 2)
	require.Equal(t, "console", lines[0]["msg"])
	require.Equal(t, "value", lines[0]["key"])
	require.Equal(t, "DEBUG", lines[0]["lvl"])
	require.Equal(t, "wrapped", lines[1]["msg"])
	require.Equal(t, "Component", lines[1]["component"])
}
