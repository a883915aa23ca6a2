package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ fxevent.Logger = (*FxXLogger)(nil)

// FxXLogger reports how the application graph is built and run. Building
// steps are logged at DEBUG, the start and stop of the whole application
// at INFO and every failure at ERROR.
type FxXLogger struct {
	logger XLogger
}

type fxRecord struct {
	lvl    zapcore.Level
	msg    string
	err    error
	fields []zap.Field
}

// fxRecordOf maps the events of a supply/provide/invoke graph with
// lifecycle hooks. Other events are dropped.
func fxRecordOf(event fxevent.Event) (fxRecord, bool) {
	switch e := event.(type) {
	case *fxevent.Supplied:
		return fxRecord{zapcore.DebugLevel, "supplied", e.Err, []zap.Field{
			zap.String("type", e.TypeName),
		}}, true
	case *fxevent.Provided:
		return fxRecord{zapcore.DebugLevel, "provided", e.Err, []zap.Field{
			zap.String("constructor", e.ConstructorName),
			zap.Strings("types", e.OutputTypeNames),
		}}, true
	case *fxevent.Run:
		return fxRecord{zapcore.DebugLevel, "constructed", e.Err, []zap.Field{
			zap.String("name", e.Name),
			zap.String("kind", e.Kind),
		}}, true
	case *fxevent.Invoked:
		fields := []zap.Field{zap.String("function", e.FunctionName)}
		if e.Err != nil {
			fields = append(fields, zap.String("trace", e.Trace))
		}
		return fxRecord{zapcore.DebugLevel, "invoked", e.Err, fields}, true
	case *fxevent.LoggerInitialized:
		return fxRecord{zapcore.DebugLevel, "logger initialized", e.Err, []zap.Field{
			zap.String("constructor", e.ConstructorName),
		}}, true
	case *fxevent.OnStartExecuted:
		return fxRecord{zapcore.DebugLevel, "start hook", e.Err, []zap.Field{
			zap.String("caller", e.CallerName),
			zap.Duration("runtime", e.Runtime),
		}}, true
	case *fxevent.OnStopExecuted:
		return fxRecord{zapcore.DebugLevel, "stop hook", e.Err, []zap.Field{
			zap.String("caller", e.CallerName),
			zap.Duration("runtime", e.Runtime),
		}}, true
	case *fxevent.Started:
		return fxRecord{lvl: zapcore.InfoLevel, msg: "started", err: e.Err}, true
	case *fxevent.Stopped:
		return fxRecord{lvl: zapcore.InfoLevel, msg: "stopped", err: e.Err}, true
	case *fxevent.RollingBack:
		return fxRecord{lvl: zapcore.ErrorLevel, msg: "start failed, rolling back", err: e.StartErr}, true
	case *fxevent.RolledBack:
		return fxRecord{lvl: zapcore.InfoLevel, msg: "rolled back", err: e.Err}, true
	}
	return fxRecord{}, false
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}
	rec, ok := fxRecordOf(event)
	if !ok {
		return
	}
	if rec.err != nil {
		l.logger.Error(rec.err, rec.msg, rec.fields...)
		return
	}
	switch rec.lvl {
	case zapcore.InfoLevel:
		l.logger.Info(rec.msg, rec.fields...)
	default:
		l.logger.Debug(rec.msg, rec.fields...)
	}
}

func NewFxXLogger(logger XLogger) *FxXLogger {
	return &FxXLogger{logger: newComponentLogger(logger, "Fx", nil)}
}
