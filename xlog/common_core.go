package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ xLogCore = (*commonCore)(nil)

type commonCore struct {
	lvlEnabler zapcore.LevelEnabler
	lvlEnc     zapcore.LevelEncoder
	tsEnc      zapcore.TimeEncoder
	ws         zapcore.WriteSyncer
	enc        func(cfg zapcore.EncoderConfig) zapcore.Encoder
	core       zapcore.Core
}

func (cc *commonCore) timeEncoder() zapcore.TimeEncoder                            { return cc.tsEnc }
func (cc *commonCore) levelEncoder() zapcore.LevelEncoder                          { return cc.lvlEnc }
func (cc *commonCore) writeSyncer() zapcore.WriteSyncer                            { return cc.ws }
func (cc *commonCore) outEncoder() func(cfg zapcore.EncoderConfig) zapcore.Encoder { return cc.enc }
func (cc *commonCore) Enabled(lvl zapcore.Level) bool {
	return cc.lvlEnabler.Enabled(lvl)
}

func (cc *commonCore) With(fields []zap.Field) zapcore.Core {
	return cc.core.With(fields)
}

func (cc *commonCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return cc.core.Check(ent, ce)
}

func (cc *commonCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return cc.core.Write(ent, fields)
}

func (cc *commonCore) Sync() error {
	return cc.core.Sync()
}

// WrapCore rebuilds core with another encoder config. The level still
// follows the wrapped core.
func WrapCore(core xLogCore, cfg zapcore.EncoderConfig) (xLogCore, error) {
	if core == nil {
		return nil, ErrNilCore
	}
	return WrapCoreNewLevelEnabler(core, zap.LevelEnablerFunc(core.Enabled), cfg)
}

// WrapCoreNewLevelEnabler rebuilds core with another encoder config and
// an independent level.
func WrapCoreNewLevelEnabler(core xLogCore, lvlEnabler zapcore.LevelEnabler, cfg zapcore.EncoderConfig) (xLogCore, error) {
	if core == nil || lvlEnabler == nil {
		return nil, ErrNilCore
	}
	cfg.EncodeLevel = core.levelEncoder()
	cfg.EncodeTime = core.timeEncoder()

	cc := &commonCore{
		ws:         core.writeSyncer(),
		enc:        core.outEncoder(),
		lvlEnabler: lvlEnabler,
		lvlEnc:     core.levelEncoder(),
		tsEnc:      core.timeEncoder(),
	}
	cc.core = zapcore.NewCore(cc.enc(cfg), cc.ws, cc.lvlEnabler)
	return cc, nil
}

func componentCoreEncoderCfg() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		TimeKey:       "ts",
		CallerKey:     coreKeyIgnored,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		FunctionKey:   coreKeyIgnored,
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
}

// newComponentLogger derives a named child of parent. The child writes
// through the cores of parent with the component encoder config. A nil
// lvlEnabler makes the child follow the level of parent.
func newComponentLogger(parent XLogger, name string, lvlEnabler zapcore.LevelEnabler) *xLogger {
	p, ok := parent.(*xLogger)
	if !ok || p.zap() == nil {
		panic(ErrNilCore)
	}
	wrap := func(core xLogCore) (xLogCore, error) {
		if lvlEnabler == nil {
			return WrapCore(core, componentCoreEncoderCfg())
		}
		return WrapCoreNewLevelEnabler(core, lvlEnabler, componentCoreEncoderCfg())
	}
	l := &xLogger{
		ctxFields:           p.ctxFields,
		dynamicLevelEnabler: p.dynamicLevelEnabler,
		writer:              p.writer,
		encoder:             p.encoder,
	}
	l.logger.Store(p.zap().
		Named(name).
		WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			if core == nil {
				panic(ErrNilCore)
			}
			var (
				cc  xLogCore
				err error
			)
			switch c := core.(type) {
			case xLogMultiCore:
				cc, err = WrapCores(c, wrap)
			case xLogCore:
				cc, err = wrap(c)
			default:
				panic(ErrNotXLogCore)
			}
			if err != nil {
				panic(err)
			}
			return cc
		})),
	)
	return l
}
