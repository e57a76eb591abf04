package logger

import (
	"sync/atomic"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap/zapcore"
)

var rollbarEnabled atomic.Bool

func configureRollbar(opts Options) {
	rollbar.SetToken(opts.RollbarToken)
	rollbar.SetEnvironment(opts.Environment)
	rollbar.SetCodeVersion(opts.Version)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbarEnabled.Store(true)
}

func waitRollbar() {
	if rollbarEnabled.Load() {
		rollbar.Wait()
	}
}

// rollbarCore forwards entries at or above its level to Rollbar. Structured fields
// become the item's custom data.
type rollbarCore struct {
	zapcore.LevelEnabler
	fields []zapcore.Field
	report func(level string, args ...interface{})
}

func newRollbarCore(enab zapcore.LevelEnabler) *rollbarCore {
	return &rollbarCore{LevelEnabler: enab, report: rollbar.Log}
}

func (c *rollbarCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

func (c *rollbarCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *rollbarCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	var cause error
	for _, f := range append(c.fields, fields...) {
		if f.Type == zapcore.ErrorType {
			if err, ok := f.Interface.(error); ok && cause == nil {
				cause = err
			}
		}
		f.AddTo(enc)
	}

	args := []interface{}{ent.Message, enc.Fields}
	if cause != nil {
		args = append(args, cause)
	}
	c.report(rollbarLevel(ent.Level), args...)
	return nil
}

func (c *rollbarCore) Sync() error {
	return nil
}

func rollbarLevel(l zapcore.Level) string {
	switch {
	case l >= zapcore.DPanicLevel:
		return rollbar.CRIT
	case l == zapcore.ErrorLevel:
		return rollbar.ERR
	case l == zapcore.WarnLevel:
		return rollbar.WARN
	case l == zapcore.InfoLevel:
		return rollbar.INFO
	default:
		return rollbar.DEBUG
	}
}
