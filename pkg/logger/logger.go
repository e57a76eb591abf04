package logger

import (
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Options configures the process logger.
type Options struct {
	Level        string // debug, info, warn, error (default info)
	Format       string // json or console (default json)
	ServiceName  string
	Environment  string
	Version      string
	RollbarToken string
}

// Init builds the logger described by opts and installs it as Log.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// New builds a zap logger. When a Rollbar token is set, error and above are also
// reported to Rollbar.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(opts.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if opts.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	var buildOpts []zap.Option
	if opts.RollbarToken != "" {
		configureRollbar(opts)
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, newRollbarCore(zapcore.ErrorLevel))
		}))
	}

	l, err := cfg.Build(buildOpts...)
	if err != nil {
		return nil, err
	}

	if opts.ServiceName != "" {
		l = l.With(zap.String("service_name", opts.ServiceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		l = l.With(zap.String("hostname", hostname))
	}
	return l, nil
}

// Sync flushes buffered entries and waits for pending Rollbar reports.
func Sync() {
	_ = Log.Sync()
	waitRollbar()
}

// MaskEmail hides the local part of an address for logging.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return "***"
	}
	first, size := utf8.DecodeRuneInString(email)
	if at <= size {
		return "***" + email[at:]
	}
	return string(first) + "***" + email[at:]
}
