package observability

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// Options controls logger construction
type Options struct {
	Level    string // debug, info, warn, error; invalid values fall back to info
	Encoding string // "json" or "console"
	Output   []string
}

// NewLogger builds a zap logger. The CLI uses console encoding on stderr; the server
// uses JSON on stdout.
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(opts.Level)))); err != nil || opts.Level == "" {
		_ = level.UnmarshalText([]byte(defaultLogLevel))
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = "json"
	}
	output := opts.Output
	if len(output) == 0 {
		output = []string{"stdout"}
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       output,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// Adapter exposes a zap logger through the engine's printf-style Logger interface
type Adapter struct {
	logger *zap.SugaredLogger
}

// NewAdapter wraps logger; nil yields a no-op adapter
func NewAdapter(logger *zap.Logger) Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Adapter{logger: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (a Adapter) Debugf(format string, args ...any) { a.logger.Debugf(format, args...) }
func (a Adapter) Infof(format string, args ...any)  { a.logger.Infof(format, args...) }
func (a Adapter) Warnf(format string, args ...any)  { a.logger.Warnf(format, args...) }
func (a Adapter) Errorf(format string, args ...any) { a.logger.Errorf(format, args...) }

type loggerKey struct{}

// WithLogger injects the logger into ctx
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the request logger, defaulting to a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
