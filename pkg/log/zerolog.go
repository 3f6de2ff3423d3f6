package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	perrors "github.com/YuminosukeSato/polyfit/pkg/errors"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

func (l *ZerologLogger) Debug(msg string, fields ...any) { l.write(l.zl.Debug(), msg, fields) }
func (l *ZerologLogger) Info(msg string, fields ...any)  { l.write(l.zl.Info(), msg, fields) }
func (l *ZerologLogger) Warn(msg string, fields ...any)  { l.write(l.zl.Warn(), msg, fields) }
func (l *ZerologLogger) Error(msg string, fields ...any) { l.write(l.zl.Error(), msg, fields) }

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(fields[i]), fields[i+1])
	}
	return &ZerologLogger{zl: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zl := toZerologLevel(level)
	return zl >= l.zl.GetLevel() && zl >= zerolog.GlobalLevel()
}

func (l *ZerologLogger) write(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			addError(e, err)
			fields = fields[1:]
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		addField(e, fmt.Sprint(fields[i]), fields[i+1])
	}
	e.Msg(msg)
}

// addError logs err, its stack trace and, when the error type knows how to
// describe itself, its structured detail.
func addError(e *zerolog.Event, err error) {
	e.Err(err)
	if st := extractStacktrace(err); st != "" {
		e.Str(StacktraceAttrKey, st)
	}
	var m zerolog.LogObjectMarshaler
	if errors.As(err, &m) {
		e.Object("error_detail", m)
	}
}

func addField(e *zerolog.Event, key string, v any) {
	switch val := v.(type) {
	case string:
		e.Str(key, val)
	case int:
		e.Int(key, val)
	case int64:
		e.Int64(key, val)
	case float64:
		e.Float64(key, val)
	case bool:
		e.Bool(key, val)
	case []float64:
		e.Floats64(key, val)
	case time.Duration:
		e.Dur(key, val)
	case error:
		e.AnErr(key, val)
	default:
		e.Interface(key, val)
	}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologProvider is the default LoggerProvider.
type zerologProvider struct {
	mu    sync.RWMutex
	out   io.Writer
	level Level
	base  *ZerologLogger
}

func newZerologProvider(out io.Writer, level Level) *zerologProvider {
	return &zerologProvider{out: out, level: level, base: NewZerologLogger(out, level)}
}

func (p *zerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.base
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

func (p *zerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.base = NewZerologLogger(p.out, level)
}

func (p *zerologProvider) setOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
	p.base = NewZerologLogger(w, p.level)
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = newZerologProvider(os.Stderr, LevelInfo)
)

func init() {
	perrors.SetZerologWarnFunc(func(w error) {
		GetLoggerWithName("warnings").Warn("polyfit warning", w)
	})
}

// SetProvider replaces the process-wide LoggerProvider and returns the
// previous one.
func SetProvider(p LoggerProvider) LoggerProvider {
	providerMu.Lock()
	defer providerMu.Unlock()
	prev := provider
	provider = p
	return prev
}

func currentProvider() LoggerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	return currentProvider().GetLogger()
}

// GetLoggerWithName returns a logger tagged with ComponentKey=name.
func GetLoggerWithName(name string) Logger {
	return currentProvider().GetLoggerWithName(name)
}

// SetGlobalLevel sets the level of the current provider.
func SetGlobalLevel(level Level) {
	currentProvider().SetLevel(level)
}

// SetOutput redirects the default zerolog provider. It has no effect when a
// custom provider is installed.
func SetOutput(w io.Writer) {
	if p, ok := currentProvider().(*zerologProvider); ok {
		p.setOutput(w)
	}
}
