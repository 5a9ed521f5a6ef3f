package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const LevelCritical = slog.Level(12)

const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatPlain = "plain"
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
	Enabled(level slog.Level) bool
}

// Options controls handler construction. Zero values give info level
// colored text without a service attribute.
type Options struct {
	Level     slog.Level
	Format    string
	Service   string
	AddSource bool
}

type slogLogger struct {
	base *slog.Logger
}

// OptionsFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SOURCE and SERVICE_NAME.
// Development defaults to debug text output, everything else to info JSON.
func OptionsFromEnv() Options {
	env := normalize(os.Getenv("ENV"))
	return Options{
		Level:     levelFromString(os.Getenv("LOG_LEVEL"), env == "development"),
		Format:    formatFromString(os.Getenv("LOG_FORMAT"), env == "development"),
		Service:   strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		AddSource: normalize(os.Getenv("LOG_SOURCE")) == "true",
	}
}

func NewFromEnv() Logger {
	return New(os.Stdout, OptionsFromEnv())
}

func New(output io.Writer, opts Options) Logger {
	var handler slog.Handler
	switch normalize(opts.Format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: renameCritical,
		})
	case FormatPlain:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: renameCritical,
		})
	default:
		handler = tint.NewHandler(output, &tint.Options{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			TimeFormat:  time.DateTime,
			ReplaceAttr: renameCritical,
		})
	}

	base := slog.New(handler)
	if opts.Service != "" {
		base = base.With("service", opts.Service)
	}
	return &slogLogger{base: base}
}

// Discard returns a logger that drops every record.
func Discard() Logger {
	return New(io.Discard, Options{Level: LevelCritical + 1, Format: FormatPlain})
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError records an expected failure such as a rejected request.
func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Warn(message, append([]any{"err", err}, args...)...)
}

// InternalError records a failure that needs attention.
func (l *slogLogger) InternalError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Error(message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func (l *slogLogger) Enabled(level slog.Level) bool {
	return l.base.Enabled(context.Background(), level)
}

func levelFromString(value string, development bool) slog.Level {
	switch normalize(value) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	case "info":
		return slog.LevelInfo
	}
	if development {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func formatFromString(value string, development bool) string {
	switch format := normalize(value); format {
	case FormatJSON, FormatText, FormatPlain:
		return format
	}
	if development {
		return FormatText
	}
	return FormatJSON
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
