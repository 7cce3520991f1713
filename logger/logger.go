// Package logger configures log/slog for flatset programs and hands out
// loggers scoped by context.
//
// Call ConfigureLoggingWithOptions once at startup. Library code then calls
// Get(ctx) and gets a logger carrying the subsystem and any values attached
// to ctx with With.
package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// subsystem is the default subsystem name set by ConfigureLoggingWithOptions.
var subsystem atomic.Value //nolint:gochecknoglobals

// configMutex serializes ConfigureLoggingWithOptions, which swaps global
// state (slog.SetDefault and log.Default).
var configMutex sync.Mutex //nolint:gochecknoglobals

type contextKey string

const (
	keySubsystem contextKey = "subsystem"
	keyMuted     contextKey = "mute"
	keyValues    contextKey = "loggerValues"
	keyBase      contextKey = "baseLogger"
)

// Options is used to configure logging.
type Options struct {
	// Subsystem names the program; it is attached to every record.
	Subsystem string
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
	// MinLevel drops records below this level.
	MinLevel slog.Level
	// Output defaults to os.Stderr.
	Output io.Writer
}

// ConfigureLoggingWithOptions installs a slog default logger built from
// opts, redirects the standard log package into it and returns it.
//
// Errors logged through the returned logger that were annotated with
// AnnotateError have their attributes expanded into the record.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	handler = &annotatingHandler{inner: handler}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Third-party code using the log package ends up here too.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, slog.LevelInfo)

	subsystem.Store(opts.Subsystem)

	return logger
}

// ParseLevel accepts the slog level names (debug, info, warn, error), in any
// case, optionally with an offset such as "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}

// WithMuted marks ctx so that loggers obtained from it discard everything.
func WithMuted(ctx context.Context, muted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, keyMuted, muted)
}

func isMuted(ctx context.Context) bool {
	muted, ok := ctx.Value(keyMuted).(bool)

	return ok && muted
}

// WithSubsystem overrides the subsystem for loggers obtained from ctx.
func WithSubsystem(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, keySubsystem, name)
}

// GetSubsystem returns the subsystem set on ctx, or the configured default.
func GetSubsystem(ctx context.Context) string { //nolint:contextcheck
	if ctx == nil {
		ctx = context.Background()
	}

	if name, ok := ctx.Value(keySubsystem).(string); ok {
		return name
	}

	if name, ok := subsystem.Load().(string); ok {
		return name
	}

	return ""
}

// With returns a context whose loggers carry the given key-value pairs in
// addition to any already attached.
//
// Example:
//
//	ctx = logger.With(ctx, "session", id)
//	logger.Get(ctx).Info("loaded snapshot") // ... session=<id>
func With(ctx context.Context, values ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(values) == 0 {
		return ctx
	}

	prev := getValues(ctx)
	vals := make([]any, 0, len(prev)+len(values))
	vals = append(vals, prev...)
	vals = append(vals, values...)

	return context.WithValue(ctx, keyValues, vals)
}

// WithLogger makes loggers obtained from ctx write through base instead of
// slog.Default(). Tests use it to route a package's logs to the test output.
func WithLogger(ctx context.Context, base *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, keyBase, base)
}

func getValues(ctx context.Context) []any {
	vals, _ := ctx.Value(keyValues).([]any)

	return vals
}

// Get returns a logger for the first non-nil context given, or for
// context.Background() if there is none.
//
//nolint:contextcheck
func Get(ctx ...context.Context) *slog.Logger {
	realCtx := context.Background()

	for _, c := range ctx {
		if c != nil {
			realCtx = c

			break
		}
	}

	if isMuted(realCtx) {
		return nullLogger
	}

	base, ok := realCtx.Value(keyBase).(*slog.Logger)
	if !ok || base == nil {
		base = slog.Default()
	}

	logger := base.With("subsystem", GetSubsystem(realCtx))

	if vals := getValues(realCtx); len(vals) > 0 {
		logger = logger.With(vals...)
	}

	return logger
}

// nullHandler discards everything; it backs muted loggers.
type nullHandler struct{}

func (n *nullHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (n *nullHandler) Handle(context.Context, slog.Record) error { return nil }
func (n *nullHandler) WithAttrs([]slog.Attr) slog.Handler        { return n }
func (n *nullHandler) WithGroup(string) slog.Handler             { return n }

var nullLogger = slog.New(&nullHandler{}) //nolint:gochecknoglobals
