package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// AnnotateError attaches slog key-value pairs to err. When the error (or
// anything wrapping it, including errors.Join) is logged through a logger
// from ConfigureLoggingWithOptions, the pairs are added to the record.
// It returns nil if err is nil.
//
// Example:
//
//	if err := codec.SaveFile(ctx, path, set); err != nil {
//	    return logger.AnnotateError(err, "path", path)
//	}
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Time{}, slog.LevelDebug, "", 0)
	r.Add(args...)

	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return &annotatedError{err: err, attrs: attrs}
}

type annotatedError struct {
	err   error
	attrs []slog.Attr
}

func (a *annotatedError) Error() string { return a.err.Error() }

func (a *annotatedError) Unwrap() error { return a.err }

// annotations collects the attributes of every annotated error in err's
// tree, outermost first.
func annotations(err error) []slog.Attr {
	var out []slog.Attr

	var walk func(error)

	walk = func(e error) {
		if e == nil {
			return
		}

		if a, ok := e.(*annotatedError); ok { //nolint:errorlint
			out = append(out, a.attrs...)
		}

		switch u := e.(type) { //nolint:errorlint
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		}
	}

	walk(err)

	return out
}

// annotatingHandler expands annotated errors into record attributes before
// delegating to inner.
type annotatingHandler struct {
	inner slog.Handler
}

var _ slog.Handler = (*annotatingHandler)(nil)

func (h *annotatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *annotatingHandler) Handle(ctx context.Context, record slog.Record) error {
	var extra []slog.Attr

	record.Attrs(func(attr slog.Attr) bool {
		if err, ok := attr.Value.Any().(error); ok {
			var target *annotatedError
			if errors.As(err, &target) {
				extra = append(extra, annotations(err)...)
			}
		}

		return true
	})

	if len(extra) == 0 {
		return h.inner.Handle(ctx, record)
	}

	r := record.Clone()
	r.AddAttrs(extra...)

	return h.inner.Handle(ctx, r)
}

func (h *annotatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &annotatingHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *annotatingHandler) WithGroup(name string) slog.Handler {
	return &annotatingHandler{inner: h.inner.WithGroup(name)}
}
