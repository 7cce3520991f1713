package snapshot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/flatset/flatset"
	"github.com/amp-labs/flatset/logger"
	"github.com/amp-labs/flatset/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// tracerName is the instrumentation scope of snapshot spans.
const tracerName = "github.com/amp-labs/flatset/snapshot"

// SaveFile writes a snapshot of s to path. The file is written next to its
// destination and renamed into place, so readers never see a partial
// snapshot.
func (c Codec[T]) SaveFile(ctx context.Context, path string, s *flatset.FlatSet[T]) (err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "snapshot.save",
		attribute.String("snapshot.path", path),
		attribute.Int("snapshot.elements", s.Size()))
	defer func() { telemetry.End(span, err) }()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return logger.AnnotateError(fmt.Errorf("creating snapshot file: %w", err), "path", path)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)

	if err = c.Encode(ctx, w, s); err != nil {
		return logger.AnnotateError(err, "path", path)
	}

	if err = w.Flush(); err != nil {
		return logger.AnnotateError(fmt.Errorf("writing snapshot file: %w", err), "path", path)
	}

	if err = tmp.Close(); err != nil {
		return logger.AnnotateError(fmt.Errorf("closing snapshot file: %w", err), "path", path)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return logger.AnnotateError(fmt.Errorf("renaming snapshot file: %w", err), "path", path)
	}

	logger.Get(ctx).Info("saved snapshot", "path", path, "elements", s.Size())

	return nil
}

// LoadFile reads the snapshot at path.
func (c Codec[T]) LoadFile(ctx context.Context, path string) (s *flatset.FlatSet[T], err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "snapshot.load", attribute.String("snapshot.path", path))
	defer func() { telemetry.End(span, err) }()

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, logger.AnnotateError(fmt.Errorf("opening snapshot file: %w", err), "path", path)
	}
	defer f.Close() //nolint:errcheck

	s, err = c.Decode(logger.With(ctx, "path", path), bufio.NewReader(f))
	if err != nil {
		return nil, logger.AnnotateError(err, "path", path)
	}

	span.SetAttributes(attribute.Int("snapshot.elements", s.Size()))

	return s, nil
}

// LoadFiles decodes every snapshot in paths on a pool of workers and returns
// the union of their sets, ordered and allocated as the Codec says. A
// workers value below 1 means one worker per file.
//
// Every file is attempted; the returned error joins the failures of all
// files that could not be loaded, and no set is returned in that case.
//
// The per-file sets are merged pairwise with Union, so while merging the
// allocator holds every decoded set plus the running result. With a
// budgeted allocator leave about twice the combined size as headroom, or
// decode with a heap-backed Codec and copy the result into the budgeted
// set afterwards.
func LoadFiles[T any](
	ctx context.Context, c Codec[T], workers int, paths ...string,
) (out *flatset.FlatSet[T], err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "snapshot.load_files", attribute.Int("snapshot.files", len(paths)))
	defer func() { telemetry.End(span, err) }()

	if c.Comparator == nil {
		return nil, ErrNoComparator
	}

	if len(paths) == 0 {
		return flatset.NewWithComparator(c.Comparator, flatset.WithAllocator(c.Allocator)), nil
	}

	if workers < 1 || workers > len(paths) {
		workers = len(paths)
	}

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	sets := make([]*flatset.FlatSet[T], len(paths))
	errs := make([]error, len(paths))
	group := pool.NewGroup()

	for i, path := range paths {
		group.Submit(func() {
			sets[i], errs[i] = c.LoadFile(ctx, path)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}

	if err := errors.Join(errs...); err != nil {
		release(sets)

		return nil, err
	}

	out = sets[0]

	for _, s := range sets[1:] {
		merged, err := out.Union(s)
		if err != nil {
			out.Release()
			release(sets)

			return nil, err
		}

		out.Release()
		s.Release()

		out = merged
	}

	span.SetAttributes(attribute.Int("snapshot.elements", out.Size()))
	logger.Get(ctx).Info("loaded snapshots", "files", len(paths), "workers", workers, "elements", out.Size())

	return out, nil
}

func release[T any](sets []*flatset.FlatSet[T]) {
	for _, s := range sets {
		if s != nil {
			s.Release()
		}
	}
}
