package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/amp-labs/flatset/alloc"
	"github.com/amp-labs/flatset/flatset"
	"github.com/amp-labs/flatset/logger"
	"github.com/amp-labs/flatset/snapshot"
	"github.com/amp-labs/flatset/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "github.com/amp-labs/flatset/cmd/flatsetctl"

var (
	// ErrUnknownCommand is returned for a line whose first word is not a command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command gets the wrong arguments.
	ErrUsage = errors.New("usage")
)

type command struct {
	args string
	help string
	run  func(s *Session, ctx context.Context, args []string) error //nolint:revive
}

var commands = map[string]command{ //nolint:gochecknoglobals
	"insert":      {"value...", "insert values", (*Session).insert},
	"hint":        {"index value", "insert value with a position hint", (*Session).hint},
	"erase":       {"[value...]", "erase values, pick them interactively when none are given", (*Session).erase},
	"erase-range": {"lo hi", "erase the values in [lo, hi)", (*Session).eraseRange},
	"find":        {"value", "show the position of value", (*Session).find},
	"contains":    {"value", "report whether value is present", (*Session).contains},
	"lower":       {"value", "show the first element not ordered before value", (*Session).lower},
	"upper":       {"value", "show the first element ordered after value", (*Session).upper},
	"range":       {"lo hi", "list the values in [lo, hi)", (*Session).between},
	"list":        {"", "list every value in order", (*Session).list},
	"rlist":       {"", "list every value in reverse order", (*Session).rlist},
	"first":       {"", "show the smallest value", (*Session).first},
	"last":        {"", "show the largest value", (*Session).last},
	"size":        {"", "show size, capacity and budget", (*Session).size},
	"clear":       {"", "erase everything", (*Session).clear},
	"save":        {"[path]", "write a snapshot", (*Session).save},
	"load":        {"path...", "merge snapshots into the set", (*Session).load},
}

// Session is one FlatSet[string] and the commands that act on it.
type Session struct {
	set      *flatset.FlatSet[string]
	budget   *alloc.Budget
	codec    snapshot.Codec[string]
	savePath string
	workers  int
	out      io.Writer

	// confirm asks before destructive commands. Nil means proceed.
	confirm func(label string) (bool, error)
	// choose picks values for erase without arguments. Nil disables it.
	choose func(label string, choices ...string) ([]string, error)
}

// newSession builds an empty session configured by opts. Output goes to out.
func newSession(opts *Options, out io.Writer) (*Session, error) {
	less, err := newComparator(opts.Order, opts.Locale, opts.Reverse)
	if err != nil {
		return nil, err
	}

	format, err := snapshot.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	compression, err := snapshot.ParseCompression(opts.Compression)
	if err != nil {
		return nil, err
	}

	a, budget := newAllocator(opts.Budget)

	return &Session{
		set:    flatset.NewWithComparator(less, flatset.WithAllocator(a)),
		budget: budget,
		codec: snapshot.Codec[string]{
			Format:      format,
			Compression: compression,
			Comparator:  less,
			Allocator:   a,
		},
		savePath: opts.Save,
		workers:  opts.Workers,
		out:      out,
	}, nil
}

// Exec runs one command line. It reports true when the line asks to quit.
// Blank lines and lines starting with # do nothing.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		s.help()

		return false, nil
	}

	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w %q, try help", ErrUnknownCommand, name)
	}

	logger.Get(ctx).Debug("running command", "command", name, "args", len(args))

	ctx, span := telemetry.Start(ctx, tracerName, "flatsetctl."+name, attribute.Int("command.args", len(args)))

	err := cmd.run(s, ctx, args)
	observe(name, err, s)

	span.SetAttributes(attribute.Int("set.size", s.set.Size()))
	telemetry.End(span, err)

	if errors.Is(err, ErrUsage) {
		return false, fmt.Errorf("%w: %s", ErrUsage, strings.TrimSpace(name+" "+cmd.args))
	}

	return false, err
}

// Close writes the exit snapshot, if one is configured, and returns the
// set's buffer to its allocator.
func (s *Session) Close(ctx context.Context) error {
	defer s.set.Release()

	if s.savePath == "" {
		return nil
	}

	return s.codec.SaveFile(ctx, s.savePath, s.set)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...) //nolint:errcheck
}

func (s *Session) printAt(it flatset.Iterator[string]) {
	if it.IsEnd() {
		s.printf("end\n")

		return
	}

	s.printf("%d %s\n", it.Index(), it.Value())
}

func (s *Session) help() {
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		cmd := commands[name]
		s.printf("  %-28s %s\n", strings.TrimSpace(name+" "+cmd.args), cmd.help)
	}

	s.printf("  %-28s %s\n", "help", "show this list")
	s.printf("  %-28s %s\n", "quit", "leave")
}

func (s *Session) insert(_ context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	added := 0

	for _, v := range args {
		_, ok, err := s.set.Insert(v)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", v, err)
		}

		if ok {
			added++
		}
	}

	s.printf("inserted %d of %d\n", added, len(args))

	return nil
}

func (s *Session) hint(_ context.Context, args []string) error {
	if len(args) != 2 { //nolint:mnd
		return ErrUsage
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: index %q: %w", ErrUsage, args[0], err)
	}

	it, err := s.set.InsertHint(s.set.Begin().Advance(idx), args[1])
	if err != nil {
		return fmt.Errorf("inserting %q: %w", args[1], err)
	}

	s.printAt(it)

	return nil
}

func (s *Session) erase(_ context.Context, args []string) error {
	if len(args) == 0 {
		if s.choose == nil || s.set.Empty() {
			return ErrUsage
		}

		picked, err := s.choose("erase", s.set.Entries()...)
		if err != nil {
			return err
		}

		args = picked
	}

	erased := 0
	for _, v := range args {
		erased += s.set.EraseKey(v)
	}

	s.printf("erased %d\n", erased)

	return nil
}

func (s *Session) eraseRange(_ context.Context, args []string) error {
	if len(args) != 2 { //nolint:mnd
		return ErrUsage
	}

	first := s.set.LowerBound(args[0])
	last := s.set.LowerBound(args[1])

	erased := first.Distance(last)
	if erased <= 0 {
		s.printf("erased 0\n")

		return nil
	}

	s.set.EraseRange(first, last)
	s.printf("erased %d\n", erased)

	return nil
}

func (s *Session) find(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	it := s.set.Find(args[0])
	if it.IsEnd() {
		s.printf("not found\n")

		return nil
	}

	s.printAt(it)

	return nil
}

func (s *Session) contains(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	s.printf("%t\n", s.set.Contains(args[0]))

	return nil
}

func (s *Session) lower(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	s.printAt(s.set.LowerBound(args[0]))

	return nil
}

func (s *Session) upper(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	s.printAt(s.set.UpperBound(args[0]))

	return nil
}

func (s *Session) between(_ context.Context, args []string) error {
	if len(args) != 2 { //nolint:mnd
		return ErrUsage
	}

	for _, v := range s.set.Between(args[0], args[1]) {
		s.printf("%s\n", v)
	}

	return nil
}

func (s *Session) list(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	for i, v := range s.set.All() {
		s.printf("%d %s\n", i, v)
	}

	return nil
}

func (s *Session) rlist(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	for it := s.set.RBegin(); !it.Equal(s.set.REnd()); it = it.Next() {
		s.printf("%d %s\n", it.Index(), it.Value())
	}

	return nil
}

func (s *Session) first(_ context.Context, args []string) error {
	return s.edge(args, s.set.First)
}

func (s *Session) last(_ context.Context, args []string) error {
	return s.edge(args, s.set.Last)
}

func (s *Session) edge(args []string, get func() (string, bool)) error {
	if len(args) != 0 {
		return ErrUsage
	}

	if v, ok := get(); ok {
		s.printf("%s\n", v)
	} else {
		s.printf("empty\n")
	}

	return nil
}

func (s *Session) size(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	s.printf("size %d capacity %d\n", s.set.Size(), s.set.Capacity())

	if s.budget != nil {
		s.printf("budget %d of %d used\n", s.budget.Used(), s.budget.Limit())
	}

	return nil
}

func (s *Session) clear(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	if s.confirm != nil && !s.set.Empty() {
		ok, err := s.confirm(fmt.Sprintf("Erase all %d elements", s.set.Size()))
		if err != nil {
			return err
		}

		if !ok {
			s.printf("cancelled\n")

			return nil
		}
	}

	n := s.set.Size()
	s.set.Clear()

	logger.Get(ctx).Info("cleared set", "elements", n)
	s.printf("erased %d\n", n)

	return nil
}

func (s *Session) save(ctx context.Context, args []string) error {
	path := s.savePath

	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return ErrUsage
	}

	if path == "" {
		return ErrUsage
	}

	if err := s.codec.SaveFile(ctx, path, s.set); err != nil {
		return err
	}

	s.printf("saved %d to %s\n", s.set.Size(), path)

	return nil
}

func (s *Session) load(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	// Decoded sets live on the heap so only the session set draws from
	// the budget.
	decode := s.codec
	decode.Allocator = nil

	loaded, err := snapshot.LoadFiles(ctx, decode, s.workers, args...)
	if err != nil {
		return err
	}

	defer loaded.Release()

	before := s.set.Size()

	if err := s.set.InsertRange(loaded.Entries()); err != nil {
		return fmt.Errorf("merging: %w", err)
	}

	s.printf("loaded %d, added %d\n", loaded.Size(), s.set.Size()-before)

	return nil
}
