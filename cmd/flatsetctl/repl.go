package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/flatset/cli"
	"github.com/manifoldco/promptui"
)

// ErrCommandsFailed is returned by batch when at least one line failed.
var ErrCommandsFailed = errors.New("commands failed")

// interactive prompts for commands until quit, Ctrl-D or Ctrl-C. A failing
// command is reported and the prompt continues.
func interactive(ctx context.Context, s *Session) error {
	for ctx.Err() == nil {
		line, err := cli.PromptLine("flatset")
		if err != nil {
			if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}

			return err
		}

		quit, err := s.Exec(ctx, line)
		if err != nil {
			s.printf("error: %v\n", err)
		}

		if quit {
			return nil
		}
	}

	return nil
}

// batch runs every line of r. Failures are written to errOut with their
// line number and do not stop the run; the result says whether any line
// failed.
func batch(ctx context.Context, s *Session, r io.Reader, errOut io.Writer) error {
	scanner := bufio.NewScanner(r)
	failed := 0
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		lineNo++

		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			failed++

			fmt.Fprintf(errOut, "line %d: %v\n", lineNo, err) //nolint:errcheck
		}

		if quit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d lines", ErrCommandsFailed, failed, lineNo)
	}

	return nil
}
