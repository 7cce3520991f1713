// Command flatsetctl keeps an ordered set of strings in memory and lets you
// query and edit it, either interactively or from a script on stdin.
//
//	flatsetctl --order=natural --load=words.fset --save=words.fset
//	echo "insert file10 file2 file1" | flatsetctl --batch --order=natural
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/amp-labs/flatset/cli"
	"github.com/amp-labs/flatset/logger"
	"github.com/amp-labs/flatset/telemetry"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

var version = "dev" //nolint:gochecknoglobals

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, ferr.Message) //nolint:errcheck

			return 0
		}

		fmt.Fprintln(os.Stderr, err) //nolint:errcheck

		return 2 //nolint:mnd
	}

	level, err := logger.ParseLevel(opts.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:errcheck

		return 2 //nolint:mnd
	}

	logger.ConfigureLoggingWithOptions(logger.Options{
		Subsystem: "flatsetctl",
		JSON:      opts.LogJSON,
		MinLevel:  level,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.With(ctx, "session", uuid.NewString())
	log := logger.Get(ctx)

	if err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    "flatsetctl",
		ServiceVersion: version,
		Endpoint:       opts.OTLPEndpoint,
		Enabled:        opts.OTLPEndpoint != "",
		Timeout:        shutdownTimeout,
	}); err != nil {
		log.Error("starting tracing", "error", err)

		return 2 //nolint:mnd
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	session, err := newSession(opts, os.Stdout)
	if err != nil {
		log.Error("invalid configuration", "error", err)

		return 2 //nolint:mnd
	}

	if len(opts.Load) > 0 {
		if err := session.load(ctx, opts.Load); err != nil {
			log.Error("loading snapshots failed", "error", err)

			return 1
		}
	}

	if opts.MetricsAddr != "" {
		srv := serveMetrics(ctx, opts.MetricsAddr)

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("stopping metrics server", "error", err)
			}
		}()
	}

	log.Info("session started", "order", opts.Order, "reverse", opts.Reverse, "elements", session.set.Size())

	if opts.NoBanner {
		cli.SuppressBanners(true)
	}

	if !opts.Batch && isatty.IsTerminal(os.Stdin.Fd()) {
		session.confirm = cli.PromptConfirm
		session.choose = cli.MultiSelect

		fmt.Println(banner(opts, session, cli.TerminalWidth())) //nolint:forbidigo

		err = interactive(ctx, session)
	} else {
		err = batch(ctx, session, os.Stdin, os.Stderr)
	}

	code := 0
	if err != nil {
		log.Error("session failed", "error", err)

		code = 1
	}

	if err := session.Close(context.WithoutCancel(ctx)); err != nil {
		log.Error("saving snapshot failed", "error", err)

		code = 1
	}

	log.Info("session ended", "elements", session.set.Size())

	return code
}

// banner summarises the session a terminal user is about to work with.
func banner(opts *Options, s *Session, width int) string {
	order := opts.Order
	if opts.Reverse {
		order += ", reversed"
	}

	fields := []cli.Field{
		{Label: "order", Value: order},
		{Label: "elements", Value: strconv.Itoa(s.set.Size())},
	}

	if s.budget != nil {
		fields = append(fields, cli.Field{
			Label: "budget",
			Value: fmt.Sprintf("%d of %d used", s.budget.Used(), s.budget.Limit()),
		})
	}

	if s.savePath != "" {
		fields = append(fields, cli.Field{Label: "saves to", Value: s.savePath})
	}

	return cli.Summary("flatsetctl\ntype help for commands", fields, width)
}

func serveMetrics(ctx context.Context, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get(ctx).Error("metrics server failed", "addr", addr, "error", err)
		}
	}()

	logger.Get(ctx).Info("serving metrics", "addr", addr)

	return srv
}
