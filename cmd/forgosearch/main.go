// Command forgosearch loads a sorted array of integers and reports the index
// of a target value, searching it with one of the parallel strategies.
//
// Usage:
//
//	forgosearch -workers N [-key K] [-input PATH|URI] [-size N]
//	            [-strategy partitioned|cooperative|speculative]
//	            [-merge last|first|lowest]
//	            [-log-level debug|info|warn|error] [-log-format text|json]
//	            [-metrics-addr HOST:PORT]
//
// If -workers is not given, FORGOSEARCH_WORKERS is used. With -metrics-addr
// the command keeps serving Prometheus metrics after the search until it is
// interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	forGoSearch "github.com/intel/forGoSearch"
	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/metrics"
	"github.com/intel/forGoSearch/sorted"
	"github.com/intel/forGoSearch/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EnvWorkers is consulted when -workers is absent.
const EnvWorkers = "FORGOSEARCH_WORKERS"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer, getenv func(string) string) (config.Config, error) {
	c := config.Default()
	fs := flag.NewFlagSet("forgosearch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var workers, strategy, merge, level string
	fs.StringVar(&workers, "workers", "", "`N`umber of workers (>= 1)")
	fs.IntVar(&c.Key, "key", c.Key, "value to search for")
	fs.StringVar(&c.Input, "input", c.Input, "file path, file:// or s3:// URI of the array")
	fs.IntVar(&c.Size, "size", c.Size, "number of integers to read (0 reads all)")
	fs.StringVar(&strategy, "strategy", c.Strategy.String(), "partitioned, cooperative or speculative")
	fs.StringVar(&merge, "merge", c.MergePolicy.String(), "merge policy for duplicate hits: last, first or lowest")
	fs.StringVar(&level, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() > 0 {
		return c, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var err error
	if workers != "" {
		c.Workers, err = parseWorkers("-workers", workers)
	} else if v := getenv(EnvWorkers); v != "" {
		c.Workers, err = parseWorkers(EnvWorkers, v)
	} else {
		err = fmt.Errorf("%w: -workers or %s is required", config.ErrInvalidConfig, EnvWorkers)
	}
	if err != nil {
		return c, err
	}

	if c.Strategy, err = config.ParseStrategy(strategy); err != nil {
		return c, err
	}
	if c.MergePolicy, err = config.ParseMergePolicy(merge); err != nil {
		return c, err
	}
	if err = c.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return c, &config.UnknownValueError{Setting: "log level", Value: level}
	}
	return c, c.Validate()
}

// parseWorkers reads a worker count from a flag or the environment. A value
// that is not a number is a configuration error, like one that is too small.
func parseWorkers(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", config.ErrInvalidConfig, name, v)
	}
	return n, nil
}

func newLogger(c config.Config, w io.Writer) *forGoSearch.Logger {
	if c.LogFormat == "json" {
		return forGoSearch.NewJSONLogger(w, c.LogLevel)
	}
	return forGoSearch.NewTextLogger(w, c.LogLevel)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	c, err := parseFlags(args, stderr, getenv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig):
		fmt.Fprintln(stderr, "forgosearch:", err)
		return exitError
	case err != nil:
		fmt.Fprintln(stderr, "forgosearch:", err)
		return exitUsage
	}
	logger := newLogger(c, stderr)

	var collector metrics.Collector = metrics.Noop{}
	var serve func() error
	if c.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		p, err := metrics.NewPrometheus(reg)
		if err != nil {
			logger.Error("metrics registration failed", "error", err)
			return exitError
		}
		collector = p
		if _, serve, err = metricsServer(ctx, c.MetricsAddr, reg, logger); err != nil {
			logger.Error("metrics listener failed", "addr", c.MetricsAddr, "error", err)
			return exitError
		}
	}

	values, err := load(ctx, c, getenv)
	if err != nil {
		logger.Error("loading array failed", "input", c.Input, "error", err)
		return exitError
	}

	result, err := forGoSearch.Search(ctx, values, c.Key,
		forGoSearch.WithConfig(c),
		forGoSearch.WithLogger(logger),
		forGoSearch.WithMetrics(collector),
	)
	if err != nil {
		return exitError
	}
	fmt.Fprintf(stdout, "%s result: target %d found at index %d\n", c.Strategy, c.Key, result.Index)

	if serve != nil {
		if err := serve(); err != nil {
			logger.Error("metrics server failed", "error", err)
			return exitError
		}
	}
	return exitOK
}

func load(ctx context.Context, c config.Config, getenv func(string) string) (sorted.Array[int], error) {
	rc, err := source.Open(ctx, c.Input, source.WithGetenv(getenv))
	if err != nil {
		return sorted.Array[int]{}, err
	}
	defer rc.Close()
	return sorted.Read[int](rc, c.Size)
}

// metricsServer starts listening on addr right away and serves reg on
// /metrics in the background. It returns the address it is bound to and a
// function that blocks until ctx is done and then shuts the server down.
func metricsServer(ctx context.Context, addr string, reg *prometheus.Registry, logger *forGoSearch.Logger) (string, func() error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	return ln.Addr().String(), func() error {
		logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, nil
}
