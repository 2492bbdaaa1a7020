package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/foundation/utils/mathx"
	"github.com/msto63/bigmath/pkg/core/health"
	"github.com/msto63/bigmath/pkg/core/metrics"
	"github.com/msto63/bigmath/pkg/core/version"
)

func newServeMetricsCommand(opts *rootOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve engine metrics for Prometheus",
		Long: `Start an HTTP server exposing engine metrics on /metrics and health on /healthz while a
background loop keeps evaluating the constants and a sample of functions
at the configured precision.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			observer, err := metrics.NewObserver(cfg.Metrics.Namespace, reg)
			if err != nil {
				return err
			}

			s, err := opts.newSession(cmd, false, mathx.WithObserver(observer))
			if err != nil {
				return err
			}
			defer s.Close()

			if err := registerCollectors(reg, s); err != nil {
				return err
			}

			if address == "" {
				address = s.cfg.Metrics.Address
			}
			ln, err := net.Listen("tcp", address)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on http://%s/metrics\n", ln.Addr())
			return serveMetrics(ctx, s, reg, ln)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address (default from config)")
	return cmd
}

func registerCollectors(reg *prometheus.Registry, s *session) error {
	ns := s.cfg.Metrics.Namespace
	if err := reg.Register(metrics.NewStatsCollector(ns, s.engine)); err != nil {
		return err
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	return metrics.BuildInfo(ns, version.Version, version.GitCommit, reg)
}

func newHealthRegistry(s *session) *health.Registry {
	reg := health.NewRegistry(s.cfg.General.Name, version.Version)
	reg.Register(health.EngineCheck("engine", s.engine, time.Second))
	reg.Register(health.ConstantCheck("pi", s.engine, mathx.ConstPi, s.precision.Digits))
	if s.store != nil {
		reg.Register(health.StoreCheck("store", s.store))
	}
	return reg
}

// serveMetrics runs the HTTP server and the warm loop until ctx is done
func serveMetrics(ctx context.Context, s *session, reg *prometheus.Registry, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	mux.Handle("/healthz", health.Handler(newHealthRegistry(s), 5*time.Second))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		warmLoop(loopCtx, s, s.cfg.Metrics.WarmInterval.Duration)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := srv.Shutdown(shutdownCtx)
	stopLoop()
	<-loopDone
	if err == nil {
		err = <-serveErr
	}
	if err == nil || stderrors.Is(err, http.ErrServerClosed) {
		err = shutdownErr
	}
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// warmSample is evaluated on every tick of the warm loop
var warmSample = []struct {
	name string
	x    string
}{
	{"exp", "1.5"},
	{"log", "7"},
	{"sin", "0.75"},
	{"atan", "0.3"},
	{"sqrt", "2"},
}

func warmLoop(ctx context.Context, s *session, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		warmOnce(s)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func warmOnce(s *session) {
	for _, name := range mathx.ConstantNames {
		if _, err := s.engine.Constant(name, s.precision); err != nil {
			s.logger.WarnWithErr("constant failed", err, log.Fields{"constant": name})
		}
	}
	for _, sample := range warmSample {
		fn, ok := s.engine.Lookup(sample.name)
		if !ok {
			continue
		}
		if _, err := fn.Call(s.precision, mathx.MustParseDecimal(sample.x)); err != nil {
			s.logger.WarnWithErr("sample failed", err, log.Fields{"function": sample.name})
		}
	}
}
