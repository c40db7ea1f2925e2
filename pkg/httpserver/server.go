package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// NewMux returns an HTTP mux with shared diagnostics endpoints.
func NewMux(serviceName string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", metricsHandler(serviceName))
	return mux
}

// Run starts the diagnostics server and blocks until the context is canceled.
func Run(ctx context.Context, logger zerolog.Logger, port int, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", port).Msg("starting diagnostics server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down diagnostics server")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

var (
	startedAt = time.Now()
	counters  sync.Map
)

// IncCounter bumps a named process-wide counter exposed at /metrics.
func IncCounter(name string) {
	counter, _ := counters.LoadOrStore(name, &atomic.Int64{})
	counter.(*atomic.Int64).Add(1)
}

func metricsHandler(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		names := make([]string, 0)
		counters.Range(func(k, _ any) bool {
			names = append(names, k.(string))
			return true
		})
		sort.Strings(names)
		for _, name := range names {
			counter, _ := counters.Load(name)
			_, _ = fmt.Fprintf(w, "# TYPE iob_%s_total counter\n", name)
			_, _ = fmt.Fprintf(w, "iob_%s_total{service=%q} %d\n",
				name, serviceName, counter.(*atomic.Int64).Load())
		}
		_, _ = fmt.Fprintf(w, "# TYPE iob_process_uptime_seconds gauge\n")
		_, _ = fmt.Fprintf(w, "iob_process_uptime_seconds{service=%q} %.0f\n",
			serviceName, time.Since(startedAt).Seconds())
	}
}
