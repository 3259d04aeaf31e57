package profiling

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
)

const pprofReadHeaderTimeout = 5 * time.Second

// StartPprofServer serves /debug/pprof on localhost:PprofPort until ctx is
// done. It returns immediately when pprof is disabled.
func StartPprofServer(ctx context.Context, cfg Config, log logger.Logger) {
	if !cfg.PprofEnabled {
		return
	}
	cfg.SetDefaults()

	addr := net.JoinHostPort("localhost", strconv.Itoa(cfg.PprofPort))
	srv := &http.Server{
		Addr:              addr,
		Handler:           pprofMux(),
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server stopped", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
