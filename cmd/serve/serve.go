// Package serve implements the serve command, which runs the HTTP search
// gateway.
package serve

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/overheid-search/cmd/common"
	infragin "github.com/jonesrussell/overheid-search/infrastructure/gin"
	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/infrastructure/profiling"
	infraredis "github.com/jonesrussell/overheid-search/infrastructure/redis"
	"github.com/jonesrussell/overheid-search/internal/api"
	"github.com/jonesrussell/overheid-search/internal/cache"
	"github.com/jonesrussell/overheid-search/internal/config"
	"github.com/jonesrussell/overheid-search/internal/metrics"
	"github.com/jonesrussell/overheid-search/internal/service"
	"github.com/jonesrussell/overheid-search/internal/sru"
)

// pyroscopeComponent is appended to the profiler's application prefix.
const pyroscopeComponent = "api"

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			return run(cmd.Context(), deps.Config, deps.Logger)
		},
	}
}

func run(ctx context.Context, cfg *config.Config, log infralogger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	profiling.StartPprofServer(ctx, cfg.Profiling, log)
	pyroProfiler, pyroErr := profiling.StartPyroscope(cfg.Profiling, pyroscopeComponent, cfg.Service.Version, log)
	if pyroErr != nil {
		log.Warn("Pyroscope failed to start", infralogger.Error(pyroErr))
	}
	defer pyroProfiler.Stop() //nolint:errcheck // best-effort cleanup

	log.Info("Starting search gateway",
		infralogger.String("name", cfg.Service.Name),
		infralogger.String("version", cfg.Service.Version),
		infralogger.Int("port", cfg.Service.Port),
		infralogger.Bool("debug", cfg.Service.Debug),
		infralogger.String("sru_base_url", cfg.SRU.BaseURL),
	)

	m, metricsHandler := setupMetrics(cfg)
	healthChecks := make(map[string]infragin.HealthChecker)

	var store service.VocabularyStore
	if cfg.Cache.Enabled {
		vc, closeCache, cacheErr := setupCache(ctx, cfg, log)
		if cacheErr != nil {
			return cacheErr
		}
		defer closeCache()
		store = vc
		healthChecks["redis"] = infragin.PingChecker("redis", infragin.HealthStatusDegraded, vc.Ping)
	}

	client := sru.NewClient(cfg.ClientConfig(), log)
	searchService := service.NewSearchService(client, cfg, m, log)
	vocabularyService := service.NewVocabularyService(client, store, m, log)
	log.Info("Search service initialized")

	server := api.NewServer(cfg, api.ServerDeps{
		Handler:        api.NewHandler(searchService, vocabularyService),
		Metrics:        m,
		MetricsHandler: metricsHandler,
		HealthChecks:   healthChecks,
		Logger:         log,
	})

	if runErr := server.Run(ctx); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return runErr
	}

	log.Info("Search gateway exited cleanly")
	return nil
}

// setupMetrics returns nil collaborators when metrics are disabled.
func setupMetrics(cfg *config.Config) (*metrics.Metrics, http.Handler) {
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.NewMetrics(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func setupCache(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*cache.VocabularyCache, func(), error) {
	log.Info("Connecting to Redis", infralogger.String("address", cfg.Cache.Redis.Address))
	client, err := infraredis.NewClient(ctx, cfg.Cache.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("vocabulary cache: %w", err)
	}
	log.Info("Vocabulary cache enabled", infralogger.Duration("ttl", cfg.Cache.TTL))
	return cache.NewVocabularyCache(client, cfg.Cache.TTL), func() { _ = client.Close() }, nil
}
