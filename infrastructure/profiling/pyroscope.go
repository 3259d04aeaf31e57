package profiling

import (
	"fmt"
	"os"
	"runtime"

	"github.com/grafana/pyroscope-go"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
)

// PyroscopeProfiler wraps a running Pyroscope agent.
type PyroscopeProfiler struct {
	profiler *pyroscope.Profiler
}

// StartPyroscope starts continuous profiling for serviceName. It returns a
// nil profiler and no error when Pyroscope is disabled.
func StartPyroscope(cfg Config, serviceName, version string, log logger.Logger) (*PyroscopeProfiler, error) {
	if !cfg.PyroscopeEnabled {
		return nil, nil
	}
	cfg.SetDefaults()

	pcfg := pyroscopeConfig(cfg, serviceName, version)
	profiler, err := pyroscope.Start(pcfg)
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	log.Info("Pyroscope continuous profiling started",
		logger.String("application", pcfg.ApplicationName),
		logger.String("server", cfg.PyroscopeServerURL),
		logger.String("environment", cfg.Environment),
	)

	return &PyroscopeProfiler{profiler: profiler}, nil
}

func pyroscopeConfig(cfg Config, serviceName, version string) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName: applicationNamePrefix + serviceName,
		ServerAddress:   cfg.PyroscopeServerURL,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
		Tags: map[string]string{
			"environment": cfg.Environment,
			"version":     version,
			"hostname":    hostname(),
			"go_version":  runtime.Version(),
		},
	}
}

// Stop flushes and stops the agent. Safe on a nil receiver.
func (p *PyroscopeProfiler) Stop() error {
	if p == nil || p.profiler == nil {
		return nil
	}
	return p.profiler.Stop()
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
