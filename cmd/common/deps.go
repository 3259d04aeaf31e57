// Package common provides shared utilities for command implementations.
package common

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/jonesrussell/overheid-search/infrastructure/config"
	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/config"
)

// Persistent flag names.
const (
	FlagConfig = "config"
	FlagDebug  = "debug"
)

const defaultConfigPath = "config.yml"

// ErrConfigRequired is returned by Validate when no config is loaded.
var ErrConfigRequired = errors.New("config is required")

// ErrLoggerRequired is returned by Validate when no logger is set.
var ErrLoggerRequired = errors.New("logger is required")

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Config *config.Config
	Logger infralogger.Logger
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Config == nil {
		return ErrConfigRequired
	}
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	return nil
}

// NewCommandDeps loads the configuration named by --config (or CONFIG_PATH)
// and creates the logger. --debug forces debug level.
func NewCommandDeps(cmd *cobra.Command, outputPaths ...string) (CommandDeps, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	if path == "" {
		path = infraconfig.GetConfigPath(defaultConfigPath)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load configuration: %w", err)
	}
	if debug, _ := cmd.Flags().GetBool(FlagDebug); debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}

	logCfg := cfg.Logging
	logCfg.Development = cfg.Service.Debug
	if len(outputPaths) > 0 {
		logCfg.OutputPaths = outputPaths
	}
	log, err := infralogger.New(logCfg)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Config: cfg,
		Logger: log.With(infralogger.String("service", cfg.Service.Name)),
	}
	return deps, deps.Validate()
}
