// Package profiling starts the optional pprof listener and Pyroscope agent.
package profiling

// Config selects which profilers run.
type Config struct {
	PprofEnabled bool `env:"ENABLE_PROFILING" yaml:"pprof_enabled"`
	// PprofPort is bound on localhost only.
	PprofPort          int    `env:"PPROF_PORT"                  yaml:"pprof_port"`
	PyroscopeEnabled   bool   `env:"ENABLE_CONTINUOUS_PROFILING" yaml:"pyroscope_enabled"`
	PyroscopeServerURL string `env:"PYROSCOPE_SERVER_URL"        yaml:"pyroscope_server_url"`
	Environment        string `env:"PYROSCOPE_ENVIRONMENT"       yaml:"environment"`
}

const (
	defaultPprofPort      = 6060
	defaultPyroscopeURL   = "http://pyroscope:4040"
	defaultEnvironment    = "development"
	applicationNamePrefix = "overheid-search."
)

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.PprofPort == 0 {
		c.PprofPort = defaultPprofPort
	}
	if c.PyroscopeServerURL == "" {
		c.PyroscopeServerURL = defaultPyroscopeURL
	}
	if c.Environment == "" {
		c.Environment = defaultEnvironment
	}
}
