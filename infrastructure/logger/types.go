package logger

// Supported encodings.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config configures New.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string `env:"LOG_LEVEL" yaml:"level"`
	// Format is json or console.
	Format      string   `env:"LOG_FORMAT" yaml:"format"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths"`
}

// SetDefaults fills unset fields: info level, json, stdout.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}
