package profiling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/infrastructure/profiling"
)

func TestStartPyroscope_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	p, err := profiling.StartPyroscope(profiling.Config{}, "api", "dev", logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Stop())
}

func TestPyroscopeConfig(t *testing.T) {
	t.Parallel()

	cfg := profiling.Config{PyroscopeEnabled: true}
	cfg.SetDefaults()

	pcfg := profiling.PyroscopeConfig(cfg, "api", "1.0.0")

	assert.Equal(t, "overheid-search.api", pcfg.ApplicationName)
	assert.Equal(t, "http://pyroscope:4040", pcfg.ServerAddress)
	assert.Equal(t, "development", pcfg.Tags["environment"])
	assert.Equal(t, "1.0.0", pcfg.Tags["version"])
	assert.Len(t, pcfg.ProfileTypes, 6)
}

func TestConfigSetDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := profiling.Config{PprofPort: 7070, Environment: "production"}
	cfg.SetDefaults()

	assert.Equal(t, 7070, cfg.PprofPort)
	assert.Equal(t, "production", cfg.Environment)
}
