package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

type testConfig struct {
	Name    string `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
	Retries int    `env:"CONFIG_TEST_RETRIES" envDefault:"3"`
}

type overrideConfig struct {
	Value string `env:"CONFIG_TEST_VALUE" envDefault:"default"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, 3, cfg.Retries)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_VALUE", "from-env")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Value)
}

func TestLoadCachesPerType(t *testing.T) {
	var first testConfig
	require.NoError(t, config.Load(&first))

	// Later environment changes are invisible: the type is already cached.
	t.Setenv("CONFIG_TEST_NAME", "changed")
	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoadNilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
