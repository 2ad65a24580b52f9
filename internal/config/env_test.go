package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_PORT=9090\nREFRESH_INTERVAL=90s\nCENSUS_SOURCE_URL=file.json\n"), 0o644))

	t.Setenv("FETCH_TIMEOUT", "5")
	t.Setenv("CENSUS_SOURCE_URL", "http://override")
	// godotenv.Load does not unset; make sure the file's values are not inherited from a previous run.
	os.Unsetenv("APP_PORT")
	os.Unsetenv("REFRESH_INTERVAL")
	t.Cleanup(func() {
		os.Unsetenv("APP_PORT")
		os.Unsetenv("REFRESH_INTERVAL")
	})

	require.NoError(t, LoadEnvConfig(envFile))
	assert.Equal(t, "9090", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, 90*time.Second, DefaultEnvConfig.REFRESH_INTERVAL)
	assert.Equal(t, 5*time.Second, DefaultEnvConfig.FETCH_TIMEOUT)
	assert.Equal(t, "http://override", DefaultEnvConfig.CENSUS_SOURCE_URL)
	assert.Equal(t, "info", DefaultEnvConfig.LOG_LEVEL)
}

func TestLoadEnvConfig_MissingFileIsFine(t *testing.T) {
	require.NoError(t, LoadEnvConfig(filepath.Join(t.TempDir(), "nope.env")))
	assert.NotEmpty(t, DefaultEnvConfig.APP_PORT)
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")

	t.Setenv("REFRESH_INTERVAL", "soon")
	assert.Error(t, LoadEnvConfig(missing))

	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("APP_PORT", "http")
	assert.Error(t, LoadEnvConfig(missing))
}
