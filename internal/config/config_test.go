package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "TTSDECK_INDEX", "TTSDECK_SET_MAPPING", "TTSDECK_SAVED_OBJECTS", "TTSDECK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.NoError(t, cfg.ValidateForServe())
	assert.Error(t, cfg.ValidateForIndex())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "ttsdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
index:
  path: data/index.db
  saved_objects_dir: /tts/Saved Objects
export:
  append: true
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "data/index.db", cfg.Index.Path)
	assert.Equal(t, "/tts/Saved Objects", cfg.Index.SavedObjectsDir)
	// unset keys keep their defaults
	assert.Equal(t, "configs/set-mapping.yaml", cfg.Index.SetMappingPath)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.True(t, cfg.Export.Append)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NoError(t, cfg.ValidateForIndex())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("TTSDECK_INDEX", "/var/lib/ttsdeck/index.json")
	t.Setenv("TTSDECK_SAVED_OBJECTS", "/saves")
	t.Setenv("TTSDECK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "/var/lib/ttsdeck/index.json", cfg.Index.Path)
	assert.Equal(t, "/saves", cfg.Index.SavedObjectsDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadBadPortIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidateForServe(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.ValidateForServe())

	cfg = Default()
	cfg.Index.Path = ""
	assert.Error(t, cfg.ValidateForServe())
}
