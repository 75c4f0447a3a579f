package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keeper:\n  interval: 30s\n  batchSize: 50\nstorage:\n  driver: memory\n"), 0o600))

	v := viper.New()
	require.NoError(t, loadConfig(v, []string{"--config", path, "--keeper.workers", "8"}))
	require.Equal(t, 30*time.Second, v.GetDuration("keeper.interval"))
	require.Equal(t, 50, v.GetInt("keeper.batchSize"))
	require.Equal(t, 8, v.GetInt("keeper.workers"))
	require.Equal(t, "memory", v.GetString("storage.driver"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	v := viper.New()
	require.Error(t, loadConfig(v, []string{"--config", filepath.Join(t.TempDir(), "none.yaml")}))
}

func TestLoadConfigBadFlag(t *testing.T) {
	require.Error(t, loadConfig(viper.New(), []string{"--keeper.workers", "many"}))
}
