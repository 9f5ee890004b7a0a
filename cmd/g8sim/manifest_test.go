package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

func TestLoadManifestDefaultsWithoutConfigFile(t *testing.T) {
	m, err := loadManifest(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, 50, m.Ticks)
	require.Len(t, m.Threads, 2)
}

func TestLoadManifestReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, writeFile(path, `
ticks: 5
threads:
  - name: only
    priority: 2
    kind: yielder
    count: 1
periodic:
  - name: tick-logger
    period_ticks: 2
`))

	m, err := loadManifest(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 5, m.Ticks)
	require.Len(t, m.Threads, 1)
	require.Equal(t, "only", m.Threads[0].Name)
	require.Equal(t, uint32(2), m.Periodic[0].Period)
}

func TestLoadManifestRejectsNonPositiveTicks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, writeFile(path, "ticks: 0\n"))

	_, err := loadManifest(viper.New(), path)
	require.Error(t, err)
}
