package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls are fine
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	dirs := []string{
		filepath.Join(home, ".config", "gedgraph"),
		filepath.Join(home, ".cache", "gedgraph"),
		filepath.Join(home, ".local", "share", "gedgraph"),
		filepath.Join(home, ".local", "share", "gedgraph", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

func TestTouchDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, touchDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// a file in the way cannot become a directory
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	err = touchDir(filepath.Join(file, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# gedgraph configuration.")

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Query, cfg.Query)
	assert.Equal(t, def.Import.MaxFileSize, cfg.Import.MaxFileSize)
	assert.Equal(t, def.Log, cfg.Log)
	assert.Empty(t, cfg.HomeDir)
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))

	path := config.ConfigFilePath(home)
	custom := "database:\n  driver: postgres\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, EnsureConfigFile(home))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestDefaultConfigYAML(t *testing.T) {
	data, err := DefaultConfigYAML()
	require.NoError(t, err)
	s := string(data)
	for _, v := range []string{"database:", "sqlite_path:", "query:", "max_generations:", "log:"} {
		assert.Contains(t, s, v)
	}
	assert.NotContains(t, s, "homedir")
}
