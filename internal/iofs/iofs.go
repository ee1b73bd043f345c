// Package iofs prepares the directories and files gedgraph keeps in the
// user's home.
package iofs

import (
	"bytes"
	"os"

	"github.com/gnames/gedgraph/pkg/config"
	"gopkg.in/yaml.v3"
)

// configHeader precedes the rendered defaults in a new config.yaml.
const configHeader = `# gedgraph configuration.
#
# Values here are overridden by GEDGRAPH_* environment variables,
# which are overridden by command line flags.
#
# database.driver is "sqlite" or "postgres". An empty sqlite_path
# keeps the database in ~/.local/share/gedgraph.

`

// EnsureDirs creates config, cache, data and log directories under
// homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes config.yaml with default values unless the
// file is already there.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return CopyFileError(configPath, err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// DefaultConfigYAML renders the default configuration as YAML.
func DefaultConfigYAML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.New()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
