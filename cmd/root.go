/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gedgraph/internal/iofs"
	"github.com/gnames/gedgraph/internal/iologger"
	app "github.com/gnames/gedgraph/pkg"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gedgraph",
		Short:   "GEDgraph imports GEDCOM files and queries family graphs",
		Long: `GEDgraph loads genealogical GEDCOM files into a relational
database (SQLite or PostgreSQL) and answers questions about the family
graph they describe.

Features:
  - Import: parse GEDCOM, normalize dates, store persons and families
  - Sources: list, inspect and delete imported files
  - Optimize: clean up interrupted imports and unused places
  - Traversal: family trees, ancestors, descendants, relationship paths
  - Search: ranked person search by name
  - Serve: the same operations over an HTTP API

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GEDGRAPH_*)
  3. Config file (~/.config/gedgraph/config.yaml)
  4. Built-in defaults

Examples:
  gedgraph create
  gedgraph import family.ged --name "Hale family"
  gedgraph search "henry hale"
  gedgraph ancestors <person-id> -g 4
  gedgraph serve --port 8080`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gedgraph version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// -V is consistent with other gn projects
	rootCmd.Flags().BoolP("version", "V", false, "version for gedgraph")

	rootCmd.PersistentFlags().String("driver", "",
		"database driver: sqlite or postgres")
	rootCmd.PersistentFlags().String("sqlite-path", "",
		"path to the sqlite database file")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getOptimizeCmd(),
		getImportCmd(),
		getSourcesCmd(),
		getPersonCmd(),
		getTreeCmd(),
		getAncestorsCmd(),
		getDescendantsCmd(),
		getPathCmd(),
		getSearchCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Hardcoded defaults until the user's settings are known.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, rootFlagOptions(cmd)...)
	opts = append(opts, config.OptHomeDir(homeDir))
	cfg.Update(opts)

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)

	return nil
}

// rootFlagOptions converts persistent flags set on the command line
// into options.
func rootFlagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if s, ok := changedString(cmd, "driver"); ok {
		res = append(res, config.OptDatabaseDriver(s))
	}
	if s, ok := changedString(cmd, "sqlite-path"); ok {
		res = append(res, config.OptDatabaseSQLitePath(s))
	}
	return res
}

// reconfigureLogging appends to the log started during bootstrap, now
// with the user's settings.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Allowed variables are listed explicitly. They match the fields
	// of config.ToOptions().
	v.SetEnvPrefix("GEDGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "GEDGRAPH_DATABASE_DRIVER")
	v.BindEnv("database.host", "GEDGRAPH_DATABASE_HOST")
	v.BindEnv("database.port", "GEDGRAPH_DATABASE_PORT")
	v.BindEnv("database.user", "GEDGRAPH_DATABASE_USER")
	v.BindEnv("database.password", "GEDGRAPH_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GEDGRAPH_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GEDGRAPH_DATABASE_SSL_MODE")
	v.BindEnv("database.sqlite_path", "GEDGRAPH_DATABASE_SQLITE_PATH")

	// Import configuration
	v.BindEnv("import.max_file_size", "GEDGRAPH_IMPORT_MAX_FILE_SIZE")
	v.BindEnv("import.with_progress", "GEDGRAPH_IMPORT_WITH_PROGRESS")

	// Query configuration
	v.BindEnv("query.max_generations", "GEDGRAPH_QUERY_MAX_GENERATIONS")
	v.BindEnv("query.default_generations", "GEDGRAPH_QUERY_DEFAULT_GENERATIONS")
	v.BindEnv("query.path_max_depth", "GEDGRAPH_QUERY_PATH_MAX_DEPTH")
	v.BindEnv("query.search_limit", "GEDGRAPH_QUERY_SEARCH_LIMIT")

	// Server configuration
	v.BindEnv("server.port", "GEDGRAPH_SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "GEDGRAPH_LOG_LEVEL")
	v.BindEnv("log.format", "GEDGRAPH_LOG_FORMAT")
	v.BindEnv("log.destination", "GEDGRAPH_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GEDGRAPH_JOBS_NUMBER")

	v.AutomaticEnv()
}
