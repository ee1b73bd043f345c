package cmd

import (
	"github.com/spf13/cobra"
)

// changedString returns the value of a string flag if it was set on the
// command line.
func changedString(cmd *cobra.Command, name string) (string, bool) {
	if !cmd.Flags().Changed(name) {
		return "", false
	}
	s, err := cmd.Flags().GetString(name)
	return s, err == nil
}

// changedInt returns the value of an int flag if it was set on the
// command line.
func changedInt(cmd *cobra.Command, name string) (int, bool) {
	if !cmd.Flags().Changed(name) {
		return 0, false
	}
	i, err := cmd.Flags().GetInt(name)
	return i, err == nil
}

func addGenerationsFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("generations", "g", 0,
		"number of generations (default from config)")
}

// generations returns the -g flag, or the configured default when the
// flag is absent. An explicit 0 is kept.
func generations(cmd *cobra.Command) int {
	if g, ok := changedInt(cmd, "generations"); ok {
		return g
	}
	return cfg.Query.DefaultGenerations
}
