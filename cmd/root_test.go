package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "gedgraph", cmd.Use)
	assert.Contains(t, cmd.Short, "GEDCOM")
	assert.Contains(t, cmd.Long, "GEDGRAPH_")
	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	for _, name := range []string{"driver", "sqlite-path"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{
		"create", "migrate", "optimize", "import", "sources", "person", "tree",
		"ancestors", "descendants", "path", "search", "serve",
	} {
		assert.True(t, names[name], name)
	}
}

func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})
			require.NoError(t, cmd.Execute())

			out := buf.String()
			assert.Contains(t, out, "v1.2.3")
			assert.Contains(t, out, "abc123")
			assert.NotContains(t, out, "gedgraph version")
		})
	}
}

func TestGetRootCmd_Help(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	help := buf.String()
	assert.Contains(t, help, "gedgraph")
	assert.Contains(t, help, "Available Commands")
	assert.Contains(t, help, "ancestors")
}

func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()
	assert.NotSame(t, cmd1, cmd2)
	assert.NotSame(t, cmd1.Commands()[0], cmd2.Commands()[0])
}
