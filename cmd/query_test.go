package cmd

import (
	"testing"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	tests := []struct {
		msg   string
		cmd   *cobra.Command
		use   string
		flags []string
		args  []string
	}{
		{"import", getImportCmd(), "import", []string{"name", "progress", "jobs"}, []string{"a.ged"}},
		{"sources", getSourcesCmd(), "sources", nil, nil},
		{"person", getPersonCmd(), "person", nil, []string{"id"}},
		{"tree", getTreeCmd(), "tree", []string{"generations", "source"}, []string{"id"}},
		{"ancestors", getAncestorsCmd(), "ancestors", []string{"generations"}, []string{"id"}},
		{"descendants", getDescendantsCmd(), "descendants", []string{"generations"}, []string{"id"}},
		{"path", getPathCmd(), "path", []string{"max-depth"}, []string{"a", "b"}},
		{"search", getSearchCmd(), "search", []string{"source", "limit"}, []string{"hale"}},
		{"optimize", getOptimizeCmd(), "optimize", nil, nil},
		{"serve", getServeCmd(), "serve", []string{"port"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Name())
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotEmpty(t, tt.cmd.Long)
			assert.NotNil(t, tt.cmd.RunE)
			for _, f := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(f), f)
			}
			require.NotNil(t, tt.cmd.Args)
			assert.NoError(t, tt.cmd.Args(tt.cmd, tt.args))
			assert.Error(t, tt.cmd.Args(tt.cmd, append(tt.args, "extra")))
		})
	}
}

func TestSourcesSubcommands(t *testing.T) {
	cmd := getSourcesCmd()
	names := make(map[string]*cobra.Command)
	for _, c := range cmd.Commands() {
		names[c.Name()] = c
	}
	require.Len(t, names, 4)
	for _, name := range []string{"show", "stats", "delete"} {
		c := names[name]
		require.NotNil(t, c, name)
		assert.Error(t, c.Args(c, nil), name)
		assert.NoError(t, c.Args(c, []string{"id"}), name)
	}
	assert.NotNil(t, names["list"].RunE)
}

func TestGenerations(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })
	cfg = config.New()
	cfg.Update([]config.Option{config.OptQueryDefaultGenerations(4)})

	cmd := getAncestorsCmd()
	assert.Equal(t, 4, generations(cmd))

	require.NoError(t, cmd.Flags().Set("generations", "0"))
	assert.Equal(t, 0, generations(cmd))

	require.NoError(t, cmd.Flags().Set("generations", "7"))
	assert.Equal(t, 7, generations(cmd))
}

func TestChangedFlags(t *testing.T) {
	cmd := getImportCmd()
	_, ok := changedString(cmd, "name")
	assert.False(t, ok)
	_, ok = changedInt(cmd, "jobs")
	assert.False(t, ok)

	require.NoError(t, cmd.Flags().Set("name", "Hale"))
	require.NoError(t, cmd.Flags().Set("jobs", "2"))
	s, ok := changedString(cmd, "name")
	assert.True(t, ok)
	assert.Equal(t, "Hale", s)
	i, ok := changedInt(cmd, "jobs")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}
