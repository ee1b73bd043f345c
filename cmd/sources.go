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
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSourcesCmd returns the sources command with its subcommands.
// Without a subcommand it lists sources.
func getSourcesCmd() *cobra.Command {
	list := queryRunE(func(ctx context.Context, _ *cobra.Command, svc *services, _ []string) (any, error) {
		return svc.store.Sources(ctx)
	})

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "List and manage imported sources",
		Long: `Sources are imported GEDCOM files. Each person, relationship,
event and place belongs to exactly one source.

Examples:
  gedgraph sources
  gedgraph sources show <source-id>
  gedgraph sources stats <source-id>
  gedgraph sources delete <source-id>`,
		Args: cobra.NoArgs,
		RunE: list,
	}

	sourcesCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List sources, newest import first",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:   "show <source-id>",
			Short: "Show one source",
			Args:  cobra.ExactArgs(1),
			RunE: queryRunE(func(ctx context.Context, _ *cobra.Command, svc *services, args []string) (any, error) {
				return svc.store.Source(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "stats <source-id>",
			Short: "Show counts of persons, relationships and events of a source",
			Args:  cobra.ExactArgs(1),
			RunE: queryRunE(func(ctx context.Context, _ *cobra.Command, svc *services, args []string) (any, error) {
				return svc.store.SourceStatistics(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "delete <source-id>",
			Short: "Delete a source with everything imported from it",
			Args:  cobra.ExactArgs(1),
			RunE: queryRunE(func(ctx context.Context, _ *cobra.Command, svc *services, args []string) (any, error) {
				if err := svc.store.DeleteSource(ctx, args[0]); err != nil {
					return nil, err
				}
				gn.Info("Source <em>%s</em> deleted", args[0])
				return nil, nil
			}),
		},
	)

	return sourcesCmd
}
