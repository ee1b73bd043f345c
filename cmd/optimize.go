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

	"github.com/gnames/gedgraph/internal/iooptimize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Clean up after imports and refresh database statistics",
		Long: `Run maintenance on the database.

This command:
  1. Moves imports that stayed pending or processing for more than
     an hour to error status, so their files can be imported again
  2. Removes places no person, event or relationship refers to
  3. Runs VACUUM and ANALYZE

Do not run it while an import is in progress.

Examples:
  gedgraph optimize`,
		Args: cobra.NoArgs,
		RunE: queryRunE(func(ctx context.Context, _ *cobra.Command, svc *services, _ []string) (any, error) {
			gn.Info("Optimizing <em>%s</em>...", dbName(svc.op))
			return iooptimize.NewOptimizer(svc.op).Optimize(ctx)
		}),
	}

	return optimizeCmd
}
