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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gedgraph/internal/iohttp"
	"github.com/gnames/gedgraph/internal/ioimport"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serve GEDCOM upload, sources, traversal and search over HTTP.

Endpoints (all under /api/v1):
  POST   /gedcom/upload
  GET    /sources, /sources/:id, /sources/:id/statistics
  DELETE /sources/:id
  GET    /persons, /persons/search, /persons/:id
  GET    /persons/:id/family-tree, /persons/:id/ancestors,
         /persons/:id/descendants, /persons/:id/path/:other

GET /healthcheck returns "ok".

Examples:
  gedgraph serve
  gedgraph serve --port 8888`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntP("port", "p", 0,
		"port of the HTTP server (default from config)")

	return serveCmd
}

func runServe(cmd *cobra.Command) error {
	if port, ok := changedInt(cmd, "port"); ok {
		cfg.Update([]config.Option{config.OptServerPort(port)})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	svc, err := connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	router := iohttp.NewRouter(iohttp.RouterConfig{
		Config:    cfg,
		Catalog:   svc.store,
		Importer:  ioimport.New(cfg, svc.op),
		Traverser: svc.traverser(),
		Searcher:  svc.searcher(),
	})

	gn.Info("Listening on port <em>%d</em>", cfg.Server.Port)
	return iohttp.Run(ctx, cfg.Server.Port, router)
}
