package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/gnames/gedgraph/internal/iodb"
	"github.com/gnames/gedgraph/internal/iostore"
	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gedgraph/pkg/graph"
	"github.com/gnames/gedgraph/pkg/search"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// services bundles a connected database with the components built on
// top of it.
type services struct {
	op    db.Operator
	store *iostore.Store
}

// connect opens the configured database. Callers must Close the result.
func connect(ctx context.Context) (*services, error) {
	op, err := iodb.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &services{op: op, store: iostore.New(op.DB())}, nil
}

func (s *services) traverser() *graph.Engine {
	return graph.New(cfg, s.store)
}

func (s *services) searcher() *search.Ranker {
	return search.New(cfg, s.store)
}

func (s *services) Close() error {
	return s.op.Close()
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

// query produces the result of a command that reads the database. A nil
// result prints nothing.
type query func(ctx context.Context, cmd *cobra.Command, svc *services, args []string) (any, error)

// queryRunE turns q into a cobra RunE that connects to the database and
// prints the result as JSON.
func queryRunE(q query) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := withServices(func(ctx context.Context, svc *services) error {
			res, err := q(ctx, cmd, svc, args)
			if err != nil || res == nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		})
		if err != nil {
			gn.PrintErrorMessage(err)
		}
		return err
	}
}

// withServices connects to the database, runs fn and closes the
// connection.
func withServices(fn func(context.Context, *services) error) error {
	ctx := context.Background()
	svc, err := connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(ctx, svc)
}
