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

	"github.com/spf13/cobra"
)

// getPersonCmd returns the person command.
func getPersonCmd() *cobra.Command {
	personCmd := &cobra.Command{
		Use:   "person <person-id>",
		Short: "Show a person with events and relatives",
		Long: `Show a person with life events and the relationships to other
persons. Each relative is described from the person's point of view
(father, daughter, wife, sibling, ...).

Examples:
  gedgraph person <person-id>`,
		Args: cobra.ExactArgs(1),
		RunE: queryRunE(func(ctx context.Context, _ *cobra.Command, svc *services, args []string) (any, error) {
			return svc.store.PersonDetails(ctx, args[0])
		}),
	}

	return personCmd
}

// getTreeCmd returns the tree command.
func getTreeCmd() *cobra.Command {
	treeCmd := &cobra.Command{
		Use:   "tree <person-id>",
		Short: "Show the family tree around a person",
		Long: `Show persons reachable from the focal person through parent,
child, spouse and sibling relationships within the given number of
generations, together with the relationships among them.

Examples:
  gedgraph tree <person-id>
  gedgraph tree <person-id> -g 5 --source <source-id>`,
		Args: cobra.ExactArgs(1),
		RunE: queryRunE(func(ctx context.Context, cmd *cobra.Command, svc *services, args []string) (any, error) {
			source, _ := cmd.Flags().GetString("source")
			return svc.traverser().Tree(ctx, args[0], generations(cmd), source)
		}),
	}

	addGenerationsFlag(treeCmd)
	treeCmd.Flags().StringP("source", "s", "",
		"limit the tree to persons of a source")

	return treeCmd
}

// getAncestorsCmd returns the ancestors command.
func getAncestorsCmd() *cobra.Command {
	ancestorsCmd := &cobra.Command{
		Use:   "ancestors <person-id>",
		Short: "List ancestors of a person by generation",
		Long: `List parents, grandparents and further ancestors of a person.
Each person appears once, with the closest generation it was
reached at. Zero generations give an empty list.

Examples:
  gedgraph ancestors <person-id>
  gedgraph ancestors <person-id> -g 6`,
		Args: cobra.ExactArgs(1),
		RunE: queryRunE(func(ctx context.Context, cmd *cobra.Command, svc *services, args []string) (any, error) {
			return svc.traverser().Ancestors(ctx, args[0], generations(cmd))
		}),
	}

	addGenerationsFlag(ancestorsCmd)
	return ancestorsCmd
}

// getDescendantsCmd returns the descendants command.
func getDescendantsCmd() *cobra.Command {
	descendantsCmd := &cobra.Command{
		Use:   "descendants <person-id>",
		Short: "List descendants of a person by generation",
		Long: `List children, grandchildren and further descendants of a
person. Each person appears once, with the closest generation it was
reached at. Zero generations give an empty list.

Examples:
  gedgraph descendants <person-id>
  gedgraph descendants <person-id> -g 2`,
		Args: cobra.ExactArgs(1),
		RunE: queryRunE(func(ctx context.Context, cmd *cobra.Command, svc *services, args []string) (any, error) {
			return svc.traverser().Descendants(ctx, args[0], generations(cmd))
		}),
	}

	addGenerationsFlag(descendantsCmd)
	return descendantsCmd
}

// getPathCmd returns the path command.
func getPathCmd() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path <person-id> <person-id>",
		Short: "Find how two persons are related",
		Long: `Find the shortest chain of relationships that connects two
persons. When no chain exists within the depth limit the result
has "found": false.

Examples:
  gedgraph path <person-a> <person-b>
  gedgraph path <person-a> <person-b> --max-depth 10`,
		Args: cobra.ExactArgs(2),
		RunE: queryRunE(func(ctx context.Context, cmd *cobra.Command, svc *services, args []string) (any, error) {
			depth, _ := cmd.Flags().GetInt("max-depth")
			return svc.traverser().RelationshipPath(ctx, args[0], args[1], depth)
		}),
	}

	pathCmd.Flags().IntP("max-depth", "d", 0,
		"maximum number of relationships in the path (default from config)")

	return pathCmd
}

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search persons by name",
		Long: `Search persons whose names match the query. Results are ranked:
exact full name matches first, then partial full name, given name
or surname matches, then nicknames. Persons with known dates rank
higher among equal matches.

Examples:
  gedgraph search hale
  gedgraph search "henry hale" --source <source-id> --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: queryRunE(func(ctx context.Context, cmd *cobra.Command, svc *services, args []string) (any, error) {
			source, _ := cmd.Flags().GetString("source")
			limit, _ := cmd.Flags().GetInt("limit")
			return svc.searcher().Search(ctx, args[0], source, limit)
		}),
	}

	searchCmd.Flags().StringP("source", "s", "",
		"search only persons of a source")
	searchCmd.Flags().IntP("limit", "l", 0,
		"maximum number of results (default from config)")

	return searchCmd
}
