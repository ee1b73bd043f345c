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
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gedgraph/internal/iofs"
	"github.com/gnames/gedgraph/internal/ioimport"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <file.ged>",
		Short: "Import a GEDCOM file as a new source",
		Long: `Import a GEDCOM 5.5/5.5.1 file into the database.

This command:
  1. Checks the file extension (.ged or .gedcom) and size
  2. Rejects files whose content was imported before
  3. Parses individuals and families, normalizing dates
  4. Stores persons, relationships, events and places in one
     transaction
  5. Prints the new source with import statistics as JSON

Records that cannot be stored are listed in the statistics and
do not stop the import.

Examples:
  gedgraph import family.ged
  gedgraph import family.ged --name "Hale family" --progress
  gedgraph import family.ged -j 4`,
		Aliases: []string{"add"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringP("name", "n", "",
		"source name (default is the file name)")
	importCmd.Flags().BoolP("progress", "p", false,
		"show progress bar")
	importCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent extraction workers")

	return importCmd
}

func runImport(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var importOpts []config.Option
	if s, ok := changedString(cmd, "name"); ok {
		importOpts = append(importOpts, config.OptImportSourceName(s))
	}
	if b, _ := cmd.Flags().GetBool("progress"); b {
		importOpts = append(importOpts, config.OptImportWithProgress(true))
	}
	if i, ok := changedInt(cmd, "jobs"); ok {
		importOpts = append(importOpts, config.OptJobsNumber(i))
	}
	cfg.Update(importOpts)

	filename := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return iofs.ReadFileError(path, err)
	}
	err = ioimport.ValidateUpload(filename, info.Size(), cfg.Import.MaxFileSize)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return iofs.ReadFileError(path, err)
	}

	svc, err := connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := ioimport.New(cfg, svc.op).Import(ctx, data, filename, "")
	if id, ok := family.IsDuplicate(err); ok {
		gn.Warn("Existing source id: <em>%s</em>", id)
		return err
	}
	if err != nil {
		return err
	}

	gn.Info(
		"Imported <em>%s</em> persons, <em>%s</em> relationships, "+
			"<em>%s</em> events",
		humanize.Comma(int64(res.Stats.PersonsImported)),
		humanize.Comma(int64(res.Stats.RelationshipsImported)),
		humanize.Comma(int64(res.Stats.EventsImported)),
	)
	for _, v := range res.Stats.Errors {
		gn.Warn("%s", v)
	}

	return printJSON(cmd.OutOrStdout(), res)
}
