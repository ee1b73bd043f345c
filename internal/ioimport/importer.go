// Package ioimport implements family.Importer. It reads GEDCOM bytes,
// extracts records concurrently and writes persons, relationships,
// events and places of one file in a single transaction.
// This is an impure I/O package.
package ioimport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gedgraph/internal/iostore"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/gedcom"
	"github.com/gnames/gedgraph/pkg/schema"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// importer implements the family.Importer interface.
type importer struct {
	cfg *config.Config
	op  db.Operator
}

// New creates a new Importer.
func New(cfg *config.Config, op db.Operator) family.Importer {
	return &importer{cfg: cfg, op: op}
}

// Import stores a GEDCOM file as a new source.
//
// The source row is committed before parsing starts, so its status is
// visible while the import runs. A file that cannot be parsed leaves the
// source in error status. Broken individual or family records are
// skipped and reported in the statistics.
func (i *importer) Import(
	ctx context.Context,
	data []byte,
	filename, sourceName string,
) (*family.ImportResult, error) {
	gdb := i.op.DB()
	if gdb == nil {
		return nil, NotConnectedError()
	}
	err := ValidateUpload(filename, int64(len(data)), i.cfg.Import.MaxFileSize)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	src, err := i.createSource(ctx, gdb, data, filename, i.sourceName(filename, sourceName))
	if err != nil {
		return nil, err
	}
	slog.Info("Importing GEDCOM file",
		"source_id", src.ID,
		"file", filename,
		"size", humanize.Bytes(uint64(len(data))),
	)

	err = setStatus(ctx, gdb, src, schema.StatusProcessing, "")
	if err != nil {
		return nil, err
	}

	doc, err := gedcom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fail(ctx, gdb, src, MalformedFileError(filename, err))
	}

	recs, err := i.extract(ctx, doc)
	if err != nil {
		return nil, fail(ctx, gdb, src, err)
	}

	w := newWriter(src)
	if i.cfg.Import.WithProgress {
		w.bar = pb.Full.Start(len(recs.persons) + len(recs.families))
		w.bar.Set("prefix", "Importing records: ")
		w.bar.Set(pb.CleanOnFinish, true)
	}
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := w.write(ctx, tx, recs); err != nil {
			return err
		}
		return complete(tx, src, w.stats, len(recs.families), doc.HeaderAttrs())
	})
	if w.bar != nil {
		w.bar.Finish()
	}
	if err != nil {
		return nil, fail(ctx, gdb, src, err)
	}

	slog.Info("Import complete",
		"source_id", src.ID,
		"persons", humanize.Comma(int64(w.stats.PersonsImported)),
		"relationships", humanize.Comma(int64(w.stats.RelationshipsImported)),
		"events", humanize.Comma(int64(w.stats.EventsImported)),
		"errors", len(w.stats.Errors),
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	return &family.ImportResult{Source: src, Stats: w.stats}, nil
}

func (i *importer) sourceName(filename, name string) string {
	if name != "" {
		return name
	}
	if i.cfg.Import.SourceName != "" {
		return i.cfg.Import.SourceName
	}
	return filepath.Base(filename)
}

// createSource checks the content hash and creates a pending source in
// one transaction. The unique index on file_hash rejects a concurrent
// upload of the same bytes that passed the check.
func (i *importer) createSource(
	ctx context.Context,
	gdb *gorm.DB,
	data []byte,
	filename, name string,
) (*schema.Source, error) {
	hash := fileHash(data)
	src := &schema.Source{
		ID:         uuid.NewString(),
		Name:       name,
		Filename:   filepath.Base(filename),
		FileHash:   hash,
		FileSize:   int64(len(data)),
		Status:     schema.StatusPending,
		ImportedAt: time.Now().UTC(),
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := sourceByHash(tx, hash)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status != schema.StatusError {
				return family.DuplicateSourceError(filename, existing.ID)
			}
			// A failed import of the same bytes holds no data and is
			// replaced.
			err = tx.Where("id = ?", existing.ID).Delete(&schema.Source{}).Error
			if err != nil {
				return iostore.WriteError("source", err)
			}
		}
		if err = tx.Create(src).Error; err != nil {
			return iostore.WriteError("source", err)
		}
		return nil
	})
	if err == nil {
		return src, nil
	}
	if _, ok := family.IsDuplicate(err); ok {
		return nil, err
	}

	existing, qerr := sourceByHash(gdb.WithContext(ctx), hash)
	if qerr == nil && existing != nil {
		return nil, family.DuplicateSourceError(filename, existing.ID)
	}
	return nil, err
}

func sourceByHash(tx *gorm.DB, hash string) (*schema.Source, error) {
	var rows []schema.Source
	err := tx.Where("file_hash = ?", hash).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, iostore.QueryError("source", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// records are the extraction results in file order.
type records struct {
	persons  []personRec
	families []familyRec
}

type personRec struct {
	xref  string
	attrs gedcom.PersonAttrs
	err   error
}

type familyRec struct {
	xref  string
	attrs gedcom.FamilyAttrs
	err   error
}

// extract converts INDI and FAM elements concurrently. Extraction
// failures stay with their records and do not stop the others.
func (i *importer) extract(
	ctx context.Context,
	doc *gedcom.Document,
) (*records, error) {
	ex := gedcom.NewExtractor(doc.Notes())
	indis, fams := doc.Individuals(), doc.Families()
	res := &records{
		persons:  make([]personRec, len(indis)),
		families: make([]familyRec, len(fams)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, i.cfg.JobsNumber))
	for n, el := range indis {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return CancelledError(err)
			}
			attrs, err := ex.Person(el)
			res.persons[n] = personRec{xref: gedcom.XrefOf(el), attrs: attrs, err: err}
			return nil
		})
	}
	for n, el := range fams {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return CancelledError(err)
			}
			attrs, err := ex.Family(el)
			res.families[n] = familyRec{xref: gedcom.XrefOf(el), attrs: attrs, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Debug("Extracted GEDCOM records",
		"individuals", len(indis),
		"families", len(fams),
	)
	return res, nil
}

func complete(
	tx *gorm.DB,
	src *schema.Source,
	stats family.ImportStats,
	families int,
	header gedcom.HeaderAttrs,
) error {
	enc := gnfmt.GNjson{}
	meta, err := enc.Encode(header)
	if err != nil {
		return iostore.WriteError("source metadata", err)
	}

	src.Status = schema.StatusCompleted
	src.ErrorMessage = ""
	src.PersonsCount = stats.PersonsImported
	src.FamiliesCount = families
	src.RelationshipsCount = stats.RelationshipsImported
	src.EventsCount = stats.EventsImported
	src.Metadata = datatypes.JSON(meta)
	if err = tx.Save(src).Error; err != nil {
		return SourceStateError(src.ID, string(schema.StatusCompleted), err)
	}
	return nil
}

func setStatus(
	ctx context.Context,
	gdb *gorm.DB,
	src *schema.Source,
	status schema.SourceStatus,
	msg string,
) error {
	err := gdb.WithContext(ctx).Model(src).Updates(map[string]any{
		"status":        status,
		"error_message": msg,
	}).Error
	if err != nil {
		return SourceStateError(src.ID, string(status), err)
	}
	src.Status = status
	src.ErrorMessage = msg
	return nil
}

// fail records the error on the source and returns it. The status is
// written even when ctx is cancelled.
func fail(ctx context.Context, gdb *gorm.DB, src *schema.Source, err error) error {
	ctx = context.WithoutCancel(ctx)
	slog.Error("Import failed", "source_id", src.ID, "error", err)
	serr := setStatus(ctx, gdb, src, schema.StatusError, message(err))
	if serr != nil {
		slog.Error("Cannot mark source as failed",
			"source_id", src.ID,
			"error", serr,
		)
	}
	return err
}

// message is the plain text of err without terminal markup.
func message(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		return gnErr.Err.Error()
	}
	return err.Error()
}
