// Package family defines the contracts around the family graph: the store
// that reads persons and relationships, the importer of GEDCOM files, the
// source catalog, and the payloads returned to callers.
package family

import (
	"context"

	"github.com/gnames/gedgraph/pkg/schema"
)

// Store is read access to persons and relationships. Implementations
// must return rows in a stable order, so that traversals over the same
// data are reproducible.
type Store interface {
	// Person returns a person by id. A missing person is a
	// PersonNotFoundError.
	Person(ctx context.Context, id string) (*schema.Person, error)

	// Persons returns persons for the given ids in the order of ids.
	// Unknown ids are skipped.
	Persons(ctx context.Context, ids []string) ([]schema.Person, error)

	// FindPersons returns persons whose given names, surname or nickname
	// contain name, case-insensitively. Empty sourceID means all sources,
	// empty name means all persons.
	FindPersons(ctx context.Context, sourceID, name string) ([]schema.Person, error)

	// RelationshipsOf returns relationships where the person is at either
	// end.
	RelationshipsOf(ctx context.Context, personID string) ([]schema.Relationship, error)

	// RelationshipsTouching returns relationships with at least one end in
	// ids.
	RelationshipsTouching(ctx context.Context, ids []string) ([]schema.Relationship, error)

	// RelationshipsBetween returns relationships with both ends in ids.
	RelationshipsBetween(ctx context.Context, ids []string) ([]schema.Relationship, error)
}

// Catalog gives administrative access to imported sources and detailed
// person views.
type Catalog interface {
	// Sources lists sources, newest import first.
	Sources(ctx context.Context) ([]schema.Source, error)

	// Source returns one source or a SourceNotFoundError.
	Source(ctx context.Context, id string) (*schema.Source, error)

	// DeleteSource removes a source with every row imported from it.
	DeleteSource(ctx context.Context, id string) error

	// SourceStatistics summarizes the content of a source.
	SourceStatistics(ctx context.Context, id string) (*SourceStats, error)

	// PersonDetails returns a person with events and annotated
	// relationships.
	PersonDetails(ctx context.Context, id string) (*PersonDetails, error)

	// ListPersons pages through persons of a source, or of all sources
	// when sourceID is empty.
	ListPersons(ctx context.Context, sourceID string, offset, limit int) ([]schema.Person, error)
}

// Importer loads one GEDCOM file into the store.
type Importer interface {
	// Import stores the content of a GEDCOM file as a new source. The
	// returned source is in completed status unless an error is
	// returned. Identical content imported before gives a duplicate
	// error that carries the existing source id.
	Import(ctx context.Context, data []byte, filename, sourceName string) (*ImportResult, error)
}

// Traverser answers structural questions about the family graph.
type Traverser interface {
	Ancestors(ctx context.Context, personID string, generations int) (*Lineage, error)
	Descendants(ctx context.Context, personID string, generations int) (*Lineage, error)
	Tree(ctx context.Context, personID string, generations int, sourceID string) (*Tree, error)
	RelationshipPath(ctx context.Context, personA, personB string, maxDepth int) (*Path, error)
}

// Searcher ranks persons by how well they match a query.
type Searcher interface {
	Search(ctx context.Context, query, sourceID string, limit int) ([]Match, error)
}
