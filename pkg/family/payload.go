package family

import (
	"time"

	"github.com/gnames/gedgraph/pkg/schema"
)

// ImportStats are the counts of one import.
type ImportStats struct {
	PersonsImported       int `json:"persons_imported"`
	RelationshipsImported int `json:"relationships_imported"`
	EventsImported        int `json:"events_imported"`

	// Errors name the failed records, for example
	// "Individual @I5@: <reason>".
	Errors []string `json:"errors"`
}

// ImportResult is returned by Importer.
type ImportResult struct {
	Source *schema.Source `json:"source"`
	Stats  ImportStats    `json:"import_statistics"`
}

// Metadata describes the size and limits of a query result.
type Metadata struct {
	TotalPersons       int    `json:"total_persons"`
	TotalRelationships int    `json:"total_relationships"`
	MaxGenerations     int    `json:"max_generations"`
	SourceID           string `json:"source_id,omitempty"`
}

// Tree is the subgraph around a focal person.
type Tree struct {
	FocalPerson   *schema.Person        `json:"focal_person"`
	Persons       []schema.Person       `json:"persons"`
	Relationships []schema.Relationship `json:"relationships"`
	Metadata      Metadata              `json:"metadata"`
}

// Kin is a person reached by an ancestor or descendant walk.
type Kin struct {
	Person schema.Person `json:"person"`

	// Generation is the number of parent-child hops from the focal
	// person at first discovery.
	Generation int `json:"generation"`
}

// Lineage is the result of an ancestor or descendant walk. Persons are in
// breadth-first discovery order.
type Lineage struct {
	FocalPerson   *schema.Person        `json:"focal_person"`
	Persons       []Kin                 `json:"persons"`
	Relationships []schema.Relationship `json:"relationships"`
	Metadata      Metadata              `json:"metadata"`
}

// Hop is one edge of a relationship path.
type Hop struct {
	FromID         string                  `json:"from_id"`
	ToID           string                  `json:"to_id"`
	RelationshipID string                  `json:"relationship_id"`
	Type           schema.RelationshipType `json:"relationship_type"`

	// Description names the ToID person as seen from FromID, for
	// example "mother".
	Description string `json:"description"`
}

// Path connects two persons. Found is false when no path exists within
// the depth limit.
type Path struct {
	Found    bool            `json:"found"`
	PersonA  *schema.Person  `json:"person_a"`
	PersonB  *schema.Person  `json:"person_b"`
	Hops     []Hop           `json:"hops"`
	Persons  []schema.Person `json:"persons"`
	MaxDepth int             `json:"max_depth"`
}

// Summary is a compact person view for lists.
type Summary struct {
	ID          string     `json:"id"`
	SourceID    string     `json:"source_id"`
	GedcomID    string     `json:"gedcom_id"`
	FullName    string     `json:"full_name"`
	DisplayName string     `json:"display_name"`
	Gender      string     `json:"gender"`
	LifeSpan    string     `json:"life_span"`
	BirthDate   *time.Time `json:"birth_date"`
	DeathDate   *time.Time `json:"death_date"`
	IsLiving    bool       `json:"is_living"`
}

// NewSummary creates a Summary of a person.
func NewSummary(p *schema.Person) Summary {
	return Summary{
		ID:          p.ID,
		SourceID:    p.SourceID,
		GedcomID:    p.GedcomID,
		FullName:    p.FullName(),
		DisplayName: p.DisplayName(),
		Gender:      p.Gender,
		LifeSpan:    p.LifeSpan(),
		BirthDate:   p.BirthDate,
		DeathDate:   p.DeathDate,
		IsLiving:    p.IsLiving,
	}
}

// Match is a search hit.
type Match struct {
	Summary
	Score float64 `json:"score"`
}

// Relative is a relationship seen from one of its persons.
type Relative struct {
	Relationship schema.Relationship `json:"relationship"`
	Person       Summary             `json:"person"`
	Description  string              `json:"description"`
}

// PersonDetails is a person with everything attached to it.
type PersonDetails struct {
	Person    schema.Person  `json:"person"`
	Summary   Summary        `json:"summary"`
	Events    []schema.Event `json:"events"`
	Relatives []Relative     `json:"relatives"`
}

// SourceStats summarizes the content of a source.
type SourceStats struct {
	SourceID      string         `json:"source_id"`
	Persons       int            `json:"persons"`
	Relationships map[string]int `json:"relationships_by_type"`
	Events        int            `json:"events"`
	Places        int            `json:"places"`
	Genders       map[string]int `json:"genders"`
	Living        int            `json:"living"`

	// EarliestBirthYear and LatestBirthYear are nil when no birth date
	// is known.
	EarliestBirthYear *int `json:"earliest_birth_year"`
	LatestBirthYear   *int `json:"latest_birth_year"`
}
