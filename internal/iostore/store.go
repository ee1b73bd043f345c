// Package iostore implements family.Store and family.Catalog over GORM.
// It works with PostgreSQL and SQLite alike.
package iostore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/schema"
	"gorm.io/gorm"
)

// chunkSize keeps IN lists well below parameter limits of both
// databases.
const chunkSize = 2000

// storeOrder is the import order of rows. Traversals rely on it to be
// stable.
const storeOrder = "created_at, id"

// Store reads and administers persons, relationships and sources.
type Store struct {
	db *gorm.DB
}

var (
	_ family.Store   = (*Store)(nil)
	_ family.Catalog = (*Store)(nil)
)

// New creates a Store over the GORM handle.
func New(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Person returns a person by id.
func (s *Store) Person(ctx context.Context, id string) (*schema.Person, error) {
	var res schema.Person
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, family.PersonNotFoundError(id)
	}
	if err != nil {
		return nil, QueryError("person", err)
	}
	return &res, nil
}

// Persons returns persons in the order of ids, skipping unknown ids.
func (s *Store) Persons(ctx context.Context, ids []string) ([]schema.Person, error) {
	byID := make(map[string]schema.Person, len(ids))
	for chunk := range slices.Chunk(ids, chunkSize) {
		var rows []schema.Person
		err := s.db.WithContext(ctx).Where("id IN ?", chunk).Find(&rows).Error
		if err != nil {
			return nil, QueryError("persons", err)
		}
		for _, v := range rows {
			byID[v.ID] = v
		}
	}

	res := make([]schema.Person, 0, len(byID))
	seen := make(map[string]bool, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			res = append(res, p)
		}
	}
	return res, nil
}

// FindPersons matches name against given names, surname, nickname and
// the full name, ignoring case.
func (s *Store) FindPersons(
	ctx context.Context,
	sourceID, name string,
) ([]schema.Person, error) {
	q := s.db.WithContext(ctx).Model(&schema.Person{})
	if sourceID != "" {
		q = q.Where("source_id = ?", sourceID)
	}
	if name = strings.TrimSpace(name); name != "" {
		like := "%" + escapeLike(strings.ToLower(name)) + "%"
		lower := s.lowerFunc()
		q = q.Where(
			fmt.Sprintf(
				`%[1]s(given_names) LIKE @q ESCAPE '\' OR
				 %[1]s(surname) LIKE @q ESCAPE '\' OR
				 %[1]s(nickname) LIKE @q ESCAPE '\' OR
				 %[1]s(given_names || ' ' || surname) LIKE @q ESCAPE '\'`,
				lower,
			),
			map[string]any{"q": like},
		)
	}

	var res []schema.Person
	if err := q.Order(storeOrder).Find(&res).Error; err != nil {
		return nil, QueryError("persons", err)
	}
	return res, nil
}

// RelationshipsOf returns relationships of a person in import order.
func (s *Store) RelationshipsOf(
	ctx context.Context,
	personID string,
) ([]schema.Relationship, error) {
	var res []schema.Relationship
	err := s.db.WithContext(ctx).
		Where("person1_id = ? OR person2_id = ?", personID, personID).
		Order(storeOrder).
		Find(&res).Error
	if err != nil {
		return nil, QueryError("relationships", err)
	}
	return res, nil
}

// RelationshipsTouching returns relationships with any end in ids, in
// import order.
func (s *Store) RelationshipsTouching(
	ctx context.Context,
	ids []string,
) ([]schema.Relationship, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var res []schema.Relationship
	seen := make(map[string]bool)
	for chunk := range slices.Chunk(ids, chunkSize) {
		var rows []schema.Relationship
		err := s.db.WithContext(ctx).
			Where("person1_id IN ? OR person2_id IN ?", chunk, chunk).
			Order(storeOrder).
			Find(&rows).Error
		if err != nil {
			return nil, QueryError("relationships", err)
		}
		for _, v := range rows {
			if !seen[v.ID] {
				seen[v.ID] = true
				res = append(res, v)
			}
		}
	}

	if len(ids) > chunkSize {
		slices.SortStableFunc(res, func(a, b schema.Relationship) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		})
	}
	return res, nil
}

// RelationshipsBetween returns relationships with both ends in ids.
func (s *Store) RelationshipsBetween(
	ctx context.Context,
	ids []string,
) ([]schema.Relationship, error) {
	rels, err := s.RelationshipsTouching(ctx, ids)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	res := make([]schema.Relationship, 0, len(rels))
	for _, v := range rels {
		if set[v.Person1ID] && set[v.Person2ID] {
			res = append(res, v)
		}
	}
	return res, nil
}

// lowerFunc is the SQL function that lowercases names of any script.
func (s *Store) lowerFunc() string {
	if s.db.Dialector.Name() == db.DriverSQLite {
		return db.SQLiteLower
	}
	return "lower"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
