package iostore

import (
	"context"
	"errors"
	"slices"

	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/schema"
	"gorm.io/gorm"
)

// MaxPageSize is the largest page ListPersons returns.
const MaxPageSize = 1000

// Sources lists all sources, newest import first.
func (s *Store) Sources(ctx context.Context) ([]schema.Source, error) {
	var res []schema.Source
	err := s.db.WithContext(ctx).
		Order("imported_at DESC, id").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("sources", err)
	}
	return res, nil
}

// Source returns one source.
func (s *Store) Source(ctx context.Context, id string) (*schema.Source, error) {
	var res schema.Source
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, family.SourceNotFoundError(id)
	}
	if err != nil {
		return nil, QueryError("source", err)
	}
	return &res, nil
}

// DeleteSource removes the source and everything imported from it in
// one transaction. Dependent rows are deleted explicitly, so the result
// does not depend on foreign key support of the database.
func (s *Store) DeleteSource(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&schema.Source{}).Where("id = ?", id).Count(&n).Error
		if err != nil {
			return QueryError("source", err)
		}
		if n == 0 {
			return family.SourceNotFoundError(id)
		}

		deps := []struct {
			what  string
			model any
		}{
			{"events", &schema.Event{}},
			{"relationships", &schema.Relationship{}},
			{"persons", &schema.Person{}},
			{"places", &schema.Place{}},
		}
		for _, v := range deps {
			err = tx.Where("source_id = ?", id).Delete(v.model).Error
			if err != nil {
				return WriteError(v.what, err)
			}
		}

		err = tx.Where("id = ?", id).Delete(&schema.Source{}).Error
		if err != nil {
			return WriteError("source", err)
		}
		return nil
	})
}

// SourceStatistics counts rows of a source and summarizes its persons.
func (s *Store) SourceStatistics(
	ctx context.Context,
	id string,
) (*family.SourceStats, error) {
	if _, err := s.Source(ctx, id); err != nil {
		return nil, err
	}
	gdb := s.db.WithContext(ctx)
	res := &family.SourceStats{
		SourceID:      id,
		Relationships: make(map[string]int),
		Genders:       make(map[string]int),
	}

	counts := []struct {
		model any
		where string
		dst   *int
	}{
		{&schema.Person{}, "source_id = ?", &res.Persons},
		{&schema.Event{}, "source_id = ?", &res.Events},
		{&schema.Place{}, "source_id = ?", &res.Places},
		{&schema.Person{}, "source_id = ? AND is_living = true", &res.Living},
	}
	for _, v := range counts {
		var n int64
		if err := gdb.Model(v.model).Where(v.where, id).Count(&n).Error; err != nil {
			return nil, QueryError("statistics", err)
		}
		*v.dst = int(n)
	}

	type group struct {
		Kind  string
		Total int
	}
	var rels []group
	err := gdb.Model(&schema.Relationship{}).
		Select("relationship_type AS kind, count(*) AS total").
		Where("source_id = ?", id).
		Group("relationship_type").
		Scan(&rels).Error
	if err != nil {
		return nil, QueryError("statistics", err)
	}
	for _, v := range rels {
		res.Relationships[v.Kind] = v.Total
	}

	var genders []group
	err = gdb.Model(&schema.Person{}).
		Select("gender AS kind, count(*) AS total").
		Where("source_id = ?", id).
		Group("gender").
		Scan(&genders).Error
	if err != nil {
		return nil, QueryError("statistics", err)
	}
	for _, v := range genders {
		res.Genders[v.Kind] = v.Total
	}

	res.EarliestBirthYear, err = s.birthYear(ctx, id, "birth_date")
	if err != nil {
		return nil, err
	}
	res.LatestBirthYear, err = s.birthYear(ctx, id, "birth_date DESC")
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) birthYear(ctx context.Context, sourceID, order string) (*int, error) {
	var rows []schema.Person
	err := s.db.WithContext(ctx).
		Select("id", "birth_date").
		Where("source_id = ? AND birth_date IS NOT NULL", sourceID).
		Order(order).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, QueryError("statistics", err)
	}
	if len(rows) == 0 || rows[0].BirthDate == nil {
		return nil, nil
	}
	year := rows[0].BirthDate.Year()
	return &year, nil
}

// PersonDetails returns the person with its events and relatives.
func (s *Store) PersonDetails(
	ctx context.Context,
	id string,
) (*family.PersonDetails, error) {
	p, err := s.Person(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &family.PersonDetails{
		Person:    *p,
		Summary:   family.NewSummary(p),
		Events:    []schema.Event{},
		Relatives: []family.Relative{},
	}

	err = s.db.WithContext(ctx).
		Where("person_id = ? OR other_person_id = ?", id, id).
		Order("id").
		Find(&res.Events).Error
	if err != nil {
		return nil, QueryError("events", err)
	}
	slices.SortStableFunc(res.Events, byDate)

	rels, err := s.RelationshipsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	others := make([]string, len(rels))
	for i, r := range rels {
		others[i] = r.Other(id)
	}
	persons, err := s.Persons(ctx, others)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*schema.Person, len(persons))
	for i := range persons {
		byID[persons[i].ID] = &persons[i]
	}

	for _, r := range rels {
		other, ok := byID[r.Other(id)]
		if !ok {
			continue
		}
		res.Relatives = append(res.Relatives, family.Relative{
			Relationship: r,
			Person:       family.NewSummary(other),
			Description:  r.Description(id, other.Gender),
		})
	}
	return res, nil
}

// ListPersons pages through persons ordered by surname and given names.
func (s *Store) ListPersons(
	ctx context.Context,
	sourceID string,
	offset, limit int,
) ([]schema.Person, error) {
	if offset < 0 {
		return nil, family.InvalidParameterError("offset", "cannot be negative")
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, family.InvalidParameterError("limit", "must be between 1 and 1000")
	}

	q := s.db.WithContext(ctx).Model(&schema.Person{})
	if sourceID != "" {
		q = q.Where("source_id = ?", sourceID)
	}
	res := []schema.Person{}
	err := q.Order("surname, given_names, id").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	if err != nil {
		return nil, QueryError("persons", err)
	}
	return res, nil
}

// byDate puts dated events first, oldest first.
func byDate(a, b schema.Event) int {
	switch {
	case a.Date == nil && b.Date == nil:
		return 0
	case a.Date == nil:
		return 1
	case b.Date == nil:
		return -1
	}
	return a.Date.Compare(*b.Date)
}
