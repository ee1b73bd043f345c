package iotesting

import (
	"context"
	"slices"
	"strings"

	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/schema"
)

// MemStore is an in-memory family.Store for tests of graph algorithms.
// Rows are returned in insertion order.
type MemStore struct {
	persons []schema.Person
	rels    []schema.Relationship

	// Calls counts store method invocations.
	Calls int
}

var _ family.Store = (*MemStore)(nil)

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// AddPerson adds a person. Empty gender becomes "U".
func (m *MemStore) AddPerson(p schema.Person) *MemStore {
	if p.Gender == "" {
		p.Gender = "U"
	}
	m.persons = append(m.persons, p)
	return m
}

// Parent adds a primary biological parent-child edge.
func (m *MemStore) Parent(parent, child string) *MemStore {
	return m.link(parent, child, schema.RelParentChild)
}

// Spouse adds a primary spouse edge.
func (m *MemStore) Spouse(a, b string) *MemStore {
	return m.link(a, b, schema.RelSpouse)
}

// Sibling adds a primary sibling edge.
func (m *MemStore) Sibling(a, b string) *MemStore {
	return m.link(a, b, schema.RelSibling)
}

func (m *MemStore) link(p1, p2 string, typ schema.RelationshipType) *MemStore {
	r := schema.Relationship{
		ID:         p1 + "-" + string(typ) + "-" + p2,
		Person1ID:  p1,
		Person2ID:  p2,
		Type:       typ,
		IsPrimary:  true,
		IsCurrent:  true,
		Confidence: schema.ConfidenceHigh,
	}
	if p, ok := m.find(p1); ok {
		r.SourceID = p.SourceID
	}
	if typ == schema.RelParentChild {
		r.Subtype = schema.SubtypeBiological
	}
	m.rels = append(m.rels, r)
	return m
}

func (m *MemStore) find(id string) (schema.Person, bool) {
	for _, v := range m.persons {
		if v.ID == id {
			return v, true
		}
	}
	return schema.Person{}, false
}

func (m *MemStore) Person(_ context.Context, id string) (*schema.Person, error) {
	m.Calls++
	p, ok := m.find(id)
	if !ok {
		return nil, family.PersonNotFoundError(id)
	}
	return &p, nil
}

func (m *MemStore) Persons(_ context.Context, ids []string) ([]schema.Person, error) {
	m.Calls++
	var res []schema.Person
	for _, id := range ids {
		if p, ok := m.find(id); ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (m *MemStore) FindPersons(
	_ context.Context,
	sourceID, name string,
) ([]schema.Person, error) {
	m.Calls++
	name = strings.ToLower(name)
	var res []schema.Person
	for _, v := range m.persons {
		if sourceID != "" && v.SourceID != sourceID {
			continue
		}
		if name == "" ||
			strings.Contains(strings.ToLower(v.GivenNames), name) ||
			strings.Contains(strings.ToLower(v.Surname), name) ||
			strings.Contains(strings.ToLower(v.Nickname), name) ||
			strings.Contains(strings.ToLower(v.GivenNames+" "+v.Surname), name) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *MemStore) RelationshipsOf(
	ctx context.Context,
	personID string,
) ([]schema.Relationship, error) {
	return m.RelationshipsTouching(ctx, []string{personID})
}

func (m *MemStore) RelationshipsTouching(
	_ context.Context,
	ids []string,
) ([]schema.Relationship, error) {
	m.Calls++
	var res []schema.Relationship
	for _, v := range m.rels {
		if slices.Contains(ids, v.Person1ID) || slices.Contains(ids, v.Person2ID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *MemStore) RelationshipsBetween(
	_ context.Context,
	ids []string,
) ([]schema.Relationship, error) {
	m.Calls++
	var res []schema.Relationship
	for _, v := range m.rels {
		if slices.Contains(ids, v.Person1ID) && slices.Contains(ids, v.Person2ID) {
			res = append(res, v)
		}
	}
	return res, nil
}
