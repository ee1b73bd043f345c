// Package graph walks the family graph: ancestors, descendants, the
// bounded subgraph around a person, and the shortest relationship path
// between two persons.
//
// The engine keeps no state between calls. Every walk is breadth-first
// over snapshots read from a family.Store, and a visited set keyed by
// person id guarantees termination on cyclic data such as pedigree
// collapse or erroneous edges. Neighbors are explored in the order the
// store returns relationships, so repeated calls over unchanged data give
// identical results.
package graph

import (
	"context"
	"fmt"
	"slices"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/schema"
)

// MaxPathDepth is the largest accepted depth for RelationshipPath.
const MaxPathDepth = 30

// Engine implements family.Traverser.
type Engine struct {
	store family.Store

	maxGenerations int
	pathDepth      int
}

var _ family.Traverser = (*Engine)(nil)

// New creates an Engine reading from store. Query limits come from cfg.
func New(cfg *config.Config, store family.Store) *Engine {
	return &Engine{
		store:          store,
		maxGenerations: cfg.Query.MaxGenerations,
		pathDepth:      cfg.Query.PathMaxDepth,
	}
}

// Ancestors walks parent-child edges upwards from the person. Each
// ancestor is annotated with the generation at which it was first
// reached. Zero generations gives an empty result.
func (e *Engine) Ancestors(
	ctx context.Context,
	personID string,
	generations int,
) (*family.Lineage, error) {
	return e.lineage(ctx, personID, generations, true)
}

// Descendants walks parent-child edges downwards from the person.
func (e *Engine) Descendants(
	ctx context.Context,
	personID string,
	generations int,
) (*family.Lineage, error) {
	return e.lineage(ctx, personID, generations, false)
}

func (e *Engine) lineage(
	ctx context.Context,
	personID string,
	generations int,
	up bool,
) (*family.Lineage, error) {
	if err := e.checkGenerations(generations, 0); err != nil {
		return nil, err
	}
	focal, err := e.store.Person(ctx, personID)
	if err != nil {
		return nil, err
	}

	res := &family.Lineage{
		FocalPerson:   focal,
		Persons:       []family.Kin{},
		Relationships: []schema.Relationship{},
		Metadata:      family.Metadata{MaxGenerations: generations},
	}

	visited := map[string]bool{personID: true}
	gens := make(map[string]int)
	var order []string
	frontier := []string{personID}

	for gen := 1; gen <= generations && len(frontier) > 0; gen++ {
		rels, err := e.store.RelationshipsTouching(ctx, frontier)
		if err != nil {
			return nil, err
		}
		idx := byPerson(rels)

		var next []string
		for _, id := range frontier {
			for _, r := range idx[id] {
				other, ok := parentOrChild(r, id, up)
				if !ok || visited[other] {
					continue
				}
				visited[other] = true
				gens[other] = gen
				order = append(order, other)
				next = append(next, other)
			}
		}
		frontier = next
	}

	if len(order) == 0 {
		return res, nil
	}

	persons, err := e.store.Persons(ctx, order)
	if err != nil {
		return nil, err
	}
	for _, p := range persons {
		res.Persons = append(res.Persons, family.Kin{Person: p, Generation: gens[p.ID]})
	}

	ids := append([]string{personID}, order...)
	rels, err := e.store.RelationshipsBetween(ctx, ids)
	if err != nil {
		return nil, err
	}
	res.Relationships = rels
	res.Metadata.TotalPersons = len(res.Persons)
	res.Metadata.TotalRelationships = len(rels)
	return res, nil
}

// Tree expands generation by generation from the focal person over
// relationships of any type. With a non-empty sourceID only persons of
// that source join the next generation. The result holds every
// relationship among the returned persons, not only the edges used by the
// walk.
func (e *Engine) Tree(
	ctx context.Context,
	personID string,
	generations int,
	sourceID string,
) (*family.Tree, error) {
	if err := e.checkGenerations(generations, 1); err != nil {
		return nil, err
	}
	focal, err := e.store.Person(ctx, personID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{personID: true}
	persons := []schema.Person{*focal}
	ids := []string{personID}
	frontier := []string{personID}

	for gen := 1; gen <= generations && len(frontier) > 0; gen++ {
		rels, err := e.store.RelationshipsTouching(ctx, frontier)
		if err != nil {
			return nil, err
		}
		idx := byPerson(rels)

		var candidates []string
		seen := make(map[string]bool)
		for _, id := range frontier {
			for _, r := range idx[id] {
				other := r.Other(id)
				if visited[other] || seen[other] {
					continue
				}
				seen[other] = true
				candidates = append(candidates, other)
			}
		}
		if len(candidates) == 0 {
			break
		}

		level, err := e.store.Persons(ctx, candidates)
		if err != nil {
			return nil, err
		}
		var next []string
		for _, p := range level {
			if sourceID != "" && p.SourceID != sourceID {
				continue
			}
			visited[p.ID] = true
			persons = append(persons, p)
			ids = append(ids, p.ID)
			next = append(next, p.ID)
		}
		frontier = next
	}

	rels, err := e.store.RelationshipsBetween(ctx, ids)
	if err != nil {
		return nil, err
	}
	if rels == nil {
		rels = []schema.Relationship{}
	}

	return &family.Tree{
		FocalPerson:   focal,
		Persons:       persons,
		Relationships: rels,
		Metadata: family.Metadata{
			TotalPersons:       len(persons),
			TotalRelationships: len(rels),
			MaxGenerations:     generations,
			SourceID:           sourceID,
		},
	}, nil
}

// RelationshipPath finds the shortest chain of relationships between two
// persons. Edges are followed in both directions. Among paths of equal
// length the one discovered first wins: persons are expanded in discovery
// order and their relationships in store order. Zero maxDepth uses the
// configured default. A missing path is a result with Found false.
func (e *Engine) RelationshipPath(
	ctx context.Context,
	personA, personB string,
	maxDepth int,
) (*family.Path, error) {
	if maxDepth == 0 {
		maxDepth = e.pathDepth
	}
	if err := e.checkPath(personA, personB, maxDepth); err != nil {
		return nil, err
	}

	a, err := e.store.Person(ctx, personA)
	if err != nil {
		return nil, err
	}
	b, err := e.store.Person(ctx, personB)
	if err != nil {
		return nil, err
	}

	res := &family.Path{
		PersonA:  a,
		PersonB:  b,
		Hops:     []family.Hop{},
		Persons:  []schema.Person{},
		MaxDepth: maxDepth,
	}

	came := make(map[string]step)
	visited := map[string]bool{personA: true}
	frontier := []string{personA}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		rels, err := e.store.RelationshipsTouching(ctx, frontier)
		if err != nil {
			return nil, err
		}
		idx := byPerson(rels)

		var next []string
		for _, id := range frontier {
			for _, r := range idx[id] {
				other := r.Other(id)
				if visited[other] {
					continue
				}
				visited[other] = true
				came[other] = step{prev: id, rel: r}
				if other == personB {
					return e.buildPath(ctx, res, came)
				}
				next = append(next, other)
			}
		}
		frontier = next
	}
	return res, nil
}

func (e *Engine) buildPath(
	ctx context.Context,
	res *family.Path,
	came map[string]step,
) (*family.Path, error) {
	var chain []string
	var rels []schema.Relationship
	for id := res.PersonB.ID; id != res.PersonA.ID; id = came[id].prev {
		chain = append(chain, id)
		rels = append(rels, came[id].rel)
	}
	chain = append(chain, res.PersonA.ID)
	slices.Reverse(chain)
	slices.Reverse(rels)

	persons, err := e.store.Persons(ctx, chain)
	if err != nil {
		return nil, err
	}
	genders := make(map[string]string, len(persons))
	for _, p := range persons {
		genders[p.ID] = p.Gender
	}

	for i, rel := range rels {
		from, to := chain[i], chain[i+1]
		res.Hops = append(res.Hops, family.Hop{
			FromID:         from,
			ToID:           to,
			RelationshipID: rel.ID,
			Type:           rel.Type,
			Description:    rel.Description(from, genders[to]),
		})
	}
	res.Persons = persons
	res.Found = true
	return res, nil
}

func (e *Engine) checkGenerations(generations, lowest int) error {
	if generations < lowest || generations > e.maxGenerations {
		return family.InvalidParameterError(
			"generations",
			rangeMsg(lowest, e.maxGenerations),
		)
	}
	return nil
}

func (e *Engine) checkPath(a, b string, maxDepth int) error {
	if a == "" || b == "" {
		return family.InvalidParameterError("person id", "cannot be empty")
	}
	if a == b {
		return family.InvalidParameterError(
			"person id",
			"path needs two different persons",
		)
	}
	if maxDepth < 1 || maxDepth > MaxPathDepth {
		return family.InvalidParameterError("max depth", rangeMsg(1, MaxPathDepth))
	}
	return nil
}

// step is how the path search reached a person.
type step struct {
	prev string
	rel  schema.Relationship
}

func rangeMsg(lowest, highest int) string {
	return fmt.Sprintf("must be between %d and %d", lowest, highest)
}

// byPerson indexes relationships by each of their ends, keeping the
// store order.
func byPerson(rels []schema.Relationship) map[string][]schema.Relationship {
	res := make(map[string][]schema.Relationship)
	for _, r := range rels {
		res[r.Person1ID] = append(res[r.Person1ID], r)
		if r.Person2ID != r.Person1ID {
			res[r.Person2ID] = append(res[r.Person2ID], r)
		}
	}
	return res
}

// parentOrChild returns the parent of id (up) or the child of id (down)
// if r is a parent-child edge in that direction.
func parentOrChild(r schema.Relationship, id string, up bool) (string, bool) {
	if r.Type != schema.RelParentChild {
		return "", false
	}
	if up && r.Person2ID == id {
		return r.Person1ID, true
	}
	if !up && r.Person1ID == id {
		return r.Person2ID, true
	}
	return "", false
}
