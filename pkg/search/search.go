// Package search ranks persons against a free text query.
package search

import (
	"context"
	"slices"
	"strings"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/schema"
)

// MinQueryLen is the shortest accepted query, in characters.
const MinQueryLen = 2

// MaxLimit is the largest number of results a search returns.
const MaxLimit = 1000

// Score weights. Matches add up, so a person matching both as a full
// name and by surname ranks above one matching by surname only.
const (
	WeightFullExact     = 10.0
	WeightFullPartial   = 5.0
	WeightNameExact     = 4.0
	WeightNamePartial   = 3.0
	WeightNickname      = 2.0
	WeightHasBirth      = 0.5
	WeightHasDeathState = 0.5
)

// Ranker implements family.Searcher.
type Ranker struct {
	store        family.Store
	defaultLimit int
}

var _ family.Searcher = (*Ranker)(nil)

// New creates a Ranker over the store.
func New(cfg *config.Config, store family.Store) *Ranker {
	return &Ranker{store: store, defaultLimit: cfg.Query.SearchLimit}
}

// Search returns persons matching the query, most relevant first. The
// store narrows candidates by substring and source, the ranker scores
// them. Equal scores keep the store order. Zero limit uses the
// configured default.
func (r *Ranker) Search(
	ctx context.Context,
	query, sourceID string,
	limit int,
) ([]family.Match, error) {
	q := strings.Join(strings.Fields(query), " ")
	if len([]rune(q)) < MinQueryLen {
		return nil, family.InvalidParameterError(
			"query", "must have at least 2 characters",
		)
	}
	if limit == 0 {
		limit = r.defaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, family.InvalidParameterError(
			"limit", "must be between 1 and 1000",
		)
	}

	candidates, err := r.store.FindPersons(ctx, sourceID, q)
	if err != nil {
		return nil, err
	}

	res := make([]family.Match, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		score := Score(q, p)
		if score == 0 {
			continue
		}
		res = append(res, family.Match{Summary: family.NewSummary(p), Score: score})
	}

	slices.SortStableFunc(res, func(a, b family.Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// Score rates how well a person matches the query. Zero means no match.
// Completeness bonuses only apply to matching persons.
func Score(query string, p *schema.Person) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	var res float64
	full := strings.ToLower(strings.TrimSpace(p.GivenNames + " " + p.Surname))
	switch {
	case full == q:
		res += WeightFullExact
	case strings.Contains(full, q):
		res += WeightFullPartial
	}

	res += nameScore(q, p.GivenNames)
	res += nameScore(q, p.Surname)

	if p.Nickname != "" && strings.Contains(strings.ToLower(p.Nickname), q) {
		res += WeightNickname
	}

	if res == 0 {
		return 0
	}
	if p.BirthDate != nil {
		res += WeightHasBirth
	}
	if p.DeathDate != nil || p.IsLiving {
		res += WeightHasDeathState
	}
	return res
}

// nameScore rewards a name that equals the query, or contains a word
// equal to it, above a plain substring match.
func nameScore(q, name string) float64 {
	name = strings.ToLower(name)
	if name == "" || !strings.Contains(name, q) {
		return 0
	}
	if name == q || slices.Contains(strings.Fields(name), q) {
		return WeightNameExact
	}
	return WeightNamePartial
}
