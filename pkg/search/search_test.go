package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gedgraph/internal/iotesting"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/schema"
	"github.com/gnames/gedgraph/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var born = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

func names(ms []family.Match) []string {
	res := make([]string, len(ms))
	for i, v := range ms {
		res[i] = v.FullName
	}
	return res
}

func ranker(store family.Store) *search.Ranker {
	return search.New(config.New(), store)
}

func TestSearchExactSurnameFirst(t *testing.T) {
	store := iotesting.NewMemStore().
		AddPerson(schema.Person{ID: "1", SourceID: "s", GivenNames: "Johnny", Surname: "Smithson"}).
		AddPerson(schema.Person{ID: "2", SourceID: "s", GivenNames: "John", Surname: "Smith"})

	res, err := ranker(store).Search(context.Background(), "Smith", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Johnny Smithson"}, names(res))
	assert.Greater(t, res[0].Score, res[1].Score)
}

func TestSearchRanking(t *testing.T) {
	store := iotesting.NewMemStore().
		AddPerson(schema.Person{ID: "nick", SourceID: "s", GivenNames: "Robert", Surname: "Lee",
			Nickname: "Bobby Smith"}).
		AddPerson(schema.Person{ID: "partial", SourceID: "s", GivenNames: "Anna", Surname: "Smithers"}).
		AddPerson(schema.Person{ID: "full", SourceID: "s", GivenNames: "John", Surname: "Smith"}).
		AddPerson(schema.Person{ID: "dated", SourceID: "s", GivenNames: "Jane", Surname: "Smith",
			BirthDate: &born, IsLiving: true}).
		AddPerson(schema.Person{ID: "none", SourceID: "s", GivenNames: "Carl", Surname: "Brown"})

	res, err := ranker(store).Search(context.Background(), "smith", "", 0)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Jane Smith", "John Smith", "Anna Smithers", "Robert Lee"},
		names(res))
}

func TestSearchFullName(t *testing.T) {
	store := iotesting.NewMemStore().
		AddPerson(schema.Person{ID: "1", SourceID: "s", GivenNames: "John Paul", Surname: "Smith"}).
		AddPerson(schema.Person{ID: "2", SourceID: "s", GivenNames: "John", Surname: "Smith"})

	res, err := ranker(store).Search(context.Background(), "  john   SMITH ", "", 5)
	require.NoError(t, err)
	require.Len(t, res, 1, "full name matches only as a whole")
	assert.Equal(t, "2", res[0].ID)
	assert.Equal(t, search.WeightFullExact, res[0].Score)
}

func TestSearchStableTies(t *testing.T) {
	store := iotesting.NewMemStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		store.AddPerson(schema.Person{ID: id, SourceID: "s", GivenNames: "Mary", Surname: "Jones"})
	}

	for range 3 {
		res, err := ranker(store).Search(context.Background(), "jones", "", 10)
		require.NoError(t, err)
		ids := make([]string, len(res))
		for i, v := range res {
			ids[i] = v.ID
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	}
}

func TestSearchSourceAndLimit(t *testing.T) {
	store := iotesting.NewMemStore().
		AddPerson(schema.Person{ID: "1", SourceID: "s1", GivenNames: "Ada", Surname: "King"}).
		AddPerson(schema.Person{ID: "2", SourceID: "s2", GivenNames: "Ada", Surname: "Byron"}).
		AddPerson(schema.Person{ID: "3", SourceID: "s1", GivenNames: "Adam", Surname: "King"})
	r := ranker(store)
	ctx := context.Background()

	res, err := r.Search(ctx, "ada", "s1", 10)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	for _, v := range res {
		assert.Equal(t, "s1", v.SourceID)
	}

	res, err = r.Search(ctx, "ada", "", 1)
	require.NoError(t, err)
	assert.Len(t, res, 1)

	res, err = r.Search(ctx, "zz", "", 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchInvalid(t *testing.T) {
	store := iotesting.NewMemStore()
	r := ranker(store)
	ctx := context.Background()

	for _, q := range []string{"", " ", "a", " b "} {
		_, err := r.Search(ctx, q, "", 10)
		assert.True(t, family.IsInvalidParameter(err), q)
	}
	_, err := r.Search(ctx, "smith", "", -1)
	assert.True(t, family.IsInvalidParameter(err))
	assert.Zero(t, store.Calls)
}

func TestScore(t *testing.T) {
	p := &schema.Person{GivenNames: "Mary Ann", Surname: "Lee"}
	assert.Equal(t, search.WeightNameExact+search.WeightFullPartial, search.Score("ann", p))
	assert.Equal(t, search.WeightNamePartial+search.WeightFullPartial, search.Score("mar", p))
	assert.Zero(t, search.Score("xyz", p))

	assert.Equal(t,
		search.WeightFullExact+search.WeightNameExact+
			search.WeightHasBirth+search.WeightHasDeathState,
		search.Score("lee", &schema.Person{Surname: "Lee", BirthDate: &born, IsLiving: true}))
}
