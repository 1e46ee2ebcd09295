package query

import (
	"fmt"
	"net/url"
	"reflect"
	"testing"

	"github.com/webgrowth/facetfilter/pkg/params"
	"github.com/webgrowth/facetfilter/pkg/types"
)

type memRepo struct {
	defs map[string]*types.FacetDefinition
}

func (r *memRepo) All() ([]*types.FacetDefinition, error) {
	out := make([]*types.FacetDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out, nil
}

func (r *memRepo) Get(slug string) (*types.FacetDefinition, error) {
	if d, ok := r.defs[slug]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("no facet %s", slug)
}

func (r *memRepo) Save(def *types.FacetDefinition) error { return nil }
func (r *memRepo) Delete(id int64) error                 { return nil }

func testCache() *types.DefinitionCache {
	return types.NewDefinitionCache(&memRepo{defs: map[string]*types.FacetDefinition{
		"category": {
			Id: 1, Name: "Category", Slug: "category",
			Type: types.CheckboxFacet, Source: types.TaxonomySource, SourceKey: "category",
		},
		"price": {
			Id: 2, Name: "Price", Slug: "price",
			Type: types.RangeFacet, Source: types.CustomFieldSource, SourceKey: "price",
			Settings: types.FacetSettings{Min: 0, Max: 1000, Prefix: "$"},
		},
		"color": {
			Id: 3, Name: "Color", Slug: "color",
			Type: types.DropdownFacet, Source: types.CustomFieldSource, SourceKey: "color",
		},
	}})
}

func TestShouldFilter(t *testing.T) {
	cases := []struct {
		name string
		q    types.ContentQuery
		want bool
	}{
		{"facet filtered", types.ContentQuery{FacetFiltered: true}, true},
		{"main product query", types.ContentQuery{ContentType: "product", MainQuery: true}, true},
		{"untyped main query", types.ContentQuery{MainQuery: true}, true},
		{"secondary product query", types.ContentQuery{ContentType: "product"}, true},
		{"secondary page query", types.ContentQuery{ContentType: "page"}, false},
		{"secondary untyped query", types.ContentQuery{}, false},
		{"secondary nav menu query", types.ContentQuery{ContentType: "nav_menu_item"}, false},
	}
	for _, c := range cases {
		if got := ShouldFilter(&c.q, nil); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestShouldFilterHookWins(t *testing.T) {
	q := &types.ContentQuery{ContentType: "page", MainQuery: true}
	if !ShouldFilter(q, func(*types.ContentQuery) bool { return true }) {
		t.Error("hook force-enable was ignored")
	}
	q2 := &types.ContentQuery{FacetFiltered: true}
	if ShouldFilter(q2, func(*types.ContentQuery) bool { return false }) {
		t.Error("hook veto was ignored")
	}
}

func TestApplyFiltersPreservesExisting(t *testing.T) {
	q := &types.ContentQuery{
		ContentType: "product",
		TaxQuery: []types.TaxConstraint{
			{Taxonomy: "visibility", Terms: []string{"visible"}, Operator: types.In},
		},
	}
	intents := params.Parse(url.Values{"cfs_category": {"books"}})
	ApplyFilters(q, intents, testCache())

	if len(q.TaxQuery) != 2 {
		t.Fatalf("expected 2 tax groups, got %d", len(q.TaxQuery))
	}
	if q.TaxQuery[0].Taxonomy != "visibility" {
		t.Errorf("pre-existing constraint was displaced: %+v", q.TaxQuery[0])
	}
	if q.TaxQuery[1].Taxonomy != "category" || q.TaxQuery[1].Origin != "category" {
		t.Errorf("facet constraint wrong: %+v", q.TaxQuery[1])
	}
}

func TestApplyFiltersIdempotent(t *testing.T) {
	q := &types.ContentQuery{ContentType: "product"}
	intents := params.Parse(url.Values{
		"cfs_category":  {"books"},
		"cfs_price_min": {"50"},
		"cfs_price_max": {"200"},
	})
	cache := testCache()
	ApplyFilters(q, intents, cache)
	once := *q
	onceTax := append([]types.TaxConstraint(nil), q.TaxQuery...)
	onceMeta := append([]types.MetaConstraint(nil), q.MetaQuery...)

	ApplyFilters(q, intents, cache)
	if !reflect.DeepEqual(q.TaxQuery, onceTax) || !reflect.DeepEqual(q.MetaQuery, onceMeta) {
		t.Errorf("second application changed the query:\nfirst  %+v\nsecond %+v", once, *q)
	}
}

func TestApplyFiltersPriceRange(t *testing.T) {
	q := &types.ContentQuery{ContentType: "product"}
	intents := params.Parse(url.Values{
		"cfs_price_min": {"50"},
		"cfs_price_max": {"200"},
	})
	ApplyFilters(q, intents, testCache())

	if len(q.MetaQuery) != 1 {
		t.Fatalf("expected 1 meta group, got %d", len(q.MetaQuery))
	}
	m := q.MetaQuery[0]
	if m.Key != "price" || m.Compare != types.Between || m.Type != types.NumericType {
		t.Errorf("wrong meta constraint: %+v", m)
	}
	if !reflect.DeepEqual(m.Values, []string{"50", "200"}) {
		t.Errorf("wrong bounds: %v", m.Values)
	}
}

func TestApplyFiltersRangeBoundFallback(t *testing.T) {
	q := &types.ContentQuery{ContentType: "product"}
	intents := params.Parse(url.Values{"cfs_price_min": {"50"}})
	ApplyFilters(q, intents, testCache())

	if len(q.MetaQuery) != 1 {
		t.Fatalf("expected 1 meta group, got %d", len(q.MetaQuery))
	}
	if !reflect.DeepEqual(q.MetaQuery[0].Values, []string{"50", "1000"}) {
		t.Errorf("missing max should fall back to the configured bound: %v", q.MetaQuery[0].Values)
	}
}

func TestApplyFiltersUnknownSlug(t *testing.T) {
	q := &types.ContentQuery{ContentType: "product"}
	intents := params.Parse(url.Values{
		"cfs_nonexistent": {"x"},
		"cfs_category":    {"books"},
	})
	ApplyFilters(q, intents, testCache())

	if len(q.TaxQuery) != 1 || len(q.MetaQuery) != 0 {
		t.Errorf("unknown slug must contribute nothing: tax=%d meta=%d", len(q.TaxQuery), len(q.MetaQuery))
	}
}

func interceptRepo() types.FacetRepository {
	return &memRepo{defs: map[string]*types.FacetDefinition{
		"category": {
			Id: 1, Name: "Category", Slug: "category",
			Type: types.CheckboxFacet, Source: types.TaxonomySource, SourceKey: "category",
		},
	}}
}

func TestInterceptSkipsNonCandidates(t *testing.T) {
	repo := interceptRepo()
	values := url.Values{"cfs_category": {"books"}}

	menu := &types.ContentQuery{ContentType: "nav_menu_item"}
	Intercept(menu, values, repo, nil)
	if len(menu.TaxQuery) != 0 {
		t.Errorf("menu query was filtered: %+v", menu)
	}

	plain := &types.ContentQuery{ContentType: "product", MainQuery: true}
	Intercept(plain, url.Values{"paged": {"2"}}, repo, nil)
	if len(plain.TaxQuery) != 0 {
		t.Errorf("filter-free request touched the query: %+v", plain)
	}
}

func TestInterceptFiltersBuilderQueries(t *testing.T) {
	repo := interceptRepo()
	values := url.Values{"cfs_category": {"books"}}

	secondary := &types.ContentQuery{ContentType: "product"}
	Intercept(secondary, values, repo, nil)
	if len(secondary.TaxQuery) != 1 || secondary.TaxQuery[0].Origin != "category" {
		t.Errorf("secondary concrete-content-type query was not filtered: %+v", secondary.TaxQuery)
	}

	main := &types.ContentQuery{MainQuery: true}
	Intercept(main, values, repo, nil)
	if len(main.TaxQuery) != 1 {
		t.Errorf("untyped main query was not filtered: %+v", main.TaxQuery)
	}
}

func TestApplyFiltersMultiValue(t *testing.T) {
	q := &types.ContentQuery{ContentType: "product"}
	intents := params.Parse(url.Values{"cfs_color": {"red", "blue"}})
	ApplyFilters(q, intents, testCache())

	if len(q.MetaQuery) != 1 {
		t.Fatalf("expected 1 meta group, got %d", len(q.MetaQuery))
	}
	m := q.MetaQuery[0]
	if m.Compare != types.In || m.Type != types.CharType {
		t.Errorf("multi value selection should compare IN CHAR: %+v", m)
	}
}
