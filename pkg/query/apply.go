package query

import (
	"net/url"

	"github.com/webgrowth/facetfilter/pkg/params"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// Secondary-query content types that never get facet filtering. The main
// query is exempt from this list; it is filtered whenever filter parameters
// are present.
var skippedContentTypes = map[string]struct{}{
	"":              {},
	"any":           {},
	"page":          {},
	"revision":      {},
	"nav_menu_item": {},
}

// DecisionHook lets the host override the filtering decision for a query.
// Returning false vetoes filtering, true forces it.
type DecisionHook func(q *types.ContentQuery) bool

// ShouldFilter reports whether q is a candidate for facet constraints: our
// own queries and the page's main query always qualify, and secondary
// builder-issued queries qualify when they target a concrete content type, so
// embedded grid widgets are filtered too.
func ShouldFilter(q *types.ContentQuery, hook DecisionHook) bool {
	if hook != nil {
		return hook(q)
	}
	if q.FacetFiltered || q.MainQuery {
		return true
	}
	_, skip := skippedContentTypes[q.ContentType]
	return !skip
}

// Intercept is the host-facing hook: given the request parameters of a page
// view, it merges any filter state into q when q qualifies for filtering.
// Safe to call more than once on the same query.
func Intercept(q *types.ContentQuery, values url.Values, repo types.FacetRepository, hook DecisionHook) {
	if !params.HasFilterParams(values) {
		return
	}
	if !ShouldFilter(q, hook) {
		return
	}
	ApplyFilters(q, params.Parse(values), types.NewDefinitionCache(repo))
}

// ApplyFilters merges the given intents into q. Existing constraints are
// preserved and new groups are appended with AND semantics. Groups carry the
// originating facet slug, so running the merge twice over the same query is a
// no-op for already-applied facets.
func ApplyFilters(q *types.ContentQuery, intents []types.FilterIntent, cache *types.DefinitionCache) {
	if len(intents) == 0 {
		return
	}
	applied := q.FacetOrigins()
	for _, in := range intents {
		if in.IsEmpty() {
			continue
		}
		if _, done := applied[in.Slug]; done {
			continue
		}
		def := cache.Resolve(in.Slug)
		if def == nil {
			continue
		}
		c := Translate(in, def)
		if c.empty() {
			continue
		}
		q.TaxQuery = append(q.TaxQuery, c.Tax...)
		q.MetaQuery = append(q.MetaQuery, c.Meta...)
		if len(c.AuthorIn) > 0 {
			q.AuthorIn = c.AuthorIn
		}
		if c.DateQuery != nil {
			q.DateQuery = c.DateQuery
		}
		if c.SearchText != "" {
			q.SearchText = c.SearchText
		}
		applied[in.Slug] = struct{}{}
	}
}
