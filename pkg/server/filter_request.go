package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/webgrowth/facetfilter/pkg/params"
	"github.com/webgrowth/facetfilter/pkg/render"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// FilterRequest is the decoded body of a filter round trip: the grid being
// patched, paging and ordering, plus the filter intents parsed out of the
// cfs_ parameters riding along.
type FilterRequest struct {
	GridId      string `schema:"grid_id"`
	ContentType string `schema:"post_type"`
	Page        int    `schema:"paged"`
	PageSize    int    `schema:"posts_per_page"`
	Sort        string `schema:"cfs_sort"`
	Template    string `schema:"template"`
	Columns     int    `schema:"columns"`
	PageUrl     string `schema:"page_url"`

	Filters []types.FilterIntent `schema:"-"`
}

func filterRequestFromValues(values url.Values, result *FilterRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(result, values); err != nil {
		return err
	}
	result.Filters = params.Parse(values)
	return nil
}

func filterRequestFromRequest(r *http.Request, result *FilterRequest) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	values := r.Form
	if len(r.PostForm) > 0 {
		values = r.PostForm
	}
	return filterRequestFromValues(values, result)
}

// Query builds the content query for the request, before facet constraints
// are merged in.
func (fr *FilterRequest) Query() *types.ContentQuery {
	q := &types.ContentQuery{
		ContentType:   fr.ContentType,
		Status:        "publish",
		Page:          fr.Page,
		PageSize:      fr.PageSize,
		FacetFiltered: true,
	}
	if q.ContentType == "" {
		q.ContentType = "post"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 12
	}
	q.OrderBy, q.Order = splitSortToken(fr.Sort)
	return q
}

// splitSortToken decodes "<orderby>-<order>" tokens like "date-DESC".
func splitSortToken(token string) (string, string) {
	if token == "" {
		return "date", "DESC"
	}
	if i := strings.LastIndex(token, "-"); i > 0 {
		orderBy, order := token[:i], token[i+1:]
		if order == "ASC" || order == "DESC" {
			return orderBy, order
		}
	}
	return token, "DESC"
}

func parseQueryFilters(r *http.Request) []types.FilterIntent {
	return params.Parse(r.URL.Query())
}

// facetOptionsFromRequest reads the per-placement render options the facet
// render endpoints accept alongside the filter parameters.
func facetOptionsFromRequest(r *http.Request) render.FacetOptions {
	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("posts_per_page"))
	return render.FacetOptions{
		TargetGrid:  q.Get("target_grid"),
		ContentType: q.Get("post_type"),
		PageSize:    pageSize,
	}
}

func (fr *FilterRequest) pageUrl() *url.URL {
	if fr.PageUrl != "" {
		if u, err := url.Parse(fr.PageUrl); err == nil {
			return u
		}
	}
	return &url.URL{Path: "/"}
}
