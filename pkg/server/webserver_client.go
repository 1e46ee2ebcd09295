package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/webgrowth/facetfilter/pkg/query"
	"github.com/webgrowth/facetfilter/pkg/types"
)

var (
	noFilterRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facetfilter_filter_requests_total",
		Help: "The total number of processed filter requests",
	})
	noLoadMoreRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facetfilter_load_more_requests_total",
		Help: "The total number of processed load more requests",
	})
	noCountRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facetfilter_count_requests_total",
		Help: "The total number of processed facet count requests",
	})
	noFilterErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facetfilter_filter_errors_total",
		Help: "The total number of failed filter requests",
	})
)

// FilterResponse is the patch payload for a filter round trip.
type FilterResponse struct {
	Html          string `json:"html"`
	Pagination    string `json:"pagination"`
	FoundPosts    int    `json:"found_posts"`
	MaxPages      int    `json:"max_pages"`
	CurrentPage   int    `json:"current_page"`
	ActiveFilters string `json:"active_filters"`
	Sort          string `json:"sort"`
}

type LoadMoreResponse struct {
	Html    string `json:"html"`
	HasMore bool   `json:"has_more"`
}

func (ws *WebServer) HandleFilter(w http.ResponseWriter, r *http.Request) {
	go noFilterRequests.Inc()
	fr := &FilterRequest{}
	if err := filterRequestFromRequest(r, fr); err != nil {
		go noFilterErrors.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := fr.Query()
	cache := types.NewDefinitionCache(ws.Repo)
	query.ApplyFilters(q, fr.Filters, cache)
	res := ws.Index.Execute(q)

	target := &types.GridTarget{
		Id:          fr.GridId,
		ContentType: q.ContentType,
		PageSize:    q.PageSize,
		OrderBy:     q.OrderBy,
		Order:       q.Order,
		Template:    fr.Template,
		Columns:     fr.Columns,
	}
	pageUrl := fr.pageUrl()
	settings := ws.Settings()

	html, err := ws.Renderer.Results(res, target, settings, pageUrl)
	if err != nil {
		go noFilterErrors.Inc()
		log.Printf("render filter results: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	chips := query.Summarize(fr.Filters, cache, pageUrl)
	chipsHtml, err := ws.Renderer.ActiveFilters(chips, pageUrl)
	if err != nil {
		log.Printf("render active filters: %v", err)
	}
	pagination, err := ws.Renderer.Pagination(res, settings)
	if err != nil {
		log.Printf("render pagination: %v", err)
	}
	sortHtml, err := ws.Renderer.SortControl(fr.Sort)
	if err != nil {
		log.Printf("render sort control: %v", err)
	}

	defaultHeaders(w, r, true, "0")
	err = json.NewEncoder(w).Encode(FilterResponse{
		Html:          string(html),
		Pagination:    string(pagination),
		FoundPosts:    res.Total,
		MaxPages:      res.MaxPages,
		CurrentPage:   res.Page,
		ActiveFilters: string(chipsHtml),
		Sort:          string(sortHtml),
	})
	if err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleLoadMore(w http.ResponseWriter, r *http.Request) {
	go noLoadMoreRequests.Inc()
	fr := &FilterRequest{}
	if err := filterRequestFromRequest(r, fr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := fr.Query()
	cache := types.NewDefinitionCache(ws.Repo)
	query.ApplyFilters(q, fr.Filters, cache)
	res := ws.Index.Execute(q)

	html := ""
	for _, doc := range res.Documents {
		card, err := ws.Renderer.Card(doc, fr.Template)
		if err != nil {
			log.Printf("render card: %v", err)
			continue
		}
		html += string(card)
	}

	defaultHeaders(w, r, true, "0")
	err := json.NewEncoder(w).Encode(LoadMoreResponse{
		Html:    html,
		HasMore: res.Page < res.MaxPages,
	})
	if err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

// HandleCounts reports per-option counts for every facet under the current
// filter state. Each facet is counted against the state with its own
// selection removed, so selecting an option does not zero out its siblings.
func (ws *WebServer) HandleCounts(w http.ResponseWriter, r *http.Request) {
	go noCountRequests.Inc()
	fr := &FilterRequest{}
	if err := filterRequestFromValues(r.URL.Query(), fr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	defs, err := ws.Repo.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache := types.NewDefinitionCache(ws.Repo)
	counts := map[string]any{}
	for _, def := range defs {
		others := make([]types.FilterIntent, 0, len(fr.Filters))
		for _, in := range fr.Filters {
			if in.Slug != def.Slug {
				others = append(others, in)
			}
		}
		q := fr.Query()
		query.ApplyFilters(q, others, cache)
		within := ws.Index.MatchIds(q)

		switch def.Source {
		case types.TaxonomySource:
			counts[def.Slug] = ws.Index.TermChoices(def.SourceKey, within)
		case types.CustomFieldSource:
			counts[def.Slug] = ws.Index.MetaChoices(def.SourceKey, within)
		case types.AttributeSource:
			if def.SourceKey == "post_author" {
				counts[def.Slug] = ws.Index.AuthorChoices(within)
			}
		}
	}

	defaultHeaders(w, r, true, "10")
	if err := json.NewEncoder(w).Encode(counts); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

// ConfigResponse is the bootstrap payload the embed script reads before it
// wires any controls.
type ConfigResponse struct {
	Settings  types.Settings           `json:"settings"`
	Facets    []*types.FacetDefinition `json:"facets"`
	Endpoints map[string]string        `json:"endpoints"`
	Strings   map[string]string        `json:"strings"`
}

func (ws *WebServer) HandleConfig(w http.ResponseWriter, r *http.Request) {
	defs, err := ws.Repo.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	publicHeaders(w, r, true, "60")
	err = json.NewEncoder(w).Encode(ConfigResponse{
		Settings: ws.Settings(),
		Facets:   defs,
		Endpoints: map[string]string{
			"filter":   "/api/filter",
			"loadMore": "/api/load-more",
			"counts":   "/api/counts",
			"facets":   "/api/facets",
		},
		Strings: map[string]string{
			"noResults": "No results match the selected filters.",
			"loadMore":  "Load more",
			"clearAll":  "Clear all filters",
		},
	})
	if err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleRenderFacets(w http.ResponseWriter, r *http.Request) {
	defs, err := ws.Repo.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	intents := map[string]*types.FilterIntent{}
	for _, in := range parseQueryFilters(r) {
		current := in
		intents[in.Slug] = &current
	}

	opts := facetOptionsFromRequest(r)
	defaultHeaders(w, r, false, "0")
	for _, def := range defs {
		html, err := ws.Renderer.Facet(def, intents[def.Slug], opts)
		if err != nil {
			log.Printf("render facet %s: %v", def.Slug, err)
			continue
		}
		if _, err := w.Write([]byte(html)); err != nil {
			log.Printf("Error handling request: %v", err)
			return
		}
	}
}

func (ws *WebServer) HandleRenderFacet(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	def, err := ws.Repo.Get(slug)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	var current *types.FilterIntent
	for _, in := range parseQueryFilters(r) {
		if in.Slug == slug {
			c := in
			current = &c
			break
		}
	}
	html, err := ws.Renderer.Facet(def, current, facetOptionsFromRequest(r))
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	defaultHeaders(w, r, false, "0")
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}
