package render

import (
	"fmt"
	"html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/params"
	"github.com/webgrowth/facetfilter/pkg/types"
)

type pageLink struct {
	Number  int
	Current bool
}

// Results renders a grid of result cards plus count and pagination for the
// given target. The grid id ties the markup to the client controller; an
// empty target id gets a generated one.
func (r *Renderer) Results(res *content.Result, target *types.GridTarget, settings types.Settings, pageUrl *url.URL) (template.HTML, error) {
	gridId := target.Id
	if gridId == "" {
		gridId = uuid.NewString()
	}

	items := make([]template.HTML, 0, len(res.Documents))
	for _, doc := range res.Documents {
		card, err := r.Card(doc, target.Template)
		if err != nil {
			return "", err
		}
		items = append(items, card)
	}

	pagination, err := r.Pagination(res, settings)
	if err != nil {
		return "", err
	}

	columns := target.Columns
	if columns < 1 {
		columns = 3
	}
	return execute("results", struct {
		GridId      string
		ContentType string
		PageSize    int
		OrderBy     string
		Order       string
		Template    string
		Total       int
		Columns     int
		ShowCount   bool
		Loading     bool
		Items       []template.HTML
		Pagination  template.HTML
		ResetUrl    string
	}{
		GridId:      gridId,
		ContentType: target.ContentType,
		PageSize:    target.PageSize,
		OrderBy:     target.OrderBy,
		Order:       target.Order,
		Template:    target.Template,
		Total:       res.Total,
		Columns:     columns,
		ShowCount:   true,
		Items:       items,
		Pagination:  pagination,
		ResetUrl:    params.ResetURL(pageUrl),
	})
}

// Pagination renders the navigation block matching the configured pagination
// type: numbered page links, or a load-more button.
func (r *Renderer) Pagination(res *content.Result, settings types.Settings) (template.HTML, error) {
	var pagination template.HTML
	var err error
	if settings.PaginationType == "load_more" {
		pagination, err = execute("load-more", struct {
			NextPage int
			HasMore  bool
		}{res.Page + 1, res.Page < res.MaxPages})
	} else if res.MaxPages > 1 {
		pages := make([]pageLink, 0, res.MaxPages)
		for n := 1; n <= res.MaxPages; n++ {
			pages = append(pages, pageLink{Number: n, Current: n == res.Page})
		}
		pagination, err = execute("pagination", struct{ Pages []pageLink }{pages})
	}
	if err != nil {
		return "", fmt.Errorf("render pagination: %w", err)
	}
	return pagination, nil
}

// Card renders one result item. A custom template name other than the default
// falls back to the default card until the host registers its own.
func (r *Renderer) Card(doc *content.Document, templateName string) (template.HTML, error) {
	name := "card"
	if templateName != "" && tmpl.Lookup(templateName) != nil {
		name = templateName
	}
	card, err := execute(name, doc)
	if err != nil {
		return "", fmt.Errorf("render card %d: %w", doc.Id, err)
	}
	return card, nil
}

// ActiveFilters renders the chip row summarizing the applied filters.
func (r *Renderer) ActiveFilters(filters []types.ActiveFilter, pageUrl *url.URL) (template.HTML, error) {
	return execute("active-filters", struct {
		Filters  []types.ActiveFilter
		ResetUrl string
	}{filters, params.ResetURL(pageUrl)})
}

type sortOption struct {
	Value    string
	Label    string
	Selected bool
}

// SortControl renders the sort dropdown. Tokens are "<orderby>-<order>".
func (r *Renderer) SortControl(current string) (template.HTML, error) {
	options := []sortOption{
		{Value: "date-DESC", Label: "Newest first"},
		{Value: "date-ASC", Label: "Oldest first"},
		{Value: "title-ASC", Label: "Title A to Z"},
		{Value: "title-DESC", Label: "Title Z to A"},
	}
	if current == "" {
		current = "date-DESC"
	}
	for i := range options {
		options[i].Selected = options[i].Value == current
	}
	return execute("sort", struct{ Options []sortOption }{options})
}
