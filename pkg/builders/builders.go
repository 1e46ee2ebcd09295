package builders

import (
	"fmt"

	"github.com/webgrowth/facetfilter/pkg/client"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// ControlOption is one entry of a select control.
type ControlOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Control is one setting of a widget's edit panel.
type Control struct {
	Name    string          `json:"name"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Default string          `json:"default,omitempty"`
	Options []ControlOption `json:"options,omitempty"`
}

// Widget is the declarative registration payload for one builder widget.
type Widget struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Icon     string    `json:"icon,omitempty"`
	Controls []Control `json:"controls"`
}

// Integration describes how one page builder hosts the filter widgets: the
// widget definitions it registers and the matcher that recognizes its grids.
type Integration interface {
	Name() string
	Widgets(repo types.FacetRepository) ([]Widget, error)
	GridMatcher() client.Matcher
}

// Registry keeps the active builder integrations and feeds their grid
// matchers to the client controller.
type Registry struct {
	integrations []Integration
}

func NewRegistry() *Registry {
	return &Registry{integrations: []Integration{
		elementorIntegration{},
		bricksIntegration{},
		jetEngineIntegration{},
	}}
}

func (r *Registry) Register(i Integration) {
	r.integrations = append(r.integrations, i)
}

func (r *Registry) Integrations() []Integration {
	return r.integrations
}

// AllWidgets collects every integration's widget definitions, for the config
// payload the embed script reads.
func (r *Registry) AllWidgets(repo types.FacetRepository) (map[string][]Widget, error) {
	out := make(map[string][]Widget, len(r.integrations))
	for _, i := range r.integrations {
		widgets, err := i.Widgets(repo)
		if err != nil {
			return nil, fmt.Errorf("widgets for %s: %w", i.Name(), err)
		}
		out[i.Name()] = widgets
	}
	return out, nil
}

// facetOptions builds the facet picker choices shared by every builder's
// facet widget.
func facetOptions(repo types.FacetRepository) ([]ControlOption, error) {
	defs, err := repo.All()
	if err != nil {
		return nil, err
	}
	options := make([]ControlOption, 0, len(defs))
	for _, def := range defs {
		options = append(options, ControlOption{Value: def.Slug, Label: def.DisplayLabel()})
	}
	return options, nil
}

func facetControls(repo types.FacetRepository) ([]Control, error) {
	options, err := facetOptions(repo)
	if err != nil {
		return nil, err
	}
	return []Control{
		{Name: "facet", Label: "Facet", Type: "select", Options: options},
		{Name: "label", Label: "Label override", Type: "text"},
		{Name: "show_count", Label: "Show counts", Type: "switch", Default: "yes"},
	}, nil
}

func resultsControls() []Control {
	return []Control{
		{Name: "content_type", Label: "Content type", Type: "text", Default: "post"},
		{Name: "page_size", Label: "Items per page", Type: "number", Default: "12"},
		{Name: "columns", Label: "Columns", Type: "number", Default: "3"},
		{Name: "order_by", Label: "Order by", Type: "select", Default: "date", Options: []ControlOption{
			{Value: "date", Label: "Date"},
			{Value: "title", Label: "Title"},
		}},
		{Name: "order", Label: "Order", Type: "select", Default: "DESC", Options: []ControlOption{
			{Value: "DESC", Label: "Descending"},
			{Value: "ASC", Label: "Ascending"},
		}},
		{Name: "template", Label: "Item template", Type: "text"},
	}
}
