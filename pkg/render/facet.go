package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// Renderer produces the facet controls and result markup. It reads choices
// from the index and reflects the current intents into control state, so
// rendering after a page reload shows the selection the url carries.
type Renderer struct {
	Index *content.Index
}

func NewRenderer(idx *content.Index) *Renderer {
	return &Renderer{Index: idx}
}

type facetChoice struct {
	Value    string
	Label    string
	Count    int
	Selected bool
}

type facetData struct {
	Def       *types.FacetDefinition
	Label     string
	ShowCount bool
	Multiple  bool
	Choices   []facetChoice

	Placeholder string
	Current     string

	Min, Max, Step           string
	CurrentMin, CurrentMax   string
	Prefix, Suffix           string
	InputsEnabled, RangeMode bool
	From, To                 string

	Stars []facetChoice
}

// FacetOptions are the per-placement render options: which grid the facet
// instance filters and an optional content-type/page-size override, carried
// into the markup for the client controller to read.
type FacetOptions struct {
	TargetGrid  string
	ContentType string
	PageSize    int
}

// Facet renders one facet control. current is the intent for this facet from
// the request, or nil when nothing is selected.
func (r *Renderer) Facet(def *types.FacetDefinition, current *types.FilterIntent, opts FacetOptions) (template.HTML, error) {
	data := r.facetData(def, current)
	body, err := execute(string(def.Type), data)
	if err != nil {
		return "", fmt.Errorf("render facet %s: %w", def.Slug, err)
	}
	wrapped, err := execute("facet", struct {
		Def   *types.FacetDefinition
		Label string
		Body  template.HTML
		FacetOptions
	}{def, def.DisplayLabel(), body, opts})
	if err != nil {
		return "", fmt.Errorf("render facet %s: %w", def.Slug, err)
	}
	return wrapped, nil
}

func (r *Renderer) facetData(def *types.FacetDefinition, current *types.FilterIntent) facetData {
	s := def.Settings
	data := facetData{
		Def:         def,
		Label:       def.DisplayLabel(),
		ShowCount:   s.ShowCount,
		Multiple:    s.Multiple,
		Placeholder: s.Placeholder,
	}
	if data.Placeholder == "" {
		data.Placeholder = "Any " + def.DisplayLabel()
	}

	selected := map[string]bool{}
	if current != nil {
		for _, v := range current.Values {
			selected[v] = true
		}
	}

	switch def.Type {
	case types.CheckboxFacet, types.RadioFacet, types.DropdownFacet:
		for _, c := range r.choices(def) {
			if s.HideEmpty && c.Count == 0 {
				continue
			}
			data.Choices = append(data.Choices, facetChoice{
				Value:    c.Value,
				Label:    c.Label,
				Count:    c.Count,
				Selected: selected[c.Value],
			})
		}

	case types.RangeFacet:
		min, max := def.RangeBounds()
		if s.Min == 0 && s.Max == 0 {
			if lo, hi, ok := r.Index.MetaRange(def.SourceKey); ok {
				min, max = lo, hi
			}
		}
		step := s.Step
		if step <= 0 {
			step = 1
		}
		curMin, curMax := min, max
		if current != nil {
			if current.Min != nil {
				curMin = *current.Min
			}
			if current.Max != nil {
				curMax = *current.Max
			}
		}
		data.Min = formatNum(min)
		data.Max = formatNum(max)
		data.Step = formatNum(step)
		data.CurrentMin = formatNum(curMin)
		data.CurrentMax = formatNum(curMax)
		data.Prefix = s.Prefix
		data.Suffix = s.Suffix
		data.InputsEnabled = s.InputsEnabled

	case types.SearchFacet:
		if current != nil {
			data.Current = current.FirstValue()
		}

	case types.DateFacet:
		data.RangeMode = s.DateType != "single"
		if current != nil {
			data.From = current.From
			data.To = current.To
			data.Current = current.FirstValue()
			if data.Current == "" {
				data.Current = current.From
			}
		}

	case types.RatingFacet:
		active := ""
		if current != nil {
			active = current.FirstValue()
		}
		for star := 5; star >= 1; star-- {
			v := strconv.Itoa(star)
			data.Stars = append(data.Stars, facetChoice{Value: v, Selected: v == active})
		}
	}
	return data
}

func (r *Renderer) choices(def *types.FacetDefinition) []content.Choice {
	var out []content.Choice
	switch def.Source {
	case types.TaxonomySource:
		out = r.Index.TermChoices(def.SourceKey, nil)
	case types.CustomFieldSource:
		out = r.Index.MetaChoices(def.SourceKey, nil)
	case types.AttributeSource:
		if def.SourceKey == "post_author" {
			out = r.Index.AuthorChoices(nil)
		}
	}
	content.SortChoices(out, def.Settings.OrderBy, def.Settings.Order)
	return out
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
