package client

import (
	"net/url"
	"strconv"

	"github.com/webgrowth/facetfilter/pkg/params"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// ControlState is the current value of one facet widget on the page.
type ControlState struct {
	Slug string
	Type types.FacetType

	// TargetGrid names the grid this facet filters; empty applies to every
	// grid on the page.
	TargetGrid string

	// checkbox, radio, dropdown, search, rating, single date
	Values []string

	// range sliders: current positions and the configured bounds
	Min, Max           float64
	BoundMin, BoundMax float64

	// date range
	From, To string
}

// Gather serializes the control states into request parameters. Controls at
// their neutral position contribute nothing, so an untouched page produces an
// empty parameter set: range sliders sitting on their configured bounds are
// omitted, as are empty selections.
func Gather(controls []ControlState) url.Values {
	return GatherFor("", controls)
}

// GatherFor serializes only the controls filtering gridId: those targeting it
// plus the untargeted ones. Facets bound to another grid never leak into the
// parameter set. An empty gridId gathers everything.
func GatherFor(gridId string, controls []ControlState) url.Values {
	out := url.Values{}
	for _, c := range controls {
		if gridId != "" && c.TargetGrid != "" && c.TargetGrid != gridId {
			continue
		}
		key := params.Prefix + c.Slug
		switch c.Type {
		case types.RangeFacet:
			if c.Min != c.BoundMin {
				out.Set(key+"_min", formatNum(c.Min))
			}
			if c.Max != c.BoundMax {
				out.Set(key+"_max", formatNum(c.Max))
			}
		case types.DateFacet:
			if c.From != "" {
				out.Set(key+"_from", c.From)
			}
			if c.To != "" {
				out.Set(key+"_to", c.To)
			}
			if c.From == "" && c.To == "" {
				for _, v := range c.Values {
					if v != "" {
						out.Add(key, v)
					}
				}
			}
		default:
			for _, v := range c.Values {
				if v != "" {
					out.Add(key, v)
				}
			}
		}
	}
	return out
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
