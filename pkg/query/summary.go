package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/webgrowth/facetfilter/pkg/params"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// Summarize builds the active-filter chips for a set of intents. Unknown
// slugs are skipped, intents with no effective selection produce no chip.
func Summarize(intents []types.FilterIntent, cache *types.DefinitionCache, pageUrl *url.URL) []types.ActiveFilter {
	out := make([]types.ActiveFilter, 0, len(intents))
	for _, in := range intents {
		if in.IsEmpty() {
			continue
		}
		def := cache.Resolve(in.Slug)
		if def == nil {
			continue
		}
		value := formatValue(in, def)
		if value == "" {
			continue
		}
		out = append(out, types.ActiveFilter{
			Slug:      in.Slug,
			Label:     def.DisplayLabel(),
			Value:     value,
			RemoveUrl: params.RemoveFilterURL(pageUrl, in.Slug),
		})
	}
	return out
}

func formatValue(in types.FilterIntent, def *types.FacetDefinition) string {
	switch in.Kind {
	case types.RangeIntent:
		min, max := def.RangeBounds()
		if in.Min != nil {
			min = *in.Min
		}
		if in.Max != nil {
			max = *in.Max
		}
		s := def.Settings
		return fmt.Sprintf("%s%s%s – %s%s%s",
			s.Prefix, formatBound(min), s.Suffix, s.Prefix, formatBound(max), s.Suffix)
	case types.DateRangeIntent:
		if in.From != "" && in.To != "" {
			return in.From + " – " + in.To
		}
		if in.From != "" {
			return in.From
		}
		return in.To
	}
	if def.Type == types.RatingFacet {
		return in.FirstValue() + "+"
	}
	return strings.Join(in.Values, ", ")
}
