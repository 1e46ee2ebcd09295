package query

import (
	"strconv"
	"strings"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// Constraints is the output of translating a single intent. Groups merge into
// a content query with AND between facets; values inside one group combine
// per the group's operator.
type Constraints struct {
	Tax  []types.TaxConstraint
	Meta []types.MetaConstraint

	// Host-native attribute knobs, set instead of generic constraints when
	// the facet sources a built-in attribute.
	AuthorIn   []string
	DateQuery  *types.DateWindow
	SearchText string
}

func (c *Constraints) empty() bool {
	return len(c.Tax) == 0 && len(c.Meta) == 0 &&
		len(c.AuthorIn) == 0 && c.DateQuery == nil && c.SearchText == ""
}

// Translate turns one intent into native constraint fragments. The caller has
// already resolved the definition; intents whose slug resolves to nothing are
// never passed in.
func Translate(in types.FilterIntent, def *types.FacetDefinition) Constraints {
	switch def.Source {
	case types.TaxonomySource:
		return translateTaxonomy(in, def)
	case types.CustomFieldSource:
		return translateCustomField(in, def)
	case types.AttributeSource:
		return translateAttribute(in, def)
	}
	return Constraints{}
}

func translateTaxonomy(in types.FilterIntent, def *types.FacetDefinition) Constraints {
	if len(in.Values) == 0 {
		return Constraints{}
	}
	return Constraints{Tax: []types.TaxConstraint{{
		Taxonomy: def.SourceKey,
		Terms:    in.Values,
		Operator: types.In,
		Origin:   def.Slug,
	}}}
}

func translateCustomField(in types.FilterIntent, def *types.FacetDefinition) Constraints {
	switch def.Type {
	case types.RangeFacet:
		min, max := def.RangeBounds()
		if in.Min != nil {
			min = *in.Min
		}
		if in.Max != nil {
			max = *in.Max
		}
		return metaConstraint(def, types.MetaConstraint{
			Values:  []string{formatBound(min), formatBound(max)},
			Compare: types.Between,
			Type:    types.NumericType,
		})

	case types.SearchFacet:
		needle := in.FirstValue()
		if needle == "" {
			return Constraints{}
		}
		return metaConstraint(def, types.MetaConstraint{
			Values:  []string{"%" + EscapeLike(needle) + "%"},
			Compare: types.Like,
			Type:    types.CharType,
		})

	case types.DateFacet:
		if in.Kind == types.DateRangeIntent {
			if in.From != "" && in.To != "" {
				return metaConstraint(def, types.MetaConstraint{
					Values:  []string{in.From, in.To},
					Compare: types.Between,
					Type:    types.DateType,
				})
			}
			single := in.From
			if single == "" {
				single = in.To
			}
			if single == "" {
				return Constraints{}
			}
			return metaConstraint(def, types.MetaConstraint{
				Values:  []string{single},
				Compare: types.Equals,
				Type:    types.DateType,
			})
		}
		if in.FirstValue() == "" {
			return Constraints{}
		}
		return metaConstraint(def, types.MetaConstraint{
			Values:  []string{in.FirstValue()},
			Compare: types.Equals,
			Type:    types.DateType,
		})

	case types.RatingFacet:
		if in.FirstValue() == "" {
			return Constraints{}
		}
		return metaConstraint(def, types.MetaConstraint{
			Values:  []string{in.FirstValue()},
			Compare: types.AtLeast,
			Type:    types.NumericType,
		})
	}

	if len(in.Values) == 0 {
		return Constraints{}
	}
	compare := types.Equals
	if len(in.Values) > 1 {
		compare = types.In
	}
	return metaConstraint(def, types.MetaConstraint{
		Values:  in.Values,
		Compare: compare,
		Type:    InferMetaType(def.Settings.DataType, in.Values),
	})
}

func translateAttribute(in types.FilterIntent, def *types.FacetDefinition) Constraints {
	switch def.SourceKey {
	case "post_author":
		if len(in.Values) == 0 {
			return Constraints{}
		}
		return Constraints{AuthorIn: in.Values}
	case "post_date":
		if in.From == "" && in.To == "" {
			return Constraints{}
		}
		return Constraints{DateQuery: &types.DateWindow{
			After:     in.From,
			Before:    in.To,
			Inclusive: true,
		}}
	}
	if def.Type == types.SearchFacet && in.FirstValue() != "" {
		return Constraints{SearchText: in.FirstValue()}
	}
	return Constraints{}
}

func metaConstraint(def *types.FacetDefinition, c types.MetaConstraint) Constraints {
	c.Key = def.SourceKey
	c.Origin = def.Slug
	return Constraints{Meta: []types.MetaConstraint{c}}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EscapeLike escapes the wildcard characters of a LIKE pattern so user input
// cannot widen a substring match.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
