package params

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// Prefix marks every filter parameter. The full grammar is:
//
//	cfs_<slug>        scalar or repeated value
//	cfs_<slug>_min    lower range bound
//	cfs_<slug>_max    upper range bound
//	cfs_<slug>_from   lower date bound
//	cfs_<slug>_to     upper date bound
//
// Bound suffixes take precedence over literal slugs; slugs ending in a
// reserved suffix are rejected at save time so the two cannot collide.
const Prefix = "cfs_"

type pair struct {
	key    string
	values []string
}

// Parse reads filter intents from parsed query values. Iteration over
// url.Values is unordered, so keys are visited sorted to keep the output
// deterministic.
func Parse(values url.Values) []types.FilterIntent {
	merged := make(map[string][]string, len(values))
	for k, vs := range values {
		// array notation from HTML form serializers
		k = strings.TrimSuffix(k, "[]")
		merged[k] = append(merged[k], vs...)
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, pair{key: k, values: merged[k]})
	}
	return parsePairs(pairs)
}

// ParseString reads filter intents from a raw form-encoded string, preserving
// the order keys first appear in. The async request body carries its filters
// in this shape.
func ParseString(raw string) []types.FilterIntent {
	pairs := make([]pair, 0)
	index := make(map[string]int)
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		// PHP-style array notation from form serializers
		key = strings.TrimSuffix(key, "[]")
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		if at, seen := index[key]; seen {
			pairs[at].values = append(pairs[at].values, value)
		} else {
			index[key] = len(pairs)
			pairs = append(pairs, pair{key: key, values: []string{value}})
		}
	}
	return parsePairs(pairs)
}

func parsePairs(pairs []pair) []types.FilterIntent {
	order := make([]string, 0, len(pairs))
	bySlug := make(map[string]*types.FilterIntent)

	intent := func(slug string, kind types.IntentKind) *types.FilterIntent {
		existing, ok := bySlug[slug]
		if !ok {
			existing = &types.FilterIntent{Slug: slug, Kind: kind}
			bySlug[slug] = existing
			order = append(order, slug)
			return existing
		}
		if existing.Kind != kind {
			// Bound suffixes win over a plain value for the same slug.
			if kind == types.RangeIntent || kind == types.DateRangeIntent {
				existing.Kind = kind
				existing.Values = nil
			}
		}
		return existing
	}

	for _, p := range pairs {
		if !strings.HasPrefix(p.key, Prefix) {
			continue
		}
		rest := p.key[len(Prefix):]
		if rest == "" {
			continue
		}

		switch {
		case hasBound(rest, "_min"):
			slug := strings.TrimSuffix(rest, "_min")
			if v, ok := parseBound(p.values); ok {
				intent(slug, types.RangeIntent).Min = &v
			} else {
				intent(slug, types.RangeIntent)
			}
		case hasBound(rest, "_max"):
			slug := strings.TrimSuffix(rest, "_max")
			if v, ok := parseBound(p.values); ok {
				intent(slug, types.RangeIntent).Max = &v
			} else {
				intent(slug, types.RangeIntent)
			}
		case hasBound(rest, "_from"):
			slug := strings.TrimSuffix(rest, "_from")
			if v := firstSanitized(p.values); v != "" {
				intent(slug, types.DateRangeIntent).From = v
			}
		case hasBound(rest, "_to"):
			slug := strings.TrimSuffix(rest, "_to")
			if v := firstSanitized(p.values); v != "" {
				intent(slug, types.DateRangeIntent).To = v
			}
		default:
			values := sanitizeAll(p.values)
			if len(values) == 0 {
				continue
			}
			in := intent(rest, types.ValuesIntent)
			if in.Kind == types.ValuesIntent {
				in.Values = append(in.Values, values...)
			}
		}
	}

	result := make([]types.FilterIntent, 0, len(order))
	for _, slug := range order {
		in := bySlug[slug]
		if in.IsEmpty() {
			continue
		}
		result = append(result, *in)
	}
	return result
}

func hasBound(rest, suffix string) bool {
	return strings.HasSuffix(rest, suffix) && len(rest) > len(suffix)
}

// parseBound reads a numeric bound. A value that does not parse is treated as
// absent rather than coerced to zero, which would inject a false bound.
func parseBound(values []string) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstSanitized(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return SanitizeValue(values[0])
}

// Serialize writes intents back into the parameter grammar. Parse(Serialize(x))
// round-trips for any set of valid intents.
func Serialize(intents []types.FilterIntent) url.Values {
	out := url.Values{}
	for _, in := range intents {
		switch in.Kind {
		case types.RangeIntent:
			if in.Min != nil {
				out.Set(Prefix+in.Slug+"_min", formatBound(*in.Min))
			}
			if in.Max != nil {
				out.Set(Prefix+in.Slug+"_max", formatBound(*in.Max))
			}
		case types.DateRangeIntent:
			if in.From != "" {
				out.Set(Prefix+in.Slug+"_from", in.From)
			}
			if in.To != "" {
				out.Set(Prefix+in.Slug+"_to", in.To)
			}
		default:
			for _, v := range in.Values {
				out.Add(Prefix+in.Slug, v)
			}
		}
	}
	return out
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HasFilterParams reports whether any filter parameter is present at all,
// used by the interception hook's decision predicate.
func HasFilterParams(values url.Values) bool {
	for key := range values {
		if strings.HasPrefix(key, Prefix) {
			return true
		}
	}
	return false
}
