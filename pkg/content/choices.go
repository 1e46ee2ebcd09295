package content

import (
	"sort"
	"strings"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// Choice is one selectable option of a facet, with the number of documents it
// would match.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MatchIds returns the ids matching q without paging or ordering. The count
// endpoints use it to scope option counts to the current filter state.
func (idx *Index) MatchIds(q *types.ContentQuery) IdList {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	candidates := idx.typeCandidates(q.ContentType)
	for _, t := range q.TaxQuery {
		candidates.Intersect(idx.matchTaxonomy(t))
	}
	for _, m := range q.MetaQuery {
		candidates.Intersect(idx.matchMeta(m))
	}
	for id := range candidates {
		if !matchesAttributes(idx.docs[id], q) {
			delete(candidates, id)
		}
	}
	return candidates
}

// TermChoices enumerates the terms of a taxonomy. A non-nil within set scopes
// the counts to those documents.
func (idx *Index) TermChoices(taxonomy string, within IdList) []Choice {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	byTerm, ok := idx.terms[taxonomy]
	if !ok {
		return nil
	}
	out := make([]Choice, 0, len(byTerm))
	for term, ids := range byTerm {
		count := countWithin(ids, within)
		out = append(out, Choice{Value: term, Label: labelize(term), Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// MetaChoices enumerates the distinct values of a meta key. Numeric value sets
// order numerically, everything else alphabetically.
func (idx *Index) MetaChoices(key string, within IdList) []Choice {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	byValue, ok := idx.meta[key]
	if !ok {
		return nil
	}
	out := make([]Choice, 0, len(byValue))
	allNumeric := true
	for v, ids := range byValue {
		if _, ok := parseNum(v); !ok {
			allNumeric = false
		}
		out = append(out, Choice{Value: v, Label: v, Count: countWithin(ids, within)})
	}
	sort.Slice(out, func(i, j int) bool {
		if allNumeric {
			a, _ := parseNum(out[i].Value)
			b, _ := parseNum(out[j].Value)
			return a < b
		}
		return strings.ToLower(out[i].Value) < strings.ToLower(out[j].Value)
	})
	return out
}

// SortChoices reorders choices per a facet's ordering settings. The default
// value ordering of the enumeration methods is kept unless orderBy asks for
// count; DESC reverses whichever ordering applies.
func SortChoices(choices []Choice, orderBy, order string) {
	if strings.EqualFold(orderBy, "count") {
		sort.SliceStable(choices, func(i, j int) bool {
			return choices[i].Count < choices[j].Count
		})
	}
	if strings.EqualFold(order, "DESC") {
		for i, j := 0, len(choices)-1; i < j; i, j = i+1, j-1 {
			choices[i], choices[j] = choices[j], choices[i]
		}
	}
}

// MetaRange reports the numeric extent of a meta key, for range slider bounds.
func (idx *Index) MetaRange(key string) (min, max float64, ok bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	byValue, found := idx.meta[key]
	if !found {
		return 0, 0, false
	}
	for v := range byValue {
		n, numeric := parseNum(v)
		if !numeric {
			continue
		}
		if !ok || n < min {
			min = n
		}
		if !ok || n > max {
			max = n
		}
		ok = true
	}
	return min, max, ok
}

// AuthorChoices enumerates document authors.
func (idx *Index) AuthorChoices(within IdList) []Choice {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Choice, 0, len(idx.authors))
	for author, ids := range idx.authors {
		out = append(out, Choice{Value: author, Label: author, Count: countWithin(ids, within)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// MetaKeys lists every indexed meta key, for the admin source-key picker.
func (idx *Index) MetaKeys() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, 0, len(idx.meta))
	for key := range idx.meta {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Taxonomies lists every indexed taxonomy, for the admin source-key picker.
func (idx *Index) Taxonomies() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, 0, len(idx.terms))
	for taxonomy := range idx.terms {
		out = append(out, taxonomy)
	}
	sort.Strings(out)
	return out
}

// ContentTypes lists the indexed content types.
func (idx *Index) ContentTypes() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, 0, len(idx.byType))
	for t, ids := range idx.byType {
		if len(ids) == 0 {
			continue
		}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func countWithin(ids, within IdList) int {
	if within == nil {
		return len(ids)
	}
	count := 0
	for id := range ids {
		if within.Has(id) {
			count++
		}
	}
	return count
}

func labelize(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
