package content

import (
	"sort"
	"strconv"
	"strings"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// Result is one executed page of a content query.
type Result struct {
	Documents []*Document `json:"documents"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	MaxPages  int         `json:"maxPages"`
}

// Execute runs q against the index and returns the requested page.
func (idx *Index) Execute(q *types.ContentQuery) *Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	candidates := idx.typeCandidates(q.ContentType)

	for _, t := range q.TaxQuery {
		candidates.Intersect(idx.matchTaxonomy(t))
		if len(candidates) == 0 {
			break
		}
	}
	for _, m := range q.MetaQuery {
		candidates.Intersect(idx.matchMeta(m))
		if len(candidates) == 0 {
			break
		}
	}

	docs := make([]*Document, 0, len(candidates))
	for id := range candidates {
		doc := idx.docs[id]
		if !matchesAttributes(doc, q) {
			continue
		}
		docs = append(docs, doc)
	}

	sortDocs(docs, q.OrderBy, q.Order, "")

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	total := len(docs)
	maxPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &Result{
		Documents: docs[start:end],
		Total:     total,
		Page:      page,
		MaxPages:  maxPages,
	}
}

func (idx *Index) typeCandidates(contentType string) IdList {
	if contentType == "" || contentType == "any" {
		all := make(IdList, len(idx.docs))
		for id := range idx.docs {
			all.Add(id)
		}
		return all
	}
	if list, ok := idx.byType[contentType]; ok {
		return list.Clone()
	}
	return IdList{}
}

func (idx *Index) matchTaxonomy(t types.TaxConstraint) IdList {
	out := IdList{}
	byTerm, ok := idx.terms[t.Taxonomy]
	if !ok {
		return out
	}
	for _, term := range t.Terms {
		if ids, ok := byTerm[term]; ok {
			out.Merge(ids)
		}
	}
	return out
}

func (idx *Index) matchMeta(m types.MetaConstraint) IdList {
	out := IdList{}
	byValue, ok := idx.meta[m.Key]
	if !ok {
		return out
	}
	for stored, ids := range byValue {
		if compareMeta(stored, m) {
			out.Merge(ids)
		}
	}
	return out
}

func compareMeta(stored string, m types.MetaConstraint) bool {
	switch m.Compare {
	case types.Equals:
		return len(m.Values) > 0 && equalMeta(stored, m.Values[0], m.Type)
	case types.In:
		for _, v := range m.Values {
			if equalMeta(stored, v, m.Type) {
				return true
			}
		}
		return false
	case types.Between:
		if len(m.Values) != 2 {
			return false
		}
		return atLeast(stored, m.Values[0], m.Type) && atMost(stored, m.Values[1], m.Type)
	case types.AtLeast:
		return len(m.Values) > 0 && atLeast(stored, m.Values[0], m.Type)
	case types.Like:
		return len(m.Values) > 0 && matchLike(stored, m.Values[0])
	}
	return false
}

func equalMeta(stored, v string, t types.MetaValueType) bool {
	if numericMetaType(t) {
		a, aok := parseNum(stored)
		b, bok := parseNum(v)
		if aok && bok {
			return a == b
		}
	}
	return strings.EqualFold(stored, v)
}

func atLeast(stored, bound string, t types.MetaValueType) bool {
	if numericMetaType(t) {
		a, aok := parseNum(stored)
		b, bok := parseNum(bound)
		if !aok || !bok {
			return false
		}
		return a >= b
	}
	return stored >= bound
}

func atMost(stored, bound string, t types.MetaValueType) bool {
	if numericMetaType(t) {
		a, aok := parseNum(stored)
		b, bok := parseNum(bound)
		if !aok || !bok {
			return false
		}
		return a <= b
	}
	return stored <= bound
}

func numericMetaType(t types.MetaValueType) bool {
	return t == types.NumericType || t == types.DecimalType
}

func parseNum(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// matchLike evaluates a LIKE pattern with \ as escape. Only % and _ act as
// wildcards; the translator escapes user input, so escaped characters match
// literally.
func matchLike(s, pattern string) bool {
	return likeMatch(strings.ToLower(s), strings.ToLower(pattern))
}

func likeMatch(s, p string) bool {
	if p == "" {
		return s == ""
	}
	switch p[0] {
	case '%':
		for i := 0; i <= len(s); i++ {
			if likeMatch(s[i:], p[1:]) {
				return true
			}
		}
		return false
	case '\\':
		if len(p) < 2 {
			return false
		}
		return len(s) > 0 && s[0] == p[1] && likeMatch(s[1:], p[2:])
	case '_':
		return len(s) > 0 && likeMatch(s[1:], p[1:])
	default:
		return len(s) > 0 && s[0] == p[0] && likeMatch(s[1:], p[1:])
	}
}

func matchesAttributes(doc *Document, q *types.ContentQuery) bool {
	if q.Status != "" && q.Status != "any" && doc.Status != q.Status {
		return false
	}
	if len(q.AuthorIn) > 0 {
		found := false
		for _, a := range q.AuthorIn {
			if strings.EqualFold(a, doc.Author) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.DateQuery != nil {
		day := doc.Date.Format("2006-01-02")
		if q.DateQuery.After != "" && day < q.DateQuery.After {
			return false
		}
		if q.DateQuery.Before != "" && day > q.DateQuery.Before {
			return false
		}
	}
	if q.SearchText != "" {
		needle := strings.ToLower(q.SearchText)
		if !strings.Contains(strings.ToLower(doc.Title), needle) &&
			!strings.Contains(strings.ToLower(doc.Excerpt), needle) {
			return false
		}
	}
	return true
}

func sortDocs(docs []*Document, orderBy, order, metaKey string) {
	desc := strings.EqualFold(order, "DESC") || order == ""
	if orderBy == "" {
		orderBy = "date"
	}
	less := func(a, b *Document) bool { return a.Date.Before(b.Date) }
	switch orderBy {
	case "title":
		less = func(a, b *Document) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case "id":
		less = func(a, b *Document) bool { return a.Id < b.Id }
	case "meta_value", "meta_value_num":
		less = func(a, b *Document) bool {
			av, bv := a.MetaValue(metaKey), b.MetaValue(metaKey)
			an, aok := parseNum(av)
			bn, bok := parseNum(bv)
			if aok && bok {
				return an < bn
			}
			return av < bv
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if desc {
			return less(docs[j], docs[i])
		}
		return less(docs[i], docs[j])
	})
}
