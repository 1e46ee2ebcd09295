package types

// Compare operators understood by the content query executor.
type Compare string

const (
	Equals  Compare = "="
	In      Compare = "IN"
	Between Compare = "BETWEEN"
	Like    Compare = "LIKE"
	AtLeast Compare = ">="
)

// MetaValueType selects the comparison mode for a meta constraint. Comparing
// numeric strings as CHAR matches lexically and silently produces wrong
// results, so the translator always sets this from the declared or inferred
// data type.
type MetaValueType string

const (
	CharType    MetaValueType = "CHAR"
	NumericType MetaValueType = "NUMERIC"
	DecimalType MetaValueType = "DECIMAL"
	DateType    MetaValueType = "DATE"
)

// TaxConstraint matches documents holding any of Terms in Taxonomy.
type TaxConstraint struct {
	Taxonomy string   `json:"taxonomy"`
	Terms    []string `json:"terms"`
	Operator Compare  `json:"operator"`
	// Origin names the facet slug that produced the constraint. Constraints
	// added by other integrations leave it empty.
	Origin string `json:"-"`
}

// MetaConstraint compares a document meta value against one or more values.
type MetaConstraint struct {
	Key     string        `json:"key"`
	Values  []string      `json:"values"`
	Compare Compare       `json:"compare"`
	Type    MetaValueType `json:"type"`
	Origin  string        `json:"-"`
}

// DateWindow restricts the document publish date, both bounds inclusive.
// Empty bounds are open.
type DateWindow struct {
	After     string `json:"after"`
	Before    string `json:"before"`
	Inclusive bool   `json:"inclusive"`
}

// ContentQuery is the query model of the host content system. The taxonomy and
// meta groups each combine with AND; values inside one constraint combine per
// its operator. Facet filtering only ever appends groups, it never rewrites
// constraints that were already present.
type ContentQuery struct {
	ContentType string `json:"contentType" schema:"post_type"`
	Status      string `json:"status,omitempty" schema:"-"`
	Page        int    `json:"page" schema:"paged"`
	PageSize    int    `json:"pageSize" schema:"posts_per_page"`
	OrderBy     string `json:"orderBy" schema:"orderby"`
	Order       string `json:"order" schema:"order"`

	SearchText string      `json:"searchText,omitempty" schema:"-"`
	AuthorIn   []string    `json:"authorIn,omitempty" schema:"-"`
	DateQuery  *DateWindow `json:"dateQuery,omitempty" schema:"-"`

	TaxQuery  []TaxConstraint  `json:"taxQuery,omitempty" schema:"-"`
	MetaQuery []MetaConstraint `json:"metaQuery,omitempty" schema:"-"`

	// FacetFiltered marks queries issued by this system's own results and
	// async endpoints; the interception hook filters them unconditionally.
	FacetFiltered bool `json:"-" schema:"-"`
	// MainQuery marks the page's primary query as opposed to secondary
	// builder-issued loops.
	MainQuery bool `json:"-" schema:"-"`
}

func (q *ContentQuery) HasFacetConstraints() bool {
	for _, t := range q.TaxQuery {
		if t.Origin != "" {
			return true
		}
	}
	for _, m := range q.MetaQuery {
		if m.Origin != "" {
			return true
		}
	}
	return false
}

// FacetOrigins reports which facet slugs already contributed constraint
// groups, letting a repeated hook invocation skip them.
func (q *ContentQuery) FacetOrigins() map[string]struct{} {
	origins := make(map[string]struct{})
	for _, t := range q.TaxQuery {
		if t.Origin != "" {
			origins[t.Origin] = struct{}{}
		}
	}
	for _, m := range q.MetaQuery {
		if m.Origin != "" {
			origins[m.Origin] = struct{}{}
		}
	}
	return origins
}
