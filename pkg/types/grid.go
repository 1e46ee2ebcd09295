package types

// GridTarget describes one results container on a page. Constructed at render
// time from shortcode/widget attributes, never persisted.
type GridTarget struct {
	Id          string `json:"gridId"`
	ContentType string `json:"contentType"`
	PageSize    int    `json:"pageSize"`
	OrderBy     string `json:"orderBy"`
	Order       string `json:"order"`
	Template    string `json:"template,omitempty"`
	Columns     int    `json:"columns,omitempty"`
}

func (g *GridTarget) Query() *ContentQuery {
	pageSize := g.PageSize
	if pageSize <= 0 {
		pageSize = 12
	}
	orderBy := g.OrderBy
	if orderBy == "" {
		orderBy = "date"
	}
	order := g.Order
	if order == "" {
		order = "DESC"
	}
	return &ContentQuery{
		ContentType:   g.ContentType,
		Status:        "publish",
		Page:          1,
		PageSize:      pageSize,
		OrderBy:       orderBy,
		Order:         order,
		FacetFiltered: true,
	}
}
