package render

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/types"
)

func testIndex() *content.Index {
	idx := content.NewIndex()
	date, _ := time.Parse("2006-01-02", "2024-03-01")
	idx.Upsert(&content.Document{
		Id: 1, ContentType: "product", Status: "publish", Title: "Blue Hoodie",
		Date:  date,
		Terms: map[string][]string{"category": {"clothing"}},
		Meta:  map[string][]string{"price": {"49.99"}},
	})
	idx.Upsert(&content.Document{
		Id: 2, ContentType: "product", Status: "publish", Title: "Desk Lamp",
		Date:  date,
		Terms: map[string][]string{"category": {"home"}},
		Meta:  map[string][]string{"price": {"120"}},
	})
	return idx
}

func TestFacetCheckboxReflectsSelection(t *testing.T) {
	r := NewRenderer(testIndex())
	def := &types.FacetDefinition{
		Id: 1, Name: "Category", Slug: "category",
		Type: types.CheckboxFacet, Source: types.TaxonomySource, SourceKey: "category",
		Settings: types.FacetSettings{ShowCount: true},
	}
	current := &types.FilterIntent{Slug: "category", Kind: types.ValuesIntent, Values: []string{"clothing"}}

	html, err := r.Facet(def, current, FacetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, `data-facet="category"`) {
		t.Errorf("missing facet data attribute: %s", out)
	}
	if !strings.Contains(out, `name="cfs_category[]"`) {
		t.Errorf("missing parameter-named input: %s", out)
	}
	if !strings.Contains(out, `value="clothing" checked`) {
		t.Errorf("selection not reflected: %s", out)
	}
	if strings.Contains(out, `value="home" checked`) {
		t.Errorf("unselected option marked checked: %s", out)
	}
	if !strings.Contains(out, "(1)") {
		t.Errorf("counts missing: %s", out)
	}
}

func TestDropdownHonorsOrderingAndMultiple(t *testing.T) {
	r := NewRenderer(testIndex())
	def := &types.FacetDefinition{
		Id: 2, Name: "Category", Slug: "category",
		Type: types.DropdownFacet, Source: types.TaxonomySource, SourceKey: "category",
		Settings: types.FacetSettings{Multiple: true, Order: "DESC"},
	}

	html, err := r.Facet(def, nil, FacetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, `name="cfs_category[]" multiple`) {
		t.Errorf("multiple select not rendered: %s", out)
	}
	home := strings.Index(out, `value="home"`)
	clothing := strings.Index(out, `value="clothing"`)
	if home < 0 || clothing < 0 || home > clothing {
		t.Errorf("descending option order not honored: %s", out)
	}
}

func TestFacetEmitsPlacementAttributes(t *testing.T) {
	r := NewRenderer(testIndex())
	def := &types.FacetDefinition{
		Id: 1, Name: "Category", Slug: "category",
		Type: types.CheckboxFacet, Source: types.TaxonomySource, SourceKey: "category",
	}

	html, err := r.Facet(def, nil, FacetOptions{TargetGrid: "grid-a", ContentType: "product", PageSize: 6})
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	for _, attr := range []string{
		`data-source="taxonomy"`,
		`data-target-grid="grid-a"`,
		`data-post-type="product"`,
		`data-posts-per-page="6"`,
	} {
		if !strings.Contains(out, attr) {
			t.Errorf("missing %s: %s", attr, out)
		}
	}

	plain, err := r.Facet(def, nil, FacetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(plain), "data-target-grid") {
		t.Errorf("untargeted facet should omit the grid attribute: %s", plain)
	}
	if !strings.Contains(string(plain), `data-source="taxonomy"`) {
		t.Errorf("source attribute must always be present: %s", plain)
	}
}

func TestFacetWithoutChoicesShowsPlaceholder(t *testing.T) {
	r := NewRenderer(testIndex())
	def := &types.FacetDefinition{
		Id: 9, Name: "Brand", Slug: "brand",
		Type: types.CheckboxFacet, Source: types.TaxonomySource, SourceKey: "brand",
	}

	html, err := r.Facet(def, nil, FacetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "cfs-no-options") {
		t.Errorf("expected no-options placeholder, got: %s", html)
	}
	if strings.Contains(string(html), "<ul") {
		t.Errorf("empty control rendered instead of placeholder: %s", html)
	}
}

func TestFacetRangeReflectsBounds(t *testing.T) {
	r := NewRenderer(testIndex())
	def := &types.FacetDefinition{
		Id: 2, Name: "Price", Slug: "price",
		Type: types.RangeFacet, Source: types.CustomFieldSource, SourceKey: "price",
		Settings: types.FacetSettings{Min: 0, Max: 500, Prefix: "$"},
	}
	lo, hi := 50.0, 200.0
	current := &types.FilterIntent{Slug: "price", Kind: types.RangeIntent, Min: &lo, Max: &hi}

	html, err := r.Facet(def, current, FacetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, `name="cfs_price_min"`) || !strings.Contains(out, `name="cfs_price_max"`) {
		t.Errorf("bound inputs missing: %s", out)
	}
	if !strings.Contains(out, `value="50"`) || !strings.Contains(out, `value="200"`) {
		t.Errorf("current bounds not reflected: %s", out)
	}
	if !strings.Contains(out, `data-min="0"`) || !strings.Contains(out, `data-max="500"`) {
		t.Errorf("configured bounds missing: %s", out)
	}
}

func TestFacetRangeDerivesBoundsFromIndex(t *testing.T) {
	r := NewRenderer(testIndex())
	def := &types.FacetDefinition{
		Id: 2, Name: "Price", Slug: "price",
		Type: types.RangeFacet, Source: types.CustomFieldSource, SourceKey: "price",
	}
	html, err := r.Facet(def, nil, FacetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, `data-min="49.99"`) || !strings.Contains(out, `data-max="120"`) {
		t.Errorf("bounds not derived from indexed values: %s", out)
	}
}

func TestResultsMarkup(t *testing.T) {
	idx := testIndex()
	r := NewRenderer(idx)
	res := idx.Execute(&types.ContentQuery{ContentType: "product", OrderBy: "id", Order: "ASC"})
	target := &types.GridTarget{Id: "grid-1", ContentType: "product", PageSize: 12}
	pageUrl, _ := url.Parse("https://shop.example/products?cfs_category=clothing")

	html, err := r.Results(res, target, types.DefaultSettings(), pageUrl)
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, `data-grid-id="grid-1"`) {
		t.Errorf("grid id missing: %s", out)
	}
	if !strings.Contains(out, "Blue Hoodie") || !strings.Contains(out, "Desk Lamp") {
		t.Errorf("cards missing: %s", out)
	}
	if !strings.Contains(out, "2 results") {
		t.Errorf("count missing: %s", out)
	}
}

func TestResultsEmitsOrderingAttributes(t *testing.T) {
	idx := testIndex()
	r := NewRenderer(idx)
	res := idx.Execute(&types.ContentQuery{ContentType: "product"})
	target := &types.GridTarget{
		Id: "grid-1", ContentType: "product", PageSize: 12,
		OrderBy: "date", Order: "DESC", Template: "compact",
	}
	pageUrl, _ := url.Parse("https://shop.example/products")

	html, err := r.Results(res, target, types.DefaultSettings(), pageUrl)
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	for _, attr := range []string{`data-orderby="date"`, `data-order="DESC"`, `data-template="compact"`} {
		if !strings.Contains(out, attr) {
			t.Errorf("missing %s: %s", attr, out)
		}
	}

	plain := &types.GridTarget{Id: "grid-2", ContentType: "product"}
	html, err = r.Results(res, plain, types.DefaultSettings(), pageUrl)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(html), "data-template") {
		t.Errorf("empty template should omit the attribute: %s", html)
	}
}

func TestResultsNoMatches(t *testing.T) {
	idx := testIndex()
	r := NewRenderer(idx)
	res := idx.Execute(&types.ContentQuery{ContentType: "product", SearchText: "nothing-matches"})
	target := &types.GridTarget{Id: "grid-1", ContentType: "product"}
	pageUrl, _ := url.Parse("https://shop.example/products?cfs_category=clothing&page=2")

	html, err := r.Results(res, target, types.DefaultSettings(), pageUrl)
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, "cfs-no-results") {
		t.Errorf("no-results block missing: %s", out)
	}
	if strings.Contains(out, "cfs_category=clothing") {
		t.Errorf("reset link should drop filter params: %s", out)
	}
}

func TestLoadMorePagination(t *testing.T) {
	idx := testIndex()
	r := NewRenderer(idx)
	res := idx.Execute(&types.ContentQuery{ContentType: "product", PageSize: 1, Page: 1})
	target := &types.GridTarget{Id: "grid-1", ContentType: "product", PageSize: 1}
	settings := types.DefaultSettings()
	settings.PaginationType = "load_more"
	pageUrl, _ := url.Parse("https://shop.example/products")

	html, err := r.Results(res, target, settings, pageUrl)
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if !strings.Contains(out, `data-next-page="2"`) {
		t.Errorf("load more button missing: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("button hidden while more pages remain: %s", out)
	}
}
