package types

import "testing"

func TestValidateSlug(t *testing.T) {
	valid := []string{"category", "price", "product-color", "brand_name", "size2"}
	for _, slug := range valid {
		if err := ValidateSlug(slug); err != nil {
			t.Errorf("%s rejected: %v", slug, err)
		}
	}
	invalid := []string{"", "Price", "pri ce", "-price", "price-", "budget_min", "budget_max", "when_from", "when_to"}
	for _, slug := range invalid {
		if err := ValidateSlug(slug); err == nil {
			t.Errorf("%s accepted", slug)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Product Color":   "product-color",
		"  Price (USD)  ": "price-usd",
		"Größe":           "gr-e",
		"already-fine":    "already-fine",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	def := &FacetDefinition{Settings: FacetSettings{}}
	if min, max := def.RangeBounds(); min != 0 || max != 100 {
		t.Errorf("default bounds: %v, %v", min, max)
	}
	def.Settings.Max = 1000
	if min, max := def.RangeBounds(); min != 0 || max != 1000 {
		t.Errorf("configured bounds: %v, %v", min, max)
	}
}

func TestGridTargetQueryDefaults(t *testing.T) {
	g := &GridTarget{ContentType: "product"}
	q := g.Query()
	if q.PageSize != 12 || q.OrderBy != "date" || q.Order != "DESC" {
		t.Errorf("defaults: %+v", q)
	}
	if q.Status != "publish" || !q.FacetFiltered {
		t.Errorf("query flags: %+v", q)
	}
}

type countingRepo struct {
	gets int
	defs map[string]*FacetDefinition
}

func (r *countingRepo) All() ([]*FacetDefinition, error) { return nil, nil }
func (r *countingRepo) Get(slug string) (*FacetDefinition, error) {
	r.gets++
	if d, ok := r.defs[slug]; ok {
		return d, nil
	}
	return nil, errNotFound
}
func (r *countingRepo) Save(*FacetDefinition) error { return nil }
func (r *countingRepo) Delete(int64) error          { return nil }

var errNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }

func TestDefinitionCacheSingleLookup(t *testing.T) {
	repo := &countingRepo{defs: map[string]*FacetDefinition{
		"category": {Slug: "category"},
	}}
	cache := NewDefinitionCache(repo)

	for i := 0; i < 3; i++ {
		if def := cache.Resolve("category"); def == nil {
			t.Fatal("known slug not resolved")
		}
		if def := cache.Resolve("unknown"); def != nil {
			t.Fatal("unknown slug resolved")
		}
	}
	if repo.gets != 2 {
		t.Errorf("expected one lookup per slug, got %d", repo.gets)
	}
}
