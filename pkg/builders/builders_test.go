package builders

import (
	"testing"

	"github.com/webgrowth/facetfilter/pkg/types"
)

type staticRepo struct {
	defs []*types.FacetDefinition
}

func (r staticRepo) All() ([]*types.FacetDefinition, error) { return r.defs, nil }
func (r staticRepo) Get(slug string) (*types.FacetDefinition, error) {
	for _, d := range r.defs {
		if d.Slug == slug {
			return d, nil
		}
	}
	return nil, nil
}
func (r staticRepo) Save(*types.FacetDefinition) error { return nil }
func (r staticRepo) Delete(int64) error                { return nil }

func TestAllWidgets(t *testing.T) {
	repo := staticRepo{defs: []*types.FacetDefinition{
		{Slug: "category", Name: "Category"},
		{Slug: "price", Name: "Price", Settings: types.FacetSettings{Label: "Price range"}},
	}}
	widgets, err := NewRegistry().AllWidgets(repo)
	if err != nil {
		t.Fatal(err)
	}
	for _, builder := range []string{"elementor", "bricks", "jetengine"} {
		ws, ok := widgets[builder]
		if !ok || len(ws) != 2 {
			t.Fatalf("%s widgets: %+v", builder, ws)
		}
		var facetWidget *Widget
		for i := range ws {
			if ws[i].Name == "cfs-facet" {
				facetWidget = &ws[i]
			}
		}
		if facetWidget == nil {
			t.Fatalf("%s has no facet widget", builder)
		}
		picker := facetWidget.Controls[0]
		if len(picker.Options) != 2 {
			t.Errorf("%s facet picker options: %+v", builder, picker.Options)
		}
		if picker.Options[1].Label != "Price range" {
			t.Errorf("label override not respected: %+v", picker.Options[1])
		}
	}
}

func TestGridMatchers(t *testing.T) {
	for _, i := range NewRegistry().Integrations() {
		if i.GridMatcher() == nil {
			t.Errorf("%s has no grid matcher", i.Name())
		}
	}
}
