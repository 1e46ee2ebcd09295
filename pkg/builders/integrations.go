package builders

import (
	"strings"

	"github.com/webgrowth/facetfilter/pkg/client"
	"github.com/webgrowth/facetfilter/pkg/types"
)

type elementorIntegration struct{}

func (elementorIntegration) Name() string { return "elementor" }

func (elementorIntegration) Widgets(repo types.FacetRepository) ([]Widget, error) {
	controls, err := facetControls(repo)
	if err != nil {
		return nil, err
	}
	return []Widget{
		{Name: "cfs-facet", Title: "Filter Facet", Category: "cfs", Icon: "eicon-filter", Controls: controls},
		{Name: "cfs-results", Title: "Filter Results", Category: "cfs", Icon: "eicon-gallery-grid", Controls: resultsControls()},
	}, nil
}

func (elementorIntegration) GridMatcher() client.Matcher {
	return classListMatcher{name: "elementor", classes: []string{
		"elementor-posts-container", "elementor-loop-container", "elementor-grid",
	}}
}

type bricksIntegration struct{}

func (bricksIntegration) Name() string { return "bricks" }

func (bricksIntegration) Widgets(repo types.FacetRepository) ([]Widget, error) {
	controls, err := facetControls(repo)
	if err != nil {
		return nil, err
	}
	return []Widget{
		{Name: "cfs-facet", Title: "Filter Facet", Category: "cfs", Controls: controls},
		{Name: "cfs-results", Title: "Filter Results", Category: "cfs", Controls: resultsControls()},
	}, nil
}

func (bricksIntegration) GridMatcher() client.Matcher {
	return classListMatcher{name: "bricks", classes: []string{"brxe-posts-wrapper"}, prefix: "brxe-posts"}
}

type jetEngineIntegration struct{}

func (jetEngineIntegration) Name() string { return "jetengine" }

func (jetEngineIntegration) Widgets(repo types.FacetRepository) ([]Widget, error) {
	controls, err := facetControls(repo)
	if err != nil {
		return nil, err
	}
	return []Widget{
		{Name: "cfs-facet", Title: "Filter Facet", Category: "cfs", Controls: controls},
		{Name: "cfs-results", Title: "Filter Results", Category: "cfs", Controls: resultsControls()},
	}, nil
}

func (jetEngineIntegration) GridMatcher() client.Matcher {
	return classListMatcher{name: "jetengine", classes: []string{"jet-listing-grid__items"}}
}

// classListMatcher mirrors the client's builder matchers so an integration can
// hand its grid convention to the controller registry.
type classListMatcher struct {
	name    string
	classes []string
	prefix  string
}

func (m classListMatcher) Name() string { return m.name }

func (m classListMatcher) Match(el *client.Element) bool {
	for _, c := range m.classes {
		if el.HasClass(c) {
			return true
		}
	}
	if m.prefix != "" {
		for _, c := range el.Classes {
			if strings.HasPrefix(c, m.prefix) {
				return true
			}
		}
	}
	return false
}
