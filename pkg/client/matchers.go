package client

import "strings"

// Matcher recognizes one page-builder convention for a results grid. Matchers
// run in registration order; the first match of the earliest matcher wins
// when no explicit target is configured.
type Matcher interface {
	Name() string
	Match(el *Element) bool
}

// nativeMatcher finds grids rendered by this system, identified by their grid
// id data attribute.
type nativeMatcher struct{}

func (nativeMatcher) Name() string { return "native" }

func (nativeMatcher) Match(el *Element) bool {
	return el.Data("grid-id") != "" || el.HasClass("cfs-results")
}

type classMatcher struct {
	name    string
	classes []string
	prefix  string
}

func (m classMatcher) Name() string { return m.name }

func (m classMatcher) Match(el *Element) bool {
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

// DefaultMatchers covers the grid conventions of the common page builders,
// tried in this order after the native markup.
func DefaultMatchers() []Matcher {
	return []Matcher{
		nativeMatcher{},
		classMatcher{name: "elementor", classes: []string{"elementor-posts-container", "elementor-loop-container", "elementor-grid"}},
		classMatcher{name: "bricks", classes: []string{"brxe-posts-wrapper"}, prefix: "brxe-posts"},
		classMatcher{name: "jetengine", classes: []string{"jet-listing-grid__items"}},
		classMatcher{name: "generic", classes: []string{"products", "post-grid", "archive-posts"}},
	}
}
