package client

import "slices"

// Element is the subset of a page node the controller inspects when it looks
// for result grids. The host embedding adapts its real DOM to this shape.
type Element struct {
	Id       string
	Tag      string
	Classes  []string
	Dataset  map[string]string
	Children []*Element
}

func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

func (e *Element) Data(key string) string {
	if e.Dataset == nil {
		return ""
	}
	return e.Dataset[key]
}

// Walk visits e and its descendants depth first, in document order.
func (e *Element) Walk(visit func(*Element) bool) bool {
	if !visit(e) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}
