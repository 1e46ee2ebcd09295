package client

// DetectedGrid is a results container found on the page, with the matcher
// that recognized it.
type DetectedGrid struct {
	Element *Element
	Matcher string
}

// Registry holds the ordered grid matchers. Hosts append their own via
// Register to support additional builders.
type Registry struct {
	matchers []Matcher
}

func NewRegistry() *Registry {
	return &Registry{matchers: DefaultMatchers()}
}

func (r *Registry) Register(m Matcher) {
	r.matchers = append(r.matchers, m)
}

// Detect walks the page and returns every grid any matcher recognizes, in
// matcher priority order, document order within one matcher. An element
// claimed by an earlier matcher is not reported again.
func (r *Registry) Detect(root *Element) []DetectedGrid {
	var out []DetectedGrid
	claimed := map[*Element]struct{}{}
	for _, m := range r.matchers {
		root.Walk(func(el *Element) bool {
			if _, taken := claimed[el]; taken {
				return true
			}
			if m.Match(el) {
				claimed[el] = struct{}{}
				out = append(out, DetectedGrid{Element: el, Matcher: m.Name()})
			}
			return true
		})
	}
	return out
}

// Resolve picks the grid a filter interaction should target. An explicit
// container selector wins; otherwise native grids come first, then the first
// detected builder grid. A nil return means nothing on the page is
// filterable.
func (r *Registry) Resolve(root *Element, explicitSelector string) *DetectedGrid {
	grids := r.Detect(root)
	if len(grids) == 0 {
		return nil
	}
	if explicitSelector != "" {
		class := trimSelector(explicitSelector)
		for i := range grids {
			if grids[i].Element.HasClass(class) || grids[i].Element.Id == class {
				return &grids[i]
			}
		}
	}
	return &grids[0]
}

func trimSelector(s string) string {
	if len(s) > 0 && (s[0] == '.' || s[0] == '#') {
		return s[1:]
	}
	return s
}
