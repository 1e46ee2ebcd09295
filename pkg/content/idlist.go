package content

import "maps"

// IdList is a set of document ids. Matching produces one list per constraint
// group; groups intersect.
type IdList map[int64]struct{}

var empty = struct{}{}

func (l IdList) Add(id int64) {
	l[id] = empty
}

func (l IdList) Has(id int64) bool {
	_, ok := l[id]
	return ok
}

func (l IdList) Merge(other IdList) {
	maps.Copy(l, other)
}

func (l IdList) Intersect(other IdList) {
	for id := range l {
		if _, ok := other[id]; !ok {
			delete(l, id)
		}
	}
}

func (l IdList) Clone() IdList {
	out := make(IdList, len(l))
	maps.Copy(out, l)
	return out
}
