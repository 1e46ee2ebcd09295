package content

import (
	"sync"
)

// Index holds the documents and the inverted maps the query executor and the
// choice enumeration read from. Writes take the lock exclusively; queries
// share it.
type Index struct {
	mu sync.RWMutex

	docs   map[int64]*Document
	byType map[string]IdList
	// taxonomy -> term -> ids
	terms map[string]map[string]IdList
	// meta key -> value -> ids
	meta map[string]map[string]IdList
	// author -> ids
	authors map[string]IdList
}

func NewIndex() *Index {
	return &Index{
		docs:    make(map[int64]*Document),
		byType:  make(map[string]IdList),
		terms:   make(map[string]map[string]IdList),
		meta:    make(map[string]map[string]IdList),
		authors: make(map[string]IdList),
	}
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

func (idx *Index) Get(id int64) (*Document, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	d, ok := idx.docs[id]
	return d, ok
}

// Upsert indexes doc, replacing any previous version of the same id.
func (idx *Index) Upsert(doc *Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.docs[doc.Id]; ok {
		idx.unlink(doc.Id)
	}
	idx.docs[doc.Id] = doc
	idx.link(doc)
}

func (idx *Index) Delete(id int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.docs[id]; !ok {
		return
	}
	idx.unlink(id)
	delete(idx.docs, id)
}

func (idx *Index) link(doc *Document) {
	list, ok := idx.byType[doc.ContentType]
	if !ok {
		list = IdList{}
		idx.byType[doc.ContentType] = list
	}
	list.Add(doc.Id)

	for taxonomy, terms := range doc.Terms {
		byTerm, ok := idx.terms[taxonomy]
		if !ok {
			byTerm = make(map[string]IdList)
			idx.terms[taxonomy] = byTerm
		}
		for _, term := range terms {
			if term == "" {
				continue
			}
			ids, ok := byTerm[term]
			if !ok {
				ids = IdList{}
				byTerm[term] = ids
			}
			ids.Add(doc.Id)
		}
	}

	for key, values := range doc.Meta {
		byValue, ok := idx.meta[key]
		if !ok {
			byValue = make(map[string]IdList)
			idx.meta[key] = byValue
		}
		for _, v := range values {
			if v == "" {
				continue
			}
			ids, ok := byValue[v]
			if !ok {
				ids = IdList{}
				byValue[v] = ids
			}
			ids.Add(doc.Id)
		}
	}

	if doc.Author != "" {
		ids, ok := idx.authors[doc.Author]
		if !ok {
			ids = IdList{}
			idx.authors[doc.Author] = ids
		}
		ids.Add(doc.Id)
	}
}

func (idx *Index) unlink(id int64) {
	doc := idx.docs[id]
	if list, ok := idx.byType[doc.ContentType]; ok {
		delete(list, id)
	}
	for taxonomy, terms := range doc.Terms {
		byTerm := idx.terms[taxonomy]
		for _, term := range terms {
			if ids, ok := byTerm[term]; ok {
				delete(ids, id)
				if len(ids) == 0 {
					delete(byTerm, term)
				}
			}
		}
	}
	for key, values := range doc.Meta {
		byValue := idx.meta[key]
		for _, v := range values {
			if ids, ok := byValue[v]; ok {
				delete(ids, id)
				if len(ids) == 0 {
					delete(byValue, v)
				}
			}
		}
	}
	if doc.Author != "" {
		if ids, ok := idx.authors[doc.Author]; ok {
			delete(ids, id)
		}
	}
}

// All returns the documents in id order, for persistence snapshots.
func (idx *Index) All() []*Document {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*Document, 0, len(idx.docs))
	for _, d := range idx.docs {
		out = append(out, d)
	}
	sortDocs(out, "id", "ASC", "")
	return out
}
