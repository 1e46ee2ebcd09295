package storage

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// DiskFacetRepository keeps the facet definitions in memory and persists the
// whole set to disk on every change. Slugs are unique; saving an existing id
// updates in place.
type DiskFacetRepository struct {
	mu     sync.RWMutex
	disk   *DiskStorage
	bySlug map[string]*types.FacetDefinition
	nextId int64
}

func NewDiskFacetRepository(disk *DiskStorage) (*DiskFacetRepository, error) {
	r := &DiskFacetRepository{
		disk:   disk,
		bySlug: make(map[string]*types.FacetDefinition),
		nextId: 1,
	}
	var defs []*types.FacetDefinition
	if err := disk.LoadFacets(&defs); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load facets: %w", err)
		}
	}
	for _, def := range defs {
		r.bySlug[def.Slug] = def
		if def.Id >= r.nextId {
			r.nextId = def.Id + 1
		}
	}
	return r, nil
}

func (r *DiskFacetRepository) All() ([]*types.FacetDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

func (r *DiskFacetRepository) Get(slug string) (*types.FacetDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if def, ok := r.bySlug[slug]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("no facet with slug %s", slug)
}

func (r *DiskFacetRepository) Save(def *types.FacetDefinition) error {
	if err := types.ValidateSlug(def.Slug); err != nil {
		return err
	}
	if !types.ValidFacetType(def.Type) {
		return fmt.Errorf("unknown facet type %s", def.Type)
	}
	if !types.ValidFacetSource(def.Source) {
		return fmt.Errorf("unknown facet source %s", def.Source)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.bySlug[def.Slug]; ok && existing.Id != def.Id {
		return fmt.Errorf("slug %s is already in use", def.Slug)
	}
	if def.Id == 0 {
		def.Id = r.nextId
		r.nextId++
		def.CreatedAt = now
	} else {
		// a rename frees the old slug
		for slug, existing := range r.bySlug {
			if existing.Id == def.Id && slug != def.Slug {
				delete(r.bySlug, slug)
			}
		}
		if def.CreatedAt.IsZero() {
			def.CreatedAt = now
		}
	}
	def.UpdatedAt = now
	r.bySlug[def.Slug] = def

	return r.disk.SaveFacets(r.sorted())
}

func (r *DiskFacetRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slug, def := range r.bySlug {
		if def.Id == id {
			delete(r.bySlug, slug)
			return r.disk.SaveFacets(r.sorted())
		}
	}
	return fmt.Errorf("no facet with id %d", id)
}

func (r *DiskFacetRepository) sorted() []*types.FacetDefinition {
	out := make([]*types.FacetDefinition, 0, len(r.bySlug))
	for _, def := range r.bySlug {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}
