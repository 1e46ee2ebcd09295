package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/webgrowth/facetfilter/pkg/types"
)

const facetHashKey = "cfs:facets"
const facetIdKey = "cfs:facets:next-id"

// RedisFacetRepository stores the definitions in a redis hash keyed by slug,
// for deployments where several instances share one facet set.
type RedisFacetRepository struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisFacetRepository(addr, password string, db int) *RedisFacetRepository {
	return &RedisFacetRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ctx: context.Background(),
	}
}

func (r *RedisFacetRepository) All() ([]*types.FacetDefinition, error) {
	raw, err := r.client.HGetAll(r.ctx, facetHashKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*types.FacetDefinition, 0, len(raw))
	for slug, data := range raw {
		def := &types.FacetDefinition{}
		if err := json.Unmarshal([]byte(data), def); err != nil {
			return nil, fmt.Errorf("decode facet %s: %w", slug, err)
		}
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (r *RedisFacetRepository) Get(slug string) (*types.FacetDefinition, error) {
	data, err := r.client.HGet(r.ctx, facetHashKey, slug).Result()
	if err != nil {
		return nil, err
	}
	def := &types.FacetDefinition{}
	if err := json.Unmarshal([]byte(data), def); err != nil {
		return nil, fmt.Errorf("decode facet %s: %w", slug, err)
	}
	return def, nil
}

func (r *RedisFacetRepository) Save(def *types.FacetDefinition) error {
	if err := types.ValidateSlug(def.Slug); err != nil {
		return err
	}
	if def.Id == 0 {
		id, err := r.client.Incr(r.ctx, facetIdKey).Result()
		if err != nil {
			return err
		}
		def.Id = id
	} else {
		// drop any old slug entry of the same id
		all, err := r.All()
		if err != nil {
			return err
		}
		for _, existing := range all {
			if existing.Id == def.Id && existing.Slug != def.Slug {
				if err := r.client.HDel(r.ctx, facetHashKey, existing.Slug).Err(); err != nil {
					return err
				}
			}
		}
	}
	data, err := json.Marshal(def)
	if err != nil {
		return err
	}
	return r.client.HSet(r.ctx, facetHashKey, def.Slug, data).Err()
}

func (r *RedisFacetRepository) Delete(id int64) error {
	all, err := r.All()
	if err != nil {
		return err
	}
	for _, def := range all {
		if def.Id == id {
			return r.client.HDel(r.ctx, facetHashKey, def.Slug).Err()
		}
	}
	return fmt.Errorf("no facet with id %d", id)
}

func (r *RedisFacetRepository) Close() error {
	return r.client.Close()
}
