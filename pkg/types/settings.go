package types

// Settings are the site-wide options of the filter layer, persisted next to
// the facet definitions and exposed to the frontend config payload.
type Settings struct {
	EnableAjax       bool   `json:"enableAjax"`
	AjaxUrlUpdate    bool   `json:"ajaxUrlUpdate"`
	ScrollToResults  bool   `json:"scrollToResults"`
	LoadingAnimation bool   `json:"loadingAnimation"`
	ResultsContainer string `json:"resultsContainer"`
	PaginationType   string `json:"paginationType"`
	DebugMode        bool   `json:"debugMode"`
}

func DefaultSettings() Settings {
	return Settings{
		EnableAjax:       true,
		AjaxUrlUpdate:    true,
		ScrollToResults:  true,
		LoadingAnimation: true,
		ResultsContainer: ".cfs-results",
		PaginationType:   "standard",
	}
}

// FacetRepository is the persistence boundary for facet definitions.
type FacetRepository interface {
	All() ([]*FacetDefinition, error)
	Get(slug string) (*FacetDefinition, error)
	Save(def *FacetDefinition) error
	Delete(id int64) error
}

// DefinitionCache is a request-scoped read-through cache over a repository.
// Populated lazily, read-only once warm; construct one per request and pass it
// to the translator and renderer instead of sharing process-wide state.
type DefinitionCache struct {
	repo  FacetRepository
	cache map[string]*FacetDefinition
}

func NewDefinitionCache(repo FacetRepository) *DefinitionCache {
	return &DefinitionCache{
		repo:  repo,
		cache: make(map[string]*FacetDefinition),
	}
}

// Resolve returns the definition for slug, or nil when unknown. Unknown slugs
// are negatively cached for the lifetime of the request.
func (c *DefinitionCache) Resolve(slug string) *FacetDefinition {
	if def, ok := c.cache[slug]; ok {
		return def
	}
	def, err := c.repo.Get(slug)
	if err != nil {
		def = nil
	}
	c.cache[slug] = def
	return def
}
