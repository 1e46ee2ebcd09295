package server

import (
	"net/http"
	"sync"

	"github.com/webgrowth/facetfilter/pkg/builders"
	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/messaging"
	"github.com/webgrowth/facetfilter/pkg/render"
	"github.com/webgrowth/facetfilter/pkg/storage"
	"github.com/webgrowth/facetfilter/pkg/types"
)

// WebServer wires the filter endpoints over the facet repository and the
// content index. Publisher is optional; without it changes stay local.
type WebServer struct {
	Repo      types.FacetRepository
	Index     *content.Index
	Renderer  *render.Renderer
	Disk      *storage.DiskStorage
	Builders  *builders.Registry
	Publisher *messaging.FacetPublisher
	Auth      AuthHandler

	settingsMu sync.RWMutex
	settings   types.Settings
}

func NewWebServer(repo types.FacetRepository, idx *content.Index, disk *storage.DiskStorage) *WebServer {
	ws := &WebServer{
		Repo:     repo,
		Index:    idx,
		Renderer: render.NewRenderer(idx),
		Disk:     disk,
		Builders: builders.NewRegistry(),
		Auth:     &MockAuth{},
		settings: types.DefaultSettings(),
	}
	if disk != nil {
		settings := types.DefaultSettings()
		if err := disk.LoadSettings(&settings); err == nil {
			ws.settings = settings
		}
	}
	return ws
}

func (ws *WebServer) Settings() types.Settings {
	ws.settingsMu.RLock()
	defer ws.settingsMu.RUnlock()
	return ws.settings
}

func (ws *WebServer) SetSettings(settings types.Settings) {
	ws.settingsMu.Lock()
	ws.settings = settings
	ws.settingsMu.Unlock()
}

// ClientHandler serves the public filter surface.
func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("POST /filter", ws.HandleFilter)
	srv.HandleFunc("POST /load-more", ws.HandleLoadMore)
	srv.HandleFunc("GET /counts", ws.HandleCounts)
	srv.HandleFunc("GET /config", ws.HandleConfig)
	srv.HandleFunc("GET /facets", ws.HandleRenderFacets)
	srv.HandleFunc("GET /facets/{slug}", ws.HandleRenderFacet)
	srv.HandleFunc("OPTIONS /", respondToOptions)

	return srv
}

// AdminHandler serves facet management behind the auth middleware.
func (ws *WebServer) AdminHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/login", ws.Auth.Login)
	srv.HandleFunc("/logout", ws.Auth.Logout)
	srv.HandleFunc("/user", ws.Auth.User)
	srv.HandleFunc("/auth_callback", ws.Auth.AuthCallback)

	srv.HandleFunc("GET /facets", ws.HandleListFacets)
	srv.HandleFunc("GET /facets/{slug}", ws.HandleGetFacet)
	srv.HandleFunc("POST /facets", ws.Auth.Middleware(ws.HandleSaveFacet))
	srv.HandleFunc("PUT /facets/{id}", ws.Auth.Middleware(ws.HandleUpdateFacet))
	srv.HandleFunc("DELETE /facets/{id}", ws.Auth.Middleware(ws.HandleDeleteFacet))

	srv.HandleFunc("GET /settings", ws.HandleGetSettings)
	srv.HandleFunc("PUT /settings", ws.Auth.Middleware(ws.HandleUpdateSettings))

	srv.HandleFunc("GET /meta-keys", ws.HandleMetaKeys)
	srv.HandleFunc("GET /taxonomies", ws.HandleTaxonomies)
	srv.HandleFunc("GET /taxonomies/{taxonomy}/terms", ws.HandleTaxonomyTerms)
	srv.HandleFunc("GET /content-types", ws.HandleContentTypes)
	srv.HandleFunc("GET /widgets", ws.HandleWidgets)

	srv.HandleFunc("POST /documents", ws.Auth.Middleware(ws.HandleUpsertDocuments))
	srv.HandleFunc("DELETE /documents/{id}", ws.Auth.Middleware(ws.HandleDeleteDocument))
	srv.HandleFunc("POST /save", ws.Auth.Middleware(ws.HandleSave))

	return srv
}
