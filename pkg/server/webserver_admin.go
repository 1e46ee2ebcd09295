package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/types"
)

var (
	totalFacets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "facetfilter_facets",
		Help: "The number of configured facets",
	})
	totalDocuments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "facetfilter_documents",
		Help: "The number of indexed documents",
	})
)

// AdminResponse is the envelope for mutating admin endpoints. Shortcode is
// filled on facet saves so the admin ui can show the embeddable tag right
// away.
type AdminResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Shortcode string `json:"shortcode,omitempty"`
}

func writeAdminResponse(w http.ResponseWriter, status int, resp AdminResponse) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func facetShortcode(def *types.FacetDefinition) string {
	return fmt.Sprintf(`[cfs_facet slug="%s"]`, def.Slug)
}

func (ws *WebServer) HandleListFacets(w http.ResponseWriter, r *http.Request) {
	defs, err := ws.Repo.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defaultHeaders(w, r, true, "0")
	if err := json.NewEncoder(w).Encode(defs); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleGetFacet(w http.ResponseWriter, r *http.Request) {
	def, err := ws.Repo.Get(r.PathValue("slug"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defaultHeaders(w, r, true, "0")
	if err := json.NewEncoder(w).Encode(def); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleSaveFacet(w http.ResponseWriter, r *http.Request) {
	def := &types.FacetDefinition{}
	if err := json.NewDecoder(r.Body).Decode(def); err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: err.Error()})
		return
	}
	if def.Slug == "" {
		def.Slug = types.Slugify(def.Name)
	}
	ws.saveFacet(w, def)
}

func (ws *WebServer) HandleUpdateFacet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: "invalid facet id"})
		return
	}
	def := &types.FacetDefinition{}
	if err := json.NewDecoder(r.Body).Decode(def); err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: err.Error()})
		return
	}
	existing, err := ws.facetById(id)
	if err != nil {
		writeAdminResponse(w, http.StatusNotFound, AdminResponse{Message: err.Error()})
		return
	}
	updated := *existing
	if def.Slug != "" {
		updated.Slug = def.Slug
	}
	updated.UpdateFrom(def)
	ws.saveFacet(w, &updated)
}

func (ws *WebServer) facetById(id int64) (*types.FacetDefinition, error) {
	defs, err := ws.Repo.All()
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		if def.Id == id {
			return def, nil
		}
	}
	return nil, fmt.Errorf("no facet with id %d", id)
}

func (ws *WebServer) saveFacet(w http.ResponseWriter, def *types.FacetDefinition) {
	if err := ws.Repo.Save(def); err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: err.Error()})
		return
	}
	if ws.Publisher != nil {
		if err := ws.Publisher.FacetSaved(def); err != nil {
			log.Printf("publish facet change: %v", err)
		}
	}
	ws.updateFacetGauge()
	writeAdminResponse(w, http.StatusOK, AdminResponse{
		Success:   true,
		Message:   "Facet saved",
		Shortcode: facetShortcode(def),
	})
}

func (ws *WebServer) HandleDeleteFacet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: "invalid facet id"})
		return
	}
	if err := ws.Repo.Delete(id); err != nil {
		writeAdminResponse(w, http.StatusNotFound, AdminResponse{Message: err.Error()})
		return
	}
	if ws.Publisher != nil {
		if err := ws.Publisher.FacetDeleted(id); err != nil {
			log.Printf("publish facet change: %v", err)
		}
	}
	ws.updateFacetGauge()
	writeAdminResponse(w, http.StatusOK, AdminResponse{Success: true, Message: "Facet deleted"})
}

func (ws *WebServer) updateFacetGauge() {
	if defs, err := ws.Repo.All(); err == nil {
		totalFacets.Set(float64(len(defs)))
	}
}

func (ws *WebServer) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "0")
	settings := ws.Settings()
	if err := json.NewEncoder(w).Encode(settings); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings := types.DefaultSettings()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: err.Error()})
		return
	}
	ws.SetSettings(settings)
	if ws.Disk != nil {
		if err := ws.Disk.SaveSettings(&settings); err != nil {
			log.Printf("save settings: %v", err)
		}
	}
	if ws.Publisher != nil {
		if err := ws.Publisher.SettingsChanged(&settings); err != nil {
			log.Printf("publish settings change: %v", err)
		}
	}
	writeAdminResponse(w, http.StatusOK, AdminResponse{Success: true, Message: "Settings saved"})
}

func (ws *WebServer) HandleMetaKeys(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "60")
	if err := json.NewEncoder(w).Encode(ws.Index.MetaKeys()); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleTaxonomies(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "60")
	if err := json.NewEncoder(w).Encode(ws.Index.Taxonomies()); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleTaxonomyTerms(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "60")
	terms := ws.Index.TermChoices(r.PathValue("taxonomy"), nil)
	if err := json.NewEncoder(w).Encode(terms); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleContentTypes(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "60")
	if err := json.NewEncoder(w).Encode(ws.Index.ContentTypes()); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleWidgets(w http.ResponseWriter, r *http.Request) {
	widgets, err := ws.Builders.AllWidgets(ws.Repo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defaultHeaders(w, r, true, "60")
	if err := json.NewEncoder(w).Encode(widgets); err != nil {
		log.Printf("Error handling request: %v", err)
	}
}

func (ws *WebServer) HandleUpsertDocuments(w http.ResponseWriter, r *http.Request) {
	var docs []*content.Document
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: err.Error()})
		return
	}
	for _, doc := range docs {
		ws.Index.Upsert(doc)
	}
	totalDocuments.Set(float64(ws.Index.Len()))
	writeAdminResponse(w, http.StatusOK, AdminResponse{
		Success: true,
		Message: fmt.Sprintf("Indexed %d documents", len(docs)),
	})
}

func (ws *WebServer) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: "invalid document id"})
		return
	}
	ws.Index.Delete(id)
	totalDocuments.Set(float64(ws.Index.Len()))
	writeAdminResponse(w, http.StatusOK, AdminResponse{Success: true, Message: "Document removed"})
}

func (ws *WebServer) HandleSave(w http.ResponseWriter, r *http.Request) {
	if ws.Disk == nil {
		writeAdminResponse(w, http.StatusBadRequest, AdminResponse{Message: "no storage configured"})
		return
	}
	if err := ws.Disk.SaveDocuments(ws.Index.All()); err != nil {
		writeAdminResponse(w, http.StatusInternalServerError, AdminResponse{Message: err.Error()})
		return
	}
	writeAdminResponse(w, http.StatusOK, AdminResponse{Success: true, Message: "Documents saved"})
}
