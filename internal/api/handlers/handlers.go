package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dvloznov/bankview/internal/api/middleware"
	"github.com/dvloznov/bankview/internal/catalog"
	"github.com/dvloznov/bankview/internal/loads"
	"github.com/dvloznov/bankview/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	loadFailedMessage = "Failed to load data. Please try again."
	retryRoute        = "POST /api/reload"
)

// CatalogProvider returns the catalog readers should see, or why there is none.
type CatalogProvider interface {
	Current() (*catalog.Catalog, error)
}

// Reloader runs a fresh load cycle.
type Reloader interface {
	Reload(ctx context.Context, trigger loads.Trigger) (*loads.Cycle, error)
}

// catalogOrUnavailable writes a 503 and returns false when no catalog is
// being served.
func catalogOrUnavailable(w http.ResponseWriter, provider CatalogProvider, log zerolog.Logger) (*catalog.Catalog, bool) {
	cat, err := provider.Current()
	if err == nil && cat != nil {
		return cat, true
	}

	w.Header().Set("Retry-After", "5")
	if errors.Is(err, loads.ErrLoadFailed) {
		log.Warn().Err(err).Msg("Serving failed load state")
		middleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":  loadFailedMessage,
			"detail": err.Error(),
			"retry":  retryRoute,
		})
		return nil, false
	}

	middleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
		"error":  "loading",
		"status": "loading",
	})
	return nil, false
}

// ClientsHandler handles client list and detail endpoints.
type ClientsHandler struct {
	catalogs CatalogProvider
	pageSize int
	log      zerolog.Logger
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(catalogs CatalogProvider, pageSize int, log zerolog.Logger) *ClientsHandler {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &ClientsHandler{
		catalogs: catalogs,
		pageSize: pageSize,
		log:      log,
	}
}

// ListClients handles GET /api/clients
func (h *ClientsHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	marital, err := query.ParseMaritalStatus(params.Get("marital_status"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	docType, err := query.ParseDocumentType(params.Get("document_type"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := 1
	if pageStr := params.Get("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid page")
			return
		}
	}

	cat, ok := catalogOrUnavailable(w, h.catalogs, h.log)
	if !ok {
		return
	}

	snapshot := query.NewSnapshot(cat.Clients).
		WithSearch(params.Get("search")).
		WithFilter(query.Filter{MaritalStatus: marital, DocumentType: docType}).
		WithPage(page)
	view := query.Derive(snapshot, h.pageSize)

	middleware.WriteJSON(w, http.StatusOK, newListView(snapshot, view, cat))
}

// GetClient handles GET /api/clients/{id}
func (h *ClientsHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Client ID is required")
		return
	}

	cat, ok := catalogOrUnavailable(w, h.catalogs, h.log)
	if !ok {
		return
	}

	detail, found := cat.Detail(id)
	if !found {
		middleware.WriteError(w, http.StatusNotFound, "Client not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, newDetailView(detail))
}

// CatalogHandler serves whole-catalog endpoints.
type CatalogHandler struct {
	catalogs CatalogProvider
	log      zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogs CatalogProvider, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, log: log}
}

// ListBranches handles GET /api/branches
func (h *CatalogHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	cat, ok := catalogOrUnavailable(w, h.catalogs, h.log)
	if !ok {
		return
	}

	branches := make([]BranchView, len(cat.Branches))
	for i, b := range cat.Branches {
		branches[i] = newBranchView(b)
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"branches": branches,
		"count":    len(branches),
	})
}

// Summary handles GET /api/summary
func (h *CatalogHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cat, ok := catalogOrUnavailable(w, h.catalogs, h.log)
	if !ok {
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary":   cat.Summary(),
		"cycle_id":  cat.CycleID,
		"loaded_at": cat.LoadedAt,
	})
}

// LoadsHandler handles reload and load-history endpoints.
type LoadsHandler struct {
	reloader Reloader
	store    loads.Store
	log      zerolog.Logger
}

// NewLoadsHandler creates a new loads handler.
func NewLoadsHandler(reloader Reloader, store loads.Store, log zerolog.Logger) *LoadsHandler {
	return &LoadsHandler{
		reloader: reloader,
		store:    store,
		log:      log,
	}
}

// Reload handles POST /api/reload
func (h *LoadsHandler) Reload(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.reloader.Reload(r.Context(), loads.TriggerManual)
	if err != nil {
		h.log.Error().Err(err).Msg("Manual reload failed")
		middleware.WriteJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":  loadFailedMessage,
			"detail": err.Error(),
			"cycle":  cycle,
		})
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, cycle)
}

// GetLoad handles GET /api/loads/{id}
func (h *LoadsHandler) GetLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cycle, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, loads.ErrCycleNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Load cycle not found")
			return
		}
		h.log.Error().Err(err).Str("cycle_id", id).Msg("Failed to get load cycle")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get load cycle")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, cycle)
}

// ListLoads handles GET /api/loads
func (h *LoadsHandler) ListLoads(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	status, ok := loads.ParseStatus(params.Get("status"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	filter := loads.Filter{Status: status}

	if appliedStr := params.Get("applied"); appliedStr != "" {
		applied, err := strconv.ParseBool(appliedStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid applied flag")
			return
		}
		filter.AppliedOnly = applied
	}

	if limitStr := params.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := params.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	cycles, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list load cycles")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list load cycles")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"loads": cycles,
		"count": len(cycles),
	})
}

// Health handles GET /health. It reports the data state without failing.
func Health(catalogs CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := "ready"
		if _, err := catalogs.Current(); err != nil {
			data = "loading"
			if errors.Is(err, loads.ErrLoadFailed) {
				data = "failed"
			}
		}

		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"data":   data,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
