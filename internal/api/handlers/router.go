package handlers

import (
	"net/http"

	"github.com/dvloznov/bankview/internal/api/middleware"
	"github.com/dvloznov/bankview/internal/loads"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the API routes need.
type Deps struct {
	Catalogs CatalogProvider
	Reloader Reloader
	Loads    loads.Store
	PageSize int
}

// NewRouter wires every route and the middleware stack.
func NewRouter(deps Deps, log zerolog.Logger) http.Handler {
	clients := NewClientsHandler(deps.Catalogs, deps.PageSize, log)
	catalogs := NewCatalogHandler(deps.Catalogs, log)
	loadsHandler := NewLoadsHandler(deps.Reloader, deps.Loads, log)

	r := chi.NewRouter()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestID(log),
		middleware.Logger(log),
		middleware.CORS,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", Health(deps.Catalogs))

	r.Route("/api", func(r chi.Router) {
		r.Get("/clients", clients.ListClients)
		r.Get("/clients/{id}", clients.GetClient)
		r.Get("/branches", catalogs.ListBranches)
		r.Get("/summary", catalogs.Summary)

		r.Post("/reload", loadsHandler.Reload)
		r.Get("/loads", loadsHandler.ListLoads)
		r.Get("/loads/{id}", loadsHandler.GetLoad)
	})

	return r
}
