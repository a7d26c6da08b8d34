package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// InventoryRoutes registers item and document endpoints on the provided chi
// router. Every route goes through the session gate.
func InventoryRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	Routes(r, svcs, a.Gate, a.Logger)
	return svcs
}

// Routes mounts the handlers for svcs behind gate.
func Routes(r chi.Router, svcs *appsvcs.Services, gate *auth.Gate, log logger.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(gate, log))

		r.Route("/api/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs, log).Execute)
			r.Post("/", handlers.NewCreateItemHandler(svcs, log).Execute)

			r.Route("/{id:[0-9]+}", func(r chi.Router) {
				update := handlers.NewUpdateItemHandler(svcs, log).Execute
				remove := handlers.NewDeleteItemHandler(svcs, log).Execute

				r.Get("/", handlers.NewGetItemHandler(svcs, log).Execute)
				r.Put("/", update)
				r.Post("/", update)
				r.Delete("/", remove)
				r.Post("/delete", remove)
				r.Post("/documents", handlers.NewUploadDocumentHandler(svcs, log).Execute)
			})
		})

		r.Route("/api/documents/{id:[0-9]+}", func(r chi.Router) {
			remove := handlers.NewDeleteDocumentHandler(svcs, log).Execute
			r.Delete("/", remove)
			r.Post("/delete", remove)
		})

		r.Get(handlers.UploadsPath+"{storedName}", handlers.NewFetchDocumentHandler(svcs, log).Execute)
	})
}
