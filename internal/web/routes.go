package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-labels/internal/web/handlers"
	"github.com/kozaktomas/photo-labels/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	layoutHandler := handlers.NewLayoutHandler(s.labeler, s.logger)
	photosHandler := handlers.NewPhotosHandler(s.labeler, s.logger)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", layoutHandler.Layout)
		r.Post("/render", layoutHandler.Render)

		// PhotoPrism backed routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.WithPhotoPrism(s.photos))

			r.Get("/photos/{uid}/layout", photosHandler.Layout)
			r.Get("/photos/{uid}/labelled.jpg", photosHandler.Labelled)
			r.Get("/albums/{uid}/layout", photosHandler.AlbumLayout)
		})
	})
}
