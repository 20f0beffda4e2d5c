package routes

import (
	"fyyur/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func RegisterArtistRoutes(r chi.Router, handler *handlers.ArtistHandler) {
	r.Route("/artists", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/search", handler.Search)
		r.Get("/create", handler.CreateForm)
		r.Post("/create", handler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.Get)
			r.Delete("/", handler.Delete)
			r.Post("/delete", handler.DeleteForm)
			r.Get("/edit", handler.EditForm)
			r.Post("/edit", handler.Update)
			r.Post("/image", handler.UploadImage)
		})
	})
}
