package routes

import (
	"fyyur/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func RegisterShowRoutes(r chi.Router, handler *handlers.ShowHandler) {
	r.Route("/shows", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Get("/create", handler.CreateForm)
		r.Post("/create", handler.Create)
	})
}
