package handlers

import (
	"net/http"

	"fyyur/internal/web"
)

type HomeHandler struct {
	*BaseHandler
}

func NewHomeHandler(base *BaseHandler) *HomeHandler {
	return &HomeHandler{BaseHandler: base}
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	recent, err := h.Catalog.RecentListings(r.Context())
	if err != nil {
		h.serverError(w, r, "recent listings", err)
		return
	}
	h.render(w, r, http.StatusOK, "home", &web.Page{Data: recent})
}
