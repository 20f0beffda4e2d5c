package handlers

import (
	"errors"
	"net/http"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
	"fyyur/internal/web"
	"go.uber.org/zap"
)

type ShowHandler struct {
	*BaseHandler
}

func NewShowHandler(base *BaseHandler) *ShowHandler {
	return &ShowHandler{BaseHandler: base}
}

func (h *ShowHandler) List(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Catalog.Shows(r.Context())
	if err != nil {
		h.serverError(w, r, "list shows", err)
		return
	}
	h.render(w, r, http.StatusOK, "shows", &web.Page{Title: "Shows", Data: shows})
}

func (h *ShowHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "show_form", &web.Page{
		Title:  "List a new show",
		Form:   models.ShowRequest{},
		Action: "/shows/create",
	})
}

func (h *ShowHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, fieldErrs, err := h.decodeShowForm(r)
	if err == nil {
		if verr := h.validator.Struct(req); verr != nil {
			for field, msg := range validationErrors(verr) {
				if _, seen := fieldErrs[field]; !seen {
					fieldErrs[field] = msg
				}
			}
		}
	} else {
		fieldErrs = map[string]string{"form": "Invalid form submission."}
	}
	if len(fieldErrs) > 0 {
		h.renderShowForm(w, r, req, fieldErrs)
		return
	}

	show, err := h.Catalog.CreateShow(r.Context(), req)
	if err != nil {
		var ref *interfaces.InvalidReferenceError
		if errors.As(err, &ref) {
			h.renderShowForm(w, r, req, map[string]string{ref.Field: "No record with this id exists."})
			return
		}
		h.Logger.Error("create show", zap.Error(err))
		h.flash(w, r, "An error occurred. Show could not be listed.")
		h.redirect(w, r, "/")
		return
	}

	h.Logger.Info("show created", zap.Int("show_id", show.ID))
	h.flash(w, r, "Show was successfully listed!")
	h.redirect(w, r, "/")
}

func (h *ShowHandler) renderShowForm(w http.ResponseWriter, r *http.Request, req models.ShowRequest, errs map[string]string) {
	h.render(w, r, http.StatusBadRequest, "show_form", &web.Page{
		Title:  "List a new show",
		Form:   req,
		Action: "/shows/create",
		Errors: errs,
	})
}
