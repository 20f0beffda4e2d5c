package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
	"fyyur/internal/web"
	"go.uber.org/zap"
)

type VenueHandler struct {
	*BaseHandler
}

func NewVenueHandler(base *BaseHandler) *VenueHandler {
	return &VenueHandler{BaseHandler: base}
}

// searchPage is shared by the venue and artist search results.
type searchPage struct {
	Term  string
	Count int
	Base  string
	Items any
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Catalog.VenueAreas(r.Context())
	if err != nil {
		h.serverError(w, r, "list venues", err)
		return
	}
	h.render(w, r, http.StatusOK, "venues", &web.Page{Title: "Venues", Data: areas})
}

func (h *VenueHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.FormValue("search_term"))
	result, err := h.Catalog.SearchVenues(r.Context(), term)
	if err != nil {
		h.serverError(w, r, "search venues", err)
		return
	}
	h.render(w, r, http.StatusOK, "search", &web.Page{
		Title: "Venue search",
		Data:  searchPage{Term: term, Count: result.Count, Base: "/venues", Items: result.Data},
	})
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.Catalog.VenueDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, "get venue", err)
		return
	}
	h.render(w, r, http.StatusOK, "venue", &web.Page{Title: detail.Name, Data: detail})
}

func (h *VenueHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "venue_form", &web.Page{
		Title:  "List a new venue",
		Form:   models.VenueRequest{},
		Action: "/venues/create",
	})
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeVenueForm(r)
	if err == nil {
		err = h.validator.Struct(req)
	}
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "venue_form", &web.Page{
			Title: "List a new venue", Form: req, Action: "/venues/create",
			Errors: validationErrors(err),
		})
		return
	}

	var venue models.Venue
	req.Apply(&venue)
	if err := h.Catalog.CreateVenue(r.Context(), &venue); err != nil {
		h.Logger.Error("create venue", zap.String("name", venue.Name), zap.Error(err))
		h.flash(w, r, fmt.Sprintf("An error occurred. Venue %s could not be listed.", venue.Name))
		h.redirect(w, r, "/")
		return
	}

	h.Logger.Info("venue created", zap.Int("venue_id", venue.ID))
	h.flash(w, r, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	h.redirect(w, r, "/")
}

func (h *VenueHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	venue, err := h.Catalog.Venue(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, "get venue", err)
		return
	}
	h.render(w, r, http.StatusOK, "venue_form", &web.Page{
		Title:  "Edit venue " + venue.Name,
		Form:   models.VenueRequestFrom(venue),
		Action: fmt.Sprintf("/venues/%d/edit", id),
	})
}

func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	action := fmt.Sprintf("/venues/%d/edit", id)

	venue, err := h.Catalog.Venue(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, "get venue", err)
		return
	}

	req, err := h.decodeVenueForm(r)
	if err == nil {
		err = h.validator.Struct(req)
	}
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "venue_form", &web.Page{
			Title: "Edit venue " + venue.Name, Form: req, Action: action, Errors: validationErrors(err),
		})
		return
	}

	req.Apply(venue)
	if err := h.Catalog.UpdateVenue(r.Context(), venue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.Logger.Error("update venue", zap.Int("venue_id", id), zap.Error(err))
		h.flash(w, r, fmt.Sprintf("An error occurred. Venue %s could not be updated.", venue.Name))
		h.redirect(w, r, fmt.Sprintf("/venues/%d", id))
		return
	}

	h.flash(w, r, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	h.redirect(w, r, fmt.Sprintf("/venues/%d", id))
}

// Delete answers DELETE /venues/{id} with JSON for scripted clients.
func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Venue not found")
		return
	}

	err := h.Catalog.DeleteVenue(r.Context(), id)
	var blocked *interfaces.DeletionBlockedError
	switch {
	case err == nil:
		h.flash(w, r, "Venue was successfully deleted.")
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/"})
	case errors.Is(err, sql.ErrNoRows):
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Venue not found")
	case errors.As(err, &blocked):
		writeJSONErrorResponse(w, http.StatusConflict, "deletion_blocked", blocked.Error())
	default:
		h.Logger.Error("delete venue", zap.Int("venue_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to delete venue")
	}
}

// DeleteForm is the HTML form variant of Delete.
func (h *VenueHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	err := h.Catalog.DeleteVenue(r.Context(), id)
	var blocked *interfaces.DeletionBlockedError
	switch {
	case err == nil:
		h.flash(w, r, "Venue was successfully deleted.")
		h.redirect(w, r, "/")
	case errors.Is(err, sql.ErrNoRows):
		h.NotFound(w, r)
	case errors.As(err, &blocked):
		h.flash(w, r, "Venue cannot be deleted while it has upcoming shows.")
		h.redirect(w, r, fmt.Sprintf("/venues/%d", id))
	default:
		h.Logger.Error("delete venue", zap.Int("venue_id", id), zap.Error(err))
		h.flash(w, r, "An error occurred. Venue could not be deleted.")
		h.redirect(w, r, fmt.Sprintf("/venues/%d", id))
	}
}

func (h *VenueHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || h.Images == nil {
		h.NotFound(w, r)
		return
	}
	h.uploadImage(w, r, "venues", id, h.Catalog.SetVenueImage)
}
