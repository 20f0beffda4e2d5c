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

type ArtistHandler struct {
	*BaseHandler
}

func NewArtistHandler(base *BaseHandler) *ArtistHandler {
	return &ArtistHandler{BaseHandler: base}
}

func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Catalog.Artists(r.Context())
	if err != nil {
		h.serverError(w, r, "list artists", err)
		return
	}
	h.render(w, r, http.StatusOK, "artists", &web.Page{Title: "Artists", Data: artists})
}

func (h *ArtistHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.FormValue("search_term"))
	result, err := h.Catalog.SearchArtists(r.Context(), term)
	if err != nil {
		h.serverError(w, r, "search artists", err)
		return
	}
	h.render(w, r, http.StatusOK, "search", &web.Page{
		Title: "Artist search",
		Data:  searchPage{Term: term, Count: result.Count, Base: "/artists", Items: result.Data},
	})
}

func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.Catalog.ArtistDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, "get artist", err)
		return
	}
	h.render(w, r, http.StatusOK, "artist", &web.Page{Title: detail.Name, Data: detail})
}

func (h *ArtistHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "artist_form", &web.Page{
		Title:  "List a new artist",
		Form:   models.ArtistRequest{},
		Action: "/artists/create",
	})
}

func (h *ArtistHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeArtistForm(r)
	if err == nil {
		err = h.validator.Struct(req)
	}
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "artist_form", &web.Page{
			Title: "List a new artist", Form: req, Action: "/artists/create",
			Errors: validationErrors(err),
		})
		return
	}

	var artist models.Artist
	req.Apply(&artist)
	if err := h.Catalog.CreateArtist(r.Context(), &artist); err != nil {
		h.Logger.Error("create artist", zap.String("name", artist.Name), zap.Error(err))
		h.flash(w, r, fmt.Sprintf("An error occurred. Artist %s could not be listed.", artist.Name))
		h.redirect(w, r, "/")
		return
	}

	h.Logger.Info("artist created", zap.Int("artist_id", artist.ID))
	h.flash(w, r, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	h.redirect(w, r, "/")
}

func (h *ArtistHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	artist, err := h.Catalog.Artist(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, "get artist", err)
		return
	}
	h.render(w, r, http.StatusOK, "artist_form", &web.Page{
		Title:  "Edit artist " + artist.Name,
		Form:   models.ArtistRequestFrom(artist),
		Action: fmt.Sprintf("/artists/%d/edit", id),
	})
}

func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	action := fmt.Sprintf("/artists/%d/edit", id)

	artist, err := h.Catalog.Artist(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, "get artist", err)
		return
	}

	req, err := h.decodeArtistForm(r)
	if err == nil {
		err = h.validator.Struct(req)
	}
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "artist_form", &web.Page{
			Title: "Edit artist " + artist.Name, Form: req, Action: action, Errors: validationErrors(err),
		})
		return
	}

	req.Apply(artist)
	if err := h.Catalog.UpdateArtist(r.Context(), artist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.Logger.Error("update artist", zap.Int("artist_id", id), zap.Error(err))
		h.flash(w, r, fmt.Sprintf("An error occurred. Artist %s could not be updated.", artist.Name))
		h.redirect(w, r, fmt.Sprintf("/artists/%d", id))
		return
	}

	h.flash(w, r, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	h.redirect(w, r, fmt.Sprintf("/artists/%d", id))
}

func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Artist not found")
		return
	}

	err := h.Catalog.DeleteArtist(r.Context(), id)
	var blocked *interfaces.DeletionBlockedError
	switch {
	case err == nil:
		h.flash(w, r, "Artist was successfully deleted.")
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/"})
	case errors.Is(err, sql.ErrNoRows):
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Artist not found")
	case errors.As(err, &blocked):
		writeJSONErrorResponse(w, http.StatusConflict, "deletion_blocked", blocked.Error())
	default:
		h.Logger.Error("delete artist", zap.Int("artist_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to delete artist")
	}
}

func (h *ArtistHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	err := h.Catalog.DeleteArtist(r.Context(), id)
	var blocked *interfaces.DeletionBlockedError
	switch {
	case err == nil:
		h.flash(w, r, "Artist was successfully deleted.")
		h.redirect(w, r, "/")
	case errors.Is(err, sql.ErrNoRows):
		h.NotFound(w, r)
	case errors.As(err, &blocked):
		h.flash(w, r, "Artist cannot be deleted while they have upcoming shows.")
		h.redirect(w, r, fmt.Sprintf("/artists/%d", id))
	default:
		h.Logger.Error("delete artist", zap.Int("artist_id", id), zap.Error(err))
		h.flash(w, r, "An error occurred. Artist could not be deleted.")
		h.redirect(w, r, fmt.Sprintf("/artists/%d", id))
	}
}

func (h *ArtistHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || h.Images == nil {
		h.NotFound(w, r)
		return
	}
	h.uploadImage(w, r, "artists", id, h.Catalog.SetArtistImage)
}
