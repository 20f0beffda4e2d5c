package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"fyyur/internal/services"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20

// uploadImage stores the multipart field "image" and saves its URL with set.
func (h *BaseHandler) uploadImage(w http.ResponseWriter, r *http.Request, kind string, id int, set func(ctx context.Context, id int, link string) error) {
	detail := fmt.Sprintf("/%s/%d", kind, id)

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		h.flash(w, r, "The image could not be read.")
		h.redirect(w, r, detail)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.flash(w, r, "Choose an image to upload.")
		h.redirect(w, r, detail)
		return
	}
	defer file.Close()

	link, err := h.Images.Upload(r.Context(), kind, header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImage) {
			h.flash(w, r, "Only JPEG, PNG, GIF and WebP images are accepted.")
			h.redirect(w, r, detail)
			return
		}
		h.Logger.Error("upload image", zap.String("kind", kind), zap.Int("id", id), zap.Error(err))
		h.flash(w, r, "An error occurred. The image could not be uploaded.")
		h.redirect(w, r, detail)
		return
	}

	if err := set(r.Context(), id, link); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		h.Logger.Error("save image link", zap.String("kind", kind), zap.Int("id", id), zap.Error(err))
		h.flash(w, r, "An error occurred. The image could not be saved.")
		h.redirect(w, r, detail)
		return
	}

	h.flash(w, r, "Image was successfully uploaded!")
	h.redirect(w, r, detail)
}
