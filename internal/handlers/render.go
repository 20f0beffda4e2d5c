package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"fyyur/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SessionName is the cookie holding the signed flash session.
const SessionName = "fyyur_session"

// render writes a page with the given status. Pending flash messages are
// consumed and shown on it.
func (h *BaseHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, page *web.Page) {
	if page == nil {
		page = &web.Page{}
	}
	page.Flashes = append(h.takeFlashes(w, r), page.Flashes...)
	page.Images = h.Images != nil

	var buf bytes.Buffer
	if err := h.Views.Render(&buf, name, page); err != nil {
		h.Logger.Error("render template",
			zap.String("template", name),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *BaseHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404", &web.Page{Title: "Not found"})
}

func (h *BaseHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Logger.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	h.render(w, r, http.StatusInternalServerError, "500", &web.Page{Title: "Server error"})
}

// flash queues a message for the next rendered page.
func (h *BaseHandler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	// A cookie that fails verification yields a fresh session.
	session, _ := h.Sessions.Get(r, SessionName)
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		h.Logger.Warn("save flash", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
	}
}

func (h *BaseHandler) takeFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := h.Sessions.Get(r, SessionName)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		h.Logger.Warn("clear flashes", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

func (h *BaseHandler) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// pathID parses the {id} URL parameter. Ids that are not positive integers
// are treated as unknown records.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
