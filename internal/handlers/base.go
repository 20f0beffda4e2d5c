// internal/handlers/base.go
package handlers

import (
	"fyyur/internal/services"
	"fyyur/internal/web"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// BaseHandler carries what every page handler needs. Images is nil when
// uploads are not configured. Sessions holds the flash queue.
type BaseHandler struct {
	Catalog   *services.Catalog
	Views     *web.Templates
	Images    services.ImageStore
	Sessions  sessions.Store
	Logger    *zap.Logger
	validator *validator.Validate
	forms     *form.Decoder
}

func NewBaseHandler(catalog *services.Catalog, views *web.Templates, images services.ImageStore, store sessions.Store, logger *zap.Logger) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{
		Catalog:   catalog,
		Views:     views,
		Images:    images,
		Sessions:  store,
		Logger:    logger,
		validator: newValidator(),
		forms:     newFormDecoder(),
	}
}
