// api/handlers/collection_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/collecta-backend/api/middleware"
	"github.com/Annany2002/collecta-backend/api/models"
	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/service"
)

// CollectionHandler serves /collections.
type CollectionHandler struct {
	Svc *service.Service
	Cfg *config.Config
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(svc *service.Service, cfg *config.Config) *CollectionHandler {
	return &CollectionHandler{Svc: svc, Cfg: cfg}
}

// ListCollections returns a page of the caller's collections, newest first by default.
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	opts, err := listOptions(c, core.CollectionSort)
	if err != nil {
		_ = c.Error(err)
		return
	}
	collections, err := h.Svc.ListCollections(c.Request.Context(), middleware.CallerFrom(c), opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyCollections: collections})
}

// CreateCollection accepts JSON or a multipart form with an optional "image" file.
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var in service.CollectionInput
	if !bindBody(c, &in) {
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	collection, err := h.Svc.CreateCollection(c.Request.Context(), middleware.CallerFrom(c), in, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, models.KeyCollection: collection})
}

// GetCollection returns one collection.
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	collection, err := h.Svc.GetCollection(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyCollection: collection})
}

// UpdateCollection applies the whitelisted fields and an optional new image.
func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in service.CollectionInput
	if !bindBody(c, &in) {
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	collection, err := h.Svc.UpdateCollection(c.Request.Context(), middleware.CallerFrom(c), id, in, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyCollection: collection})
}

// UploadImage replaces the collection image.
func (h *CollectionHandler) UploadImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	collection, err := h.Svc.SetCollectionImage(c.Request.Context(), middleware.CallerFrom(c), id, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyCollection: collection})
}

// DeleteCollection removes the collection with its items and events.
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Svc.DeleteCollection(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Collection deleted successfully"})
}
