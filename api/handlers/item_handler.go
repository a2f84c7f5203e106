// api/handlers/item_handler.go
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

// ItemHandler serves items, both nested under a collection and by id.
type ItemHandler struct {
	Svc *service.Service
	Cfg *config.Config
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.Service, cfg *config.Config) *ItemHandler {
	return &ItemHandler{Svc: svc, Cfg: cfg}
}

// ListItems returns a page of the items in collection :id.
func (h *ItemHandler) ListItems(c *gin.Context) {
	collectionID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	opts, err := listOptions(c, core.ItemSort)
	if err != nil {
		_ = c.Error(err)
		return
	}
	items, err := h.Svc.ListItems(c.Request.Context(), middleware.CallerFrom(c), collectionID, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyItems: items})
}

// CreateItem adds an item to collection :id.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	collectionID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in service.ItemInput
	if !bindBody(c, &in) {
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.Svc.CreateItem(c.Request.Context(), middleware.CallerFrom(c), collectionID, in, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, models.KeyItem: item})
}

// GetItem returns one item.
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := h.Svc.GetItem(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyItem: item})
}

// UpdateItem applies the whitelisted fields; collection_id moves the item.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in service.ItemInput
	if !bindBody(c, &in) {
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.Svc.UpdateItem(c.Request.Context(), middleware.CallerFrom(c), id, in, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyItem: item})
}

// RateItem sets or clears the rating.
func (h *ItemHandler) RateItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	rating, ok := bindRating(c)
	if !ok {
		return
	}
	item, err := h.Svc.RateItem(c.Request.Context(), middleware.CallerFrom(c), id, rating)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyItem: item})
}

// UploadImage replaces the item image.
func (h *ItemHandler) UploadImage(c *gin.Context) {
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
	item, err := h.Svc.SetItemImage(c.Request.Context(), middleware.CallerFrom(c), id, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyItem: item})
}

// DeleteItem removes one item.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Svc.DeleteItem(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted successfully"})
}
