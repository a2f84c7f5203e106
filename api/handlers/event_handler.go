// api/handlers/event_handler.go
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

// EventHandler serves events, both nested under a collection and by id.
type EventHandler struct {
	Svc *service.Service
	Cfg *config.Config
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.Service, cfg *config.Config) *EventHandler {
	return &EventHandler{Svc: svc, Cfg: cfg}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	collectionID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	opts, err := listOptions(c, core.EventSort)
	if err != nil {
		_ = c.Error(err)
		return
	}
	events, err := h.Svc.ListEvents(c.Request.Context(), middleware.CallerFrom(c), collectionID, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyEvents: events})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	collectionID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in service.EventInput
	if !bindBody(c, &in) {
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.Svc.CreateEvent(c.Request.Context(), middleware.CallerFrom(c), collectionID, in, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, models.KeyEvent: event})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	event, err := h.Svc.GetEvent(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyEvent: event})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in service.EventInput
	if !bindBody(c, &in) {
		return
	}
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.Svc.UpdateEvent(c.Request.Context(), middleware.CallerFrom(c), id, in, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyEvent: event})
}

// RateEvent sets or clears the rating. Only events that already took place can be rated.
func (h *EventHandler) RateEvent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	rating, ok := bindRating(c)
	if !ok {
		return
	}
	event, err := h.Svc.RateEvent(c.Request.Context(), middleware.CallerFrom(c), id, rating)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyEvent: event})
}

func (h *EventHandler) UploadImage(c *gin.Context) {
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
	event, err := h.Svc.SetEventImage(c.Request.Context(), middleware.CallerFrom(c), id, img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyEvent: event})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Svc.DeleteEvent(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully"})
}
