// handlers/event_handlers.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/models"
)

// EventWriter appends one immutable event record.
type EventWriter interface {
	InsertEvent(ctx context.Context, event models.Event) error
}

// SiteDirectory answers whether a site id is known.
type SiteDirectory interface {
	SiteExists(ctx context.Context, siteID string) (bool, error)
}

type EventHandlers struct {
	Events EventWriter
	Sites  SiteDirectory
	Now    func() time.Time
}

func NewEventHandlers(events EventWriter, sites SiteDirectory) *EventHandlers {
	return &EventHandlers{
		Events: events,
		Sites:  sites,
		Now:    time.Now,
	}
}

// TrackEvent ingests a single collector event. createdAt is assigned here,
// never taken from the payload; a client-sent timestamp survives only as
// advisory data inside the extra bag.
func (h *EventHandlers) TrackEvent(c *gin.Context) {
	var payload models.TrackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Debug().Err(err).Msg("Error binding incoming event JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if payload.SiteID == "" || payload.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Sites.SiteExists(ctx, payload.SiteID)
	if err != nil {
		log.Error().Err(err).Str("site_id", payload.SiteID).Msg("Error checking site existence")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	extra, err := payload.EncodeExtra()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event := models.Event{
		ID:           uuid.New().String(),
		SiteID:       payload.SiteID,
		Type:         payload.Type,
		URL:          payload.URL,
		Referrer:     payload.Referrer,
		UserAgent:    payload.UserAgent,
		IPAddress:    c.ClientIP(),
		ScreenWidth:  payload.ScreenWidth,
		ScreenHeight: payload.ScreenHeight,
		CreatedAt:    h.Now().UTC(),
	}
	if extra != "" {
		event.Extra = []byte(extra)
	}

	if decoded, err := models.DecodeExtra(event.Type, event.Extra); err == nil && decoded != nil {
		log.Debug().Str("type", event.Type).Interface("payload", decoded).Msg("Decoded event payload")
	}

	if err := h.Events.InsertEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("Error inserting event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "eventId": event.ID})
}
