// handlers/site_handlers.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/models"
	"github.com/irwanphan/tunggu.online/store"
)

type SiteHandlers struct {
	SiteStore *store.SiteStore
}

func NewSiteHandlers(siteStore *store.SiteStore) *SiteHandlers {
	return &SiteHandlers{SiteStore: siteStore}
}

// ListSites returns the authenticated user's sites, newest first.
func (h *SiteHandlers) ListSites(c *gin.Context) {
	userID := c.GetInt("user_id")

	sites, err := h.SiteStore.ListSitesByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Error listing sites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sites"})
		return
	}
	if sites == nil {
		sites = []models.Site{}
	}

	c.JSON(http.StatusOK, sites)
}

// CreateSite registers a new tracked site for the authenticated user.
func (h *SiteHandlers) CreateSite(c *gin.Context) {
	var req models.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := c.GetInt("user_id")
	site, err := h.SiteStore.CreateSite(c.Request.Context(), req.Name, req.Domain, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Error creating site")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create site"})
		return
	}

	c.JSON(http.StatusCreated, site)
}
