package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/models"
	"github.com/irwanphan/tunggu.online/store"
)

// SiteGuard is the ownership lookup the guard runs against.
type SiteGuard interface {
	GetSiteForOwner(ctx context.Context, siteID string, ownerID int) (*models.Site, error)
}

// RequireSiteOwnership refuses any aggregation request whose siteId the
// authenticated user does not own. A site owned by someone else and a site
// that does not exist produce the same response, so the guard never reveals
// which of the two it was.
func RequireSiteOwnership(sites SiteGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		siteID := c.Query("siteId")
		if siteID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "siteId query parameter is required"})
			return
		}

		userID := c.GetInt("user_id")
		site, err := sites.GetSiteForOwner(c.Request.Context(), siteID, userID)
		if err != nil {
			if errors.Is(err, store.ErrSiteNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Site not found"})
				return
			}
			log.Error().Err(err).Str("site_id", siteID).Msg("Ownership check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify site ownership"})
			return
		}

		c.Set("site", site)
		c.Next()
	}
}
