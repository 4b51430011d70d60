// handlers/analytics_handlers.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/models"
)

// Aggregations are computed over a trailing window ending at query time.
const windowDays = 30

// EventStats is the read side of the event store. Every method is a pure
// snapshot read; none of them share state with another.
type EventStats interface {
	TypeCounts(ctx context.Context, siteID string, since time.Time) (models.TypeCounts, error)
	DailyStats(ctx context.Context, siteID string, since time.Time) ([]models.DailyStat, error)
	TopPages(ctx context.Context, siteID string, since time.Time) ([]models.TopPage, error)
	DeviceStats(ctx context.Context, siteID string, since time.Time) ([]models.DeviceStat, error)
	ClickPoints(ctx context.Context, siteID, url string, since time.Time) ([]models.ClickPoint, error)
	ClickedURLs(ctx context.Context, siteID string, since time.Time) ([]string, error)
}

type AnalyticsHandlers struct {
	Events EventStats
	Now    func() time.Time
}

func NewAnalyticsHandlers(events EventStats) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		Events: events,
		Now:    time.Now,
	}
}

// windowStart recomputes the window boundary on every call; results for the
// same query made moments apart may differ at the boundary edge.
func (h *AnalyticsHandlers) windowStart() time.Time {
	return h.Now().UTC().AddDate(0, 0, -windowDays)
}

// GetAnalytics returns the aggregate bundle for one owned site: totals by
// type, daily series, top pages, and device distribution. A site with zero
// events yields zero counts and empty lists.
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	siteID := c.Query("siteId")
	since := h.windowStart()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	counts, err := h.Events.TypeCounts(ctx, siteID, since)
	if err != nil {
		log.Error().Err(err).Str("site_id", siteID).Msg("Error getting event counts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	daily, err := h.Events.DailyStats(ctx, siteID, since)
	if err != nil {
		log.Error().Err(err).Str("site_id", siteID).Msg("Error getting daily stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	topPages, err := h.Events.TopPages(ctx, siteID, since)
	if err != nil {
		log.Error().Err(err).Str("site_id", siteID).Msg("Error getting top pages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	devices, err := h.Events.DeviceStats(ctx, siteID, since)
	if err != nil {
		log.Error().Err(err).Str("site_id", siteID).Msg("Error getting device stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	summary := models.AnalyticsSummary{
		Pageviews:   counts.Pageviews,
		Clicks:      counts.Clicks,
		Scrolls:     counts.Scrolls,
		TopPages:    topPages,
		DailyStats:  daily,
		DeviceStats: devices,
	}
	if summary.TopPages == nil {
		summary.TopPages = []models.TopPage{}
	}
	if summary.DailyStats == nil {
		summary.DailyStats = []models.DailyStat{}
	}
	if summary.DeviceStats == nil {
		summary.DeviceStats = []models.DeviceStat{}
	}

	c.JSON(http.StatusOK, summary)
}

// GetHeatmapClicks returns the click coordinate payloads for one owned site,
// most recent first. An optional url query narrows the result to one page.
func (h *AnalyticsHandlers) GetHeatmapClicks(c *gin.Context) {
	siteID := c.Query("siteId")
	url := c.Query("url")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	points, err := h.Events.ClickPoints(ctx, siteID, url, h.windowStart())
	if err != nil {
		log.Error().Err(err).Str("site_id", siteID).Msg("Error getting click points")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve click data"})
		return
	}
	if points == nil {
		points = []models.ClickPoint{}
	}

	c.JSON(http.StatusOK, points)
}

// GetHeatmapURLs returns the distinct clicked URLs for the page selector.
func (h *AnalyticsHandlers) GetHeatmapURLs(c *gin.Context) {
	siteID := c.Query("siteId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	urls, err := h.Events.ClickedURLs(ctx, siteID, h.windowStart())
	if err != nil {
		log.Error().Err(err).Str("site_id", siteID).Msg("Error getting clicked urls")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve url list"})
		return
	}
	if urls == nil {
		urls = []string{}
	}

	c.JSON(http.StatusOK, urls)
}
