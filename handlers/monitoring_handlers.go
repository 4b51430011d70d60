// handlers/monitoring_handlers.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irwanphan/tunggu.online/monitoring"
)

type MonitoringHandlers struct {
	Checker *monitoring.Checker
}

func NewMonitoringHandlers(checker *monitoring.Checker) *MonitoringHandlers {
	return &MonitoringHandlers{Checker: checker}
}

// GetMonitoring checks every configured government site and returns the
// availability snapshot. Checks run per request; there is no cached state.
func (h *MonitoringHandlers) GetMonitoring(c *gin.Context) {
	results := h.Checker.CheckAll(c.Request.Context())
	online, offline := monitoring.Summarize(results)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"summary": gin.H{
			"total":   len(results),
			"online":  online,
			"offline": offline,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
