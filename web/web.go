// Package web serves the embedded collector script. The script is plain
// browser JavaScript; it self-configures from the embedding tag's
// data-site-id attribute.
package web

import (
	_ "embed"

	"github.com/gin-gonic/gin"
)

//go:embed tracker.js
var trackerJS []byte

// Tracker returns the collector script bytes.
func Tracker() []byte {
	return trackerJS
}

// ServeTracker is the gin handler for GET /tracker.js.
func ServeTracker(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(200, "application/javascript; charset=utf-8", trackerJS)
}
