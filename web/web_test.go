package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/irwanphan/tunggu.online/web"
)

func TestTracker(t *testing.T) {
	Convey("Given the embedded collector script", t, func() {
		script := string(web.Tracker())

		Convey("It configures itself from the embedding tag", func() {
			So(script, ShouldContainSubstring, "data-site-id")
		})

		Convey("It submits to the ingestion endpoint", func() {
			So(script, ShouldContainSubstring, "/api/events")
		})

		Convey("It debounces scroll emissions", func() {
			So(script, ShouldContainSubstring, "scrollDepth")
			So(script, ShouldContainSubstring, "1000")
		})

		Convey("Serving it sets the script content type", func() {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.GET("/tracker.js", web.ServeTracker)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tracker.js", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/javascript")
			So(w.Body.String(), ShouldEqual, script)
		})
	})
}
