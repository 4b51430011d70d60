package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/irwanphan/tunggu.online/middleware"
)

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORSMiddleware("http://dashboard.example"))
	r.POST("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/sites", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORSMiddleware(t *testing.T) {
	Convey("Given the CORS middleware", t, func() {
		r := corsRouter()

		Convey("The ingestion endpoint is open to any origin without credentials", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events", nil))

			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			So(w.Header().Get("Access-Control-Allow-Credentials"), ShouldBeEmpty)
		})

		Convey("Dashboard endpoints are limited to the configured origin", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sites", nil))

			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://dashboard.example")
			So(w.Header().Get("Access-Control-Allow-Credentials"), ShouldEqual, "true")
		})

		Convey("Preflight requests are answered even for unregistered routes", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/events", nil))

			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})
	})
}
