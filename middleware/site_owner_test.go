package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/irwanphan/tunggu.online/middleware"
	"github.com/irwanphan/tunggu.online/models"
	"github.com/irwanphan/tunggu.online/store"
)

type fakeSiteGuard struct {
	// ownership maps siteID to the owning user id.
	ownership map[string]int
	err       error
}

func (f *fakeSiteGuard) GetSiteForOwner(_ context.Context, siteID string, ownerID int) (*models.Site, error) {
	if f.err != nil {
		return nil, f.err
	}
	owner, exists := f.ownership[siteID]
	if !exists || owner != ownerID {
		return nil, store.ErrSiteNotFound
	}
	return &models.Site{ID: siteID, OwnerID: ownerID}, nil
}

func guardRouter(guard *fakeSiteGuard, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.Use(middleware.RequireSiteOwnership(guard))
	r.GET("/stats", func(c *gin.Context) {
		site := c.MustGet("site").(*models.Site)
		c.JSON(http.StatusOK, gin.H{"siteId": site.ID})
	})
	return r
}

func TestRequireSiteOwnership(t *testing.T) {
	Convey("Given the ownership guard", t, func() {
		guard := &fakeSiteGuard{ownership: map[string]int{"site-a": 1, "site-b": 2}}

		Convey("An owner reaches the protected operation", func() {
			r := guardRouter(guard, 1)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats?siteId=site-a", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "site-a")
		})

		Convey("A site owned by another identity is refused", func() {
			r := guardRouter(guard, 1)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats?siteId=site-b", nil))

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A nonexistent site is indistinguishable from an unowned one", func() {
			r := guardRouter(guard, 1)

			wMissing := httptest.NewRecorder()
			r.ServeHTTP(wMissing, httptest.NewRequest(http.MethodGet, "/stats?siteId=ghost", nil))

			wUnowned := httptest.NewRecorder()
			r.ServeHTTP(wUnowned, httptest.NewRequest(http.MethodGet, "/stats?siteId=site-b", nil))

			So(wMissing.Code, ShouldEqual, http.StatusNotFound)
			So(wUnowned.Code, ShouldEqual, http.StatusNotFound)

			var bodyMissing, bodyUnowned map[string]string
			So(json.Unmarshal(wMissing.Body.Bytes(), &bodyMissing), ShouldBeNil)
			So(json.Unmarshal(wUnowned.Body.Bytes(), &bodyUnowned), ShouldBeNil)
			So(bodyMissing, ShouldResemble, bodyUnowned)
		})

		Convey("A missing siteId parameter is a client fault", func() {
			r := guardRouter(guard, 1)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A store failure is a server error, never partial data", func() {
			guard.err = errors.New("postgres down")
			r := guardRouter(guard, 1)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats?siteId=site-a", nil))

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
