package models_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/irwanphan/tunggu.online/models"
)

func TestTrackPayloadUnmarshal(t *testing.T) {
	Convey("Given an event submission payload", t, func() {
		Convey("Known fields land on the struct", func() {
			body := `{"siteId":"s1","type":"pageview","url":"/home","referrer":"https://google.com","userAgent":"UA","screenWidth":1920,"screenHeight":1080}`
			var p models.TrackPayload
			So(json.Unmarshal([]byte(body), &p), ShouldBeNil)
			So(p.SiteID, ShouldEqual, "s1")
			So(p.Type, ShouldEqual, "pageview")
			So(p.URL, ShouldEqual, "/home")
			So(p.Referrer, ShouldEqual, "https://google.com")
			So(p.UserAgent, ShouldEqual, "UA")
			So(p.ScreenWidth, ShouldEqual, 1920)
			So(p.ScreenHeight, ShouldEqual, 1080)
			So(p.Extra, ShouldBeEmpty)
		})

		Convey("A nested data object is flattened into the extra bag", func() {
			body := `{"siteId":"s1","type":"click","data":{"x":10,"y":20,"element":"button"}}`
			var p models.TrackPayload
			So(json.Unmarshal([]byte(body), &p), ShouldBeNil)
			So(string(p.Extra["x"]), ShouldEqual, "10")
			So(string(p.Extra["y"]), ShouldEqual, "20")
			So(string(p.Extra["element"]), ShouldEqual, `"button"`)
		})

		Convey("Extraneous top-level fields are kept, not dropped", func() {
			body := `{"siteId":"s1","type":"pageview","timestamp":"2026-08-01T00:00:00Z","campaign":"summer"}`
			var p models.TrackPayload
			So(json.Unmarshal([]byte(body), &p), ShouldBeNil)
			So(string(p.Extra["timestamp"]), ShouldEqual, `"2026-08-01T00:00:00Z"`)
			So(string(p.Extra["campaign"]), ShouldEqual, `"summer"`)
		})

		Convey("EncodeExtra round-trips the bag as JSON", func() {
			body := `{"siteId":"s1","type":"scroll","data":{"scrollDepth":75}}`
			var p models.TrackPayload
			So(json.Unmarshal([]byte(body), &p), ShouldBeNil)

			encoded, err := p.EncodeExtra()
			So(err, ShouldBeNil)

			var bag map[string]int
			So(json.Unmarshal([]byte(encoded), &bag), ShouldBeNil)
			So(bag["scrollDepth"], ShouldEqual, 75)
		})

		Convey("An empty bag encodes to the empty string", func() {
			var p models.TrackPayload
			So(json.Unmarshal([]byte(`{"siteId":"s1","type":"pageview"}`), &p), ShouldBeNil)

			encoded, err := p.EncodeExtra()
			So(err, ShouldBeNil)
			So(encoded, ShouldBeEmpty)
		})
	})
}

func TestDecodeExtra(t *testing.T) {
	Convey("Given the per-type extra payload variants", t, func() {
		Convey("Click events decode into ClickPayload", func() {
			decoded, err := models.DecodeExtra(models.EventTypeClick, json.RawMessage(`{"x":10,"y":20,"element":"a","text":"Home"}`))
			So(err, ShouldBeNil)

			p, ok := decoded.(models.ClickPayload)
			So(ok, ShouldBeTrue)
			So(p.X, ShouldEqual, 10)
			So(p.Y, ShouldEqual, 20)
			So(p.Element, ShouldEqual, "a")
			So(p.Text, ShouldEqual, "Home")
		})

		Convey("Scroll events decode into ScrollPayload", func() {
			decoded, err := models.DecodeExtra(models.EventTypeScroll, json.RawMessage(`{"scrollDepth":80}`))
			So(err, ShouldBeNil)

			p, ok := decoded.(models.ScrollPayload)
			So(ok, ShouldBeTrue)
			So(p.ScrollDepth, ShouldEqual, 80)
		})

		Convey("Unknown event types fall back to a generic map", func() {
			decoded, err := models.DecodeExtra("video_play", json.RawMessage(`{"position":12.5}`))
			So(err, ShouldBeNil)

			m, ok := decoded.(map[string]any)
			So(ok, ShouldBeTrue)
			So(m["position"], ShouldEqual, 12.5)
		})

		Convey("A missing bag decodes to nil without error", func() {
			decoded, err := models.DecodeExtra(models.EventTypeClick, nil)
			So(err, ShouldBeNil)
			So(decoded, ShouldBeNil)

			decoded, err = models.DecodeExtra(models.EventTypeClick, json.RawMessage("null"))
			So(err, ShouldBeNil)
			So(decoded, ShouldBeNil)
		})
	})
}
