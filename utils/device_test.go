package utils_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/irwanphan/tunggu.online/utils"
)

func TestClassifyDevice(t *testing.T) {
	Convey("Given the device classification heuristic", t, func() {
		Convey("iPhone user agents classify as Mobile", func() {
			ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
			So(utils.ClassifyDevice(ua), ShouldEqual, utils.DeviceMobile)
		})

		Convey("Android phone user agents classify as Mobile", func() {
			ua := "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36"
			So(utils.ClassifyDevice(ua), ShouldEqual, utils.DeviceMobile)
		})

		Convey("iPad user agents classify as Tablet", func() {
			ua := "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/604.1"
			So(utils.ClassifyDevice(ua), ShouldEqual, utils.DeviceTablet)
		})

		Convey("A user agent containing both iPad and Mobile is Tablet", func() {
			// Real iPad Safari UAs carry a Mobile token; tablet rules win.
			ua := "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
			So(utils.ClassifyDevice(ua), ShouldEqual, utils.DeviceTablet)
		})

		Convey("Android tablet user agents classify as Tablet", func() {
			ua := "Mozilla/5.0 (Linux; Android 13; SM-X710 Tablet) AppleWebKit/537.36"
			So(utils.ClassifyDevice(ua), ShouldEqual, utils.DeviceTablet)
		})

		Convey("Desktop user agents classify as Desktop", func() {
			ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
			So(utils.ClassifyDevice(ua), ShouldEqual, utils.DeviceDesktop)
		})

		Convey("An empty user agent classifies as Desktop", func() {
			So(utils.ClassifyDevice(""), ShouldEqual, utils.DeviceDesktop)
		})
	})
}
