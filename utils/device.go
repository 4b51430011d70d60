package utils

import "strings"

// Device classes produced by ClassifyDevice.
const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
)

// Tablet markers are checked before mobile markers: real iPad user agents
// also contain "Mobile", and tablets must win that overlap.
var (
	tabletMarkers = []string{"Tablet", "iPad"}
	mobileMarkers = []string{"Mobile", "Android", "iPhone"}
)

// ClassifyDevice maps a raw user-agent string onto one device class using
// substring heuristics. Empty or unrecognized user agents are Desktop.
func ClassifyDevice(ua string) string {
	if containsAny(ua, tabletMarkers) {
		return DeviceTablet
	}
	if containsAny(ua, mobileMarkers) {
		return DeviceMobile
	}
	return DeviceDesktop
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
