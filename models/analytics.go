package models

import (
	"encoding/json"
	"time"
)

// TypeCounts holds the per-type totals for one site within the query window.
type TypeCounts struct {
	Pageviews uint64 `json:"pageviews"`
	Clicks    uint64 `json:"clicks"`
	Scrolls   uint64 `json:"scrolls"`
}

type TopPage struct {
	URL   string `json:"url"`
	Count uint64 `json:"count"`
}

type DailyStat struct {
	Date      string `json:"date"`
	Pageviews uint64 `json:"pageviews"`
	Clicks    uint64 `json:"clicks"`
}

type DeviceStat struct {
	Device string `json:"device"`
	Count  uint64 `json:"count"`
}

// UACount is a raw user-agent string and how many pageviews carried it.
type UACount struct {
	UserAgent string
	Count     uint64
}

// AnalyticsSummary is the aggregate bundle the dashboard fetches.
type AnalyticsSummary struct {
	Pageviews   uint64       `json:"pageviews"`
	Clicks      uint64       `json:"clicks"`
	Scrolls     uint64       `json:"scrolls"`
	TopPages    []TopPage    `json:"topPages"`
	DailyStats  []DailyStat  `json:"dailyStats"`
	DeviceStats []DeviceStat `json:"deviceStats"`
}

// ClickPoint is one click event's coordinate payload for heatmap rendering.
type ClickPoint struct {
	Extra     json.RawMessage `json:"extra"`
	URL       string          `json:"url,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
