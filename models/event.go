// models/event.go
package models

import (
	"encoding/json"
	"time"
)

// Event types the aggregation rollups know about. Ingestion accepts any
// non-empty type string; unknown types are stored as opaque categories.
const (
	EventTypePageview = "pageview"
	EventTypeClick    = "click"
	EventTypeScroll   = "scroll"
)

// Event is one immutable record of a user interaction on a tracked site.
// createdAt is assigned at write time; client clocks are never trusted.
type Event struct {
	ID           string          `json:"id"`
	SiteID       string          `json:"siteId"`
	Type         string          `json:"type"`
	URL          string          `json:"url,omitempty"`
	Referrer     string          `json:"referrer,omitempty"`
	UserAgent    string          `json:"userAgent,omitempty"`
	IPAddress    string          `json:"ipAddress,omitempty"`
	ScreenWidth  int32           `json:"screenWidth,omitempty"`
	ScreenHeight int32           `json:"screenHeight,omitempty"`
	Extra        json.RawMessage `json:"extra,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ClickPayload is the extra bag carried by click events. Coordinates are
// relative to the clicked element's bounding box.
type ClickPayload struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Element string `json:"element,omitempty"`
	Text    string `json:"text,omitempty"`
}

// ScrollPayload is the extra bag carried by scroll events.
type ScrollPayload struct {
	ScrollDepth int `json:"scrollDepth"`
}

// DecodeExtra interprets an event's extra bag as the payload variant for its
// type. Unrecognized types decode into a generic map. A missing bag returns
// nil without error.
func DecodeExtra(eventType string, extra json.RawMessage) (any, error) {
	if len(extra) == 0 || string(extra) == "null" {
		return nil, nil
	}

	switch eventType {
	case EventTypeClick:
		var p ClickPayload
		if err := json.Unmarshal(extra, &p); err != nil {
			return nil, err
		}
		return p, nil
	case EventTypeScroll:
		var p ScrollPayload
		if err := json.Unmarshal(extra, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		var m map[string]any
		if err := json.Unmarshal(extra, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// TrackPayload is the wire shape of an event submission. Fields other than
// the known ones are kept under Extra rather than dropped; a nested "data"
// object is flattened into Extra as well.
type TrackPayload struct {
	SiteID       string
	Type         string
	URL          string
	Referrer     string
	UserAgent    string
	ScreenWidth  int32
	ScreenHeight int32
	Extra        map[string]json.RawMessage
}

func (p *TrackPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(v, dst)
	}

	if err := take("siteId", &p.SiteID); err != nil {
		return err
	}
	if err := take("type", &p.Type); err != nil {
		return err
	}
	if err := take("url", &p.URL); err != nil {
		return err
	}
	if err := take("referrer", &p.Referrer); err != nil {
		return err
	}
	if err := take("userAgent", &p.UserAgent); err != nil {
		return err
	}
	if err := take("screenWidth", &p.ScreenWidth); err != nil {
		return err
	}
	if err := take("screenHeight", &p.ScreenHeight); err != nil {
		return err
	}

	if v, ok := raw["data"]; ok {
		delete(raw, "data")
		var bag map[string]json.RawMessage
		if err := json.Unmarshal(v, &bag); err != nil {
			return err
		}
		for k, val := range bag {
			raw[k] = val
		}
	}

	// Whatever is left (the client "timestamp" included) is advisory data.
	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

// EncodeExtra serializes the leftover attribute bag for storage. Returns an
// empty string when there is nothing to store.
func (p *TrackPayload) EncodeExtra() (string, error) {
	if len(p.Extra) == 0 {
		return "", nil
	}
	b, err := json.Marshal(p.Extra)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
