// store/event_store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/database"
	"github.com/irwanphan/tunggu.online/models"
	"github.com/irwanphan/tunggu.online/utils"
)

// Result caps for the aggregation queries.
const (
	MaxDailyStats  = 30
	MaxTopPages    = 10
	MaxDeviceUAs   = 5
	MaxClickPoints = 1000
)

// EventStore reads and appends events in ClickHouse. Events are never
// mutated or deleted; every aggregation is a self-contained snapshot read.
type EventStore struct {
	DB *database.ClickHouseClient
}

func NewEventStore(chClient *database.ClickHouseClient) *EventStore {
	return &EventStore{
		DB: chClient,
	}
}

// InsertEvent appends exactly one event row.
func (s *EventStore) InsertEvent(ctx context.Context, event models.Event) error {
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO events (
			id, site_id, type, url, referrer, user_agent, ip_address,
			screen_width, screen_height, extra, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}

	extra := ""
	if len(event.Extra) > 0 {
		extra = string(event.Extra)
	}

	err = batch.Append(
		event.ID,
		event.SiteID,
		event.Type,
		event.URL,
		event.Referrer,
		event.UserAgent,
		event.IPAddress,
		event.ScreenWidth,
		event.ScreenHeight,
		extra,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append event %s: %w", event.ID, err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// TypeCounts returns the pageview/click/scroll totals for a site since the
// given instant. Other event types still exist in the store but are not part
// of this rollup.
func (s *EventStore) TypeCounts(ctx context.Context, siteID string, since time.Time) (models.TypeCounts, error) {
	query := `
		SELECT type, count() AS total
		FROM events
		WHERE site_id = ? AND created_at >= ? AND type IN ('pageview', 'click', 'scroll')
		GROUP BY type
	`
	rows, err := s.DB.Conn.Query(ctx, query, siteID, since)
	if err != nil {
		return models.TypeCounts{}, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()

	var counts models.TypeCounts
	for rows.Next() {
		var eventType string
		var total uint64
		if err := rows.Scan(&eventType, &total); err != nil {
			log.Error().Err(err).Msg("Error scanning row for event counts")
			continue
		}
		switch eventType {
		case models.EventTypePageview:
			counts.Pageviews = total
		case models.EventTypeClick:
			counts.Clicks = total
		case models.EventTypeScroll:
			counts.Scrolls = total
		}
	}

	if err := rows.Err(); err != nil {
		return models.TypeCounts{}, fmt.Errorf("row error during event counts query: %w", err)
	}
	return counts, nil
}

// DailyStats returns per-day pageview and click counts for the most recent
// days in the window, chronologically ascending. Days are UTC calendar days
// of the ingestion timestamp.
func (s *EventStore) DailyStats(ctx context.Context, siteID string, since time.Time) ([]models.DailyStat, error) {
	query := `
		SELECT
			toDate(created_at) AS day,
			countIf(type = 'pageview') AS pageviews,
			countIf(type = 'click') AS clicks
		FROM events
		WHERE site_id = ? AND created_at >= ?
		GROUP BY day
		ORDER BY day DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, siteID, since, uint64(MaxDailyStats))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var results []models.DailyStat
	for rows.Next() {
		var day time.Time
		var pageviews, clicks uint64
		if err := rows.Scan(&day, &pageviews, &clicks); err != nil {
			log.Error().Err(err).Msg("Error scanning row for daily stats")
			continue
		}
		results = append(results, models.DailyStat{
			Date:      day.Format("2006-01-02"),
			Pageviews: pageviews,
			Clicks:    clicks,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for daily stats: %w", err)
	}

	return ascendingDaily(results), nil
}

// TopPages returns the most viewed URLs within the window, descending by
// pageview count. Events without a URL are excluded.
func (s *EventStore) TopPages(ctx context.Context, siteID string, since time.Time) ([]models.TopPage, error) {
	query := `
		SELECT url, count() AS views
		FROM events
		WHERE site_id = ? AND type = 'pageview' AND created_at >= ? AND url != ''
		GROUP BY url
		ORDER BY views DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, siteID, since, uint64(MaxTopPages))
	if err != nil {
		return nil, fmt.Errorf("failed to query top pages: %w", err)
	}
	defer rows.Close()

	var results []models.TopPage
	for rows.Next() {
		var url string
		var views uint64
		if err := rows.Scan(&url, &views); err != nil {
			log.Error().Err(err).Msg("Error scanning row for top pages")
			continue
		}
		results = append(results, models.TopPage{URL: url, Count: views})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top pages: %w", err)
	}
	return results, nil
}

// DeviceStats classifies the most frequent raw user-agent strings of the
// window's pageviews and sums their counts per device class. Only the top
// five UA strings are sampled, which bounds the query regardless of traffic.
func (s *EventStore) DeviceStats(ctx context.Context, siteID string, since time.Time) ([]models.DeviceStat, error) {
	query := `
		SELECT user_agent, count() AS total
		FROM events
		WHERE site_id = ? AND type = 'pageview' AND created_at >= ?
		GROUP BY user_agent
		ORDER BY total DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, siteID, since, uint64(MaxDeviceUAs))
	if err != nil {
		return nil, fmt.Errorf("failed to query device stats: %w", err)
	}
	defer rows.Close()

	var uas []models.UACount
	for rows.Next() {
		var ua string
		var total uint64
		if err := rows.Scan(&ua, &total); err != nil {
			log.Error().Err(err).Msg("Error scanning row for device stats")
			continue
		}
		uas = append(uas, models.UACount{UserAgent: ua, Count: total})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for device stats: %w", err)
	}
	return summarizeDevices(uas), nil
}

// ClickPoints returns click coordinate payloads for heatmap rendering,
// most recent first. url narrows the result to one page when non-empty.
func (s *EventStore) ClickPoints(ctx context.Context, siteID, url string, since time.Time) ([]models.ClickPoint, error) {
	query := `
		SELECT extra, url, created_at
		FROM events
		WHERE site_id = ? AND type = 'click' AND created_at >= ?
	`
	args := []interface{}{siteID, since}
	if url != "" {
		query += ` AND url = ?`
		args = append(args, url)
	}
	query += `
		ORDER BY created_at DESC
		LIMIT ?
	`
	args = append(args, uint64(MaxClickPoints))

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query click points: %w", err)
	}
	defer rows.Close()

	var results []models.ClickPoint
	for rows.Next() {
		var extra, pointURL string
		var createdAt time.Time
		if err := rows.Scan(&extra, &pointURL, &createdAt); err != nil {
			log.Error().Err(err).Msg("Error scanning row for click points")
			continue
		}
		results = append(results, models.ClickPoint{
			Extra:     rawExtra(extra),
			URL:       pointURL,
			CreatedAt: createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for click points: %w", err)
	}
	return results, nil
}

// ClickedURLs lists the distinct URLs that received at least one click in
// the window, sorted alphabetically.
func (s *EventStore) ClickedURLs(ctx context.Context, siteID string, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT url
		FROM events
		WHERE site_id = ? AND type = 'click' AND created_at >= ? AND url != ''
		ORDER BY url ASC
	`
	rows, err := s.DB.Conn.Query(ctx, query, siteID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicked urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			log.Error().Err(err).Msg("Error scanning row for clicked urls")
			continue
		}
		urls = append(urls, url)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for clicked urls: %w", err)
	}
	return urls, nil
}

// ascendingDaily flips rows fetched newest-first into chronological order,
// keeping at most the most recent MaxDailyStats days.
func ascendingDaily(rows []models.DailyStat) []models.DailyStat {
	if len(rows) > MaxDailyStats {
		rows = rows[:MaxDailyStats]
	}
	out := make([]models.DailyStat, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = row
	}
	return out
}

// summarizeDevices classifies each sampled user-agent string and sums the
// counts per device class, preserving first-encountered order.
func summarizeDevices(uas []models.UACount) []models.DeviceStat {
	var stats []models.DeviceStat
	for _, ua := range uas {
		device := utils.ClassifyDevice(ua.UserAgent)
		found := false
		for i := range stats {
			if stats[i].Device == device {
				stats[i].Count += ua.Count
				found = true
				break
			}
		}
		if !found {
			stats = append(stats, models.DeviceStat{Device: device, Count: ua.Count})
		}
	}
	return stats
}

func rawExtra(extra string) json.RawMessage {
	if extra == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(extra)
}
