package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/config"
)

type ClickHouseClient struct {
	Conn clickhouse.Conn
}

// NewClickHouseDB connects to the event store over the native TCP protocol
// and makes sure the events table exists.
func NewClickHouseDB(cfg config.ClickHouseConfig) (*ClickHouseClient, error) {
	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "tunggu-api", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: time.Second * 5,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse via Native TCP: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	if err := ensureEventsTable(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	log.Info().Msg("Connected to ClickHouse database via Native TCP")
	return &ClickHouseClient{Conn: conn}, nil
}

// Events are append-only; the table is never updated or deleted from.
func ensureEventsTable(ctx context.Context, conn clickhouse.Conn) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS events (
			id            String,
			site_id       String,
			type          LowCardinality(String),
			url           String,
			referrer      String,
			user_agent    String,
			ip_address    String,
			screen_width  Int32,
			screen_height Int32,
			extra         String,
			created_at    DateTime('UTC')
		)
		ENGINE = MergeTree()
		ORDER BY (site_id, created_at)
	`
	if err := conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure events table: %w", err)
	}
	return nil
}

func (c *ClickHouseClient) Close() {
	if c.Conn != nil {
		c.Conn.Close()
		log.Info().Msg("ClickHouse connection closed")
	}
}
