package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/Sachin1yadav/aitrendpromt/pkg/config"
)

// Client wraps the native ClickHouse connection used by the analytics
// event store.
type Client struct {
	Conn clickhouse.Conn
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.ClickHouse.Host == "" || cfg.ClickHouse.Name == "" {
		return nil, fmt.Errorf("clickhouse host and database name are required")
	}

	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.ClickHouse.Host, cfg.ClickHouse.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouse.Name,
			Username: cfg.ClickHouse.User,
			Password: cfg.ClickHouse.Password,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "aitrendpromt-api", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{Conn: conn}, nil
}

// EnsureSchema creates the analytics event table when it does not exist.
// The table is append-only; there is no update or delete path.
func (c *Client) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS analytics_events (
			event_id           UUID,
			event_type         LowCardinality(String),
			page               String,
			referrer           Nullable(String),
			user_agent         String,
			ip_address         String,
			session_id         String,
			timestamp          DateTime('UTC'),
			prompt_slug        String,
			prompt_title       String,
			prompt_category    String,
			button_name        String,
			button_location    String,
			instagram_location String,
			search_query       String,
			filter_type        String,
			filter_value       String,
			action_type        String,
			resource_type      String,
			page_name          String
		)
		ENGINE = MergeTree
		ORDER BY (event_type, timestamp)
	`
	if err := c.Conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create analytics_events table: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.Conn != nil {
		return c.Conn.Close()
	}
	return nil
}
