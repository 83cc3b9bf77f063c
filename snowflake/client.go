// Package snowflake implements the pipeline's document sources against
// a live Snowflake connection through database/sql and the gosnowflake
// driver.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/snowflakedb/gosnowflake"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/logging"
)

// Client wraps a database/sql handle opened with the gosnowflake
// driver. It implements pipeline.SpecSource and
// pipeline.DefinitionSource.
type Client struct {
	db  *sql.DB
	log logging.Logger
}

// Open connects to Snowflake with a gosnowflake DSN
// (user:pass@account/db/schema?warehouse=WH&role=ROLE). log may be nil.
func Open(dsn string, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.Nop{}
	}
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening snowflake connection: %w", err)
	}
	return &Client{db: db, log: log}, nil
}

// NewClient wraps an existing handle; useful for tests and callers
// that manage their own pool.
func NewClient(db *sql.DB, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop{}
	}
	return &Client{db: db, log: log}
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection is usable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// queryScalar runs a single-row single-column query and returns the
// value, or ok=false when the result is empty or NULL.
func (c *Client) queryScalar(ctx context.Context, query string) (string, bool, error) {
	var v sql.NullString
	err := c.db.QueryRowContext(ctx, query).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !v.Valid || v.String == "" {
		return "", false, nil
	}
	return v.String, true, nil
}
