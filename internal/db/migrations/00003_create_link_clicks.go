package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateLinkClicks, downCreateLinkClicks)
}

func upCreateLinkClicks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS link_clicks (
    id         TEXT PRIMARY KEY,
    link_id    TEXT NOT NULL REFERENCES links(id) ON DELETE CASCADE,
    ip_hash    TEXT NOT NULL,
    user_agent TEXT NOT NULL,
    referrer   TEXT NOT NULL,
    clicked_at TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS link_clicks (
    id         VARCHAR(36) PRIMARY KEY,
    link_id    VARCHAR(36) NOT NULL,
    ip_hash    VARCHAR(64) NOT NULL,
    user_agent VARCHAR(512) NOT NULL,
    referrer   TEXT NOT NULL,
    clicked_at TIMESTAMP(6) NOT NULL,
    FOREIGN KEY (link_id) REFERENCES links(id) ON DELETE CASCADE
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS link_clicks (
    id         TEXT PRIMARY KEY,
    link_id    TEXT NOT NULL REFERENCES links(id) ON DELETE CASCADE,
    ip_hash    TEXT NOT NULL,
    user_agent TEXT NOT NULL,
    referrer   TEXT NOT NULL,
    clicked_at TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create link_clicks table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS link_clicks_link_idx ON link_clicks (link_id, clicked_at)`)
	return err
}

func downCreateLinkClicks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS link_clicks`)
	return err
}
