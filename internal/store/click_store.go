package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ClickEvent represents a single redirect to be recorded.
type ClickEvent struct {
	LinkID    string
	IPHash    string // caller computes this
	UserAgent string
	Referrer  string
}

// ClickStats holds aggregate click counts for a link.
type ClickStats struct {
	Total   int64
	Last7d  int64
	Last30d int64
}

// ClickStore is the sqlx-backed store for per-click event rows. The
// authoritative counter lives on the links table; these rows only feed the
// stats endpoint.
type ClickStore struct {
	db *sqlx.DB
}

func NewClickStore(db *sqlx.DB) *ClickStore {
	return &ClickStore{db: db}
}

// q rebinds ? placeholders to the driver's native format.
func (s *ClickStore) q(query string) string { return s.db.Rebind(query) }

// RecordClick inserts a click event row.
func (s *ClickStore) RecordClick(ctx context.Context, e ClickEvent) error {
	id := uuid.New().String()
	now := time.Now().UTC()

	// Truncate user_agent to 512 chars, referrer to 2048.
	ua := e.UserAgent
	if len(ua) > 512 {
		ua = ua[:512]
	}
	ref := e.Referrer
	if len(ref) > 2048 {
		ref = ref[:2048]
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO link_clicks (id, link_id, ip_hash, user_agent, referrer, clicked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), id, e.LinkID, e.IPHash, ua, ref, now)
	return err
}

// GetClickStats returns total, 7d, and 30d click counts for a link.
func (s *ClickStore) GetClickStats(ctx context.Context, linkID string) (ClickStats, error) {
	var stats ClickStats
	now := time.Now().UTC()
	since7d := now.AddDate(0, 0, -7)
	since30d := now.AddDate(0, 0, -30)

	err := s.db.GetContext(ctx, &stats.Total,
		s.q(`SELECT COUNT(*) FROM link_clicks WHERE link_id = ?`), linkID)
	if err != nil {
		return stats, err
	}

	err = s.db.GetContext(ctx, &stats.Last7d,
		s.q(`SELECT COUNT(*) FROM link_clicks WHERE link_id = ? AND clicked_at >= ?`), linkID, since7d)
	if err != nil {
		return stats, err
	}

	err = s.db.GetContext(ctx, &stats.Last30d,
		s.q(`SELECT COUNT(*) FROM link_clicks WHERE link_id = ? AND clicked_at >= ?`), linkID, since30d)
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// HashIP computes SHA-256(ip + ":" + YYYYMMDD_UTC) for the current day, so
// raw addresses are never stored and hashes cannot be joined across days.
func HashIP(ip string) string {
	salt := time.Now().UTC().Format("20060102")
	h := sha256.Sum256([]byte(ip + ":" + salt))
	return fmt.Sprintf("%x", h)
}
