package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/joestump/biolink/internal/store"
	"github.com/joestump/biolink/internal/testutil"
)

func newClickEnv(t *testing.T) (*store.ClickStore, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	user, err := store.NewUserStore(db).Create(ctx, "alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	link, err := store.NewLinkStore(db).Create(ctx, user.ID, "clicky", "https://a.test", 0)
	if err != nil {
		t.Fatalf("seed link: %v", err)
	}
	return store.NewClickStore(db), link.ID
}

func TestClickStore_RecordAndStats(t *testing.T) {
	cs, linkID := newClickEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := cs.RecordClick(ctx, store.ClickEvent{
			LinkID:    linkID,
			IPHash:    store.HashIP("203.0.113.7"),
			UserAgent: "test-agent",
			Referrer:  "https://ref.test",
		})
		if err != nil {
			t.Fatalf("RecordClick: %v", err)
		}
	}

	stats, err := cs.GetClickStats(ctx, linkID)
	if err != nil {
		t.Fatalf("GetClickStats: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	// All clicks just happened, so they fall inside both windows.
	if stats.Last7d != 3 {
		t.Errorf("Last7d = %d, want 3", stats.Last7d)
	}
	if stats.Last30d != 3 {
		t.Errorf("Last30d = %d, want 3", stats.Last30d)
	}
}

func TestClickStore_Stats_Empty(t *testing.T) {
	cs, linkID := newClickEnv(t)

	stats, err := cs.GetClickStats(context.Background(), linkID)
	if err != nil {
		t.Fatalf("GetClickStats: %v", err)
	}
	if stats.Total != 0 || stats.Last7d != 0 || stats.Last30d != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}

func TestClickStore_RecordClick_TruncatesLongFields(t *testing.T) {
	cs, linkID := newClickEnv(t)

	err := cs.RecordClick(context.Background(), store.ClickEvent{
		LinkID:    linkID,
		IPHash:    store.HashIP("203.0.113.7"),
		UserAgent: strings.Repeat("u", 10000),
		Referrer:  strings.Repeat("r", 10000),
	})
	if err != nil {
		t.Fatalf("RecordClick with oversized fields: %v", err)
	}
}

func TestHashIP(t *testing.T) {
	a := store.HashIP("203.0.113.7")
	b := store.HashIP("203.0.113.7")
	c := store.HashIP("203.0.113.8")

	if a != b {
		t.Errorf("same IP hashed differently within one day: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different IPs produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if a == "203.0.113.7" || strings.Contains(a, "203.0.113.7") {
		t.Error("hash leaks the raw IP")
	}
}
