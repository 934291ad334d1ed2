package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Link represents a row in the links table. Position drives display order on
// the public profile; ClickCount is the authoritative redirect counter.
type Link struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Title      string    `db:"title"`
	URL        string    `db:"url"`
	Position   int       `db:"position"`
	ClickCount int64     `db:"click_count"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// PublicLink is the safe projection of a Link for unauthenticated profile
// views. It deliberately excludes the owner id.
type PublicLink struct {
	ID         string `db:"id"`
	Title      string `db:"title"`
	URL        string `db:"url"`
	Position   int    `db:"position"`
	ClickCount int64  `db:"click_count"`
}

// LinkPatch carries a partial update. Nil fields are left unchanged.
type LinkPatch struct {
	Title    *string
	URL      *string
	Position *int
}

// IsEmpty reports whether the patch specifies no fields at all.
func (p LinkPatch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Position == nil
}

// LinkStore is the sqlx-backed store for link rows. Every mutating operation
// takes the owner id and bakes it into the SQL predicate; a row owned by
// another user behaves exactly like a missing row.
type LinkStore struct {
	db *sqlx.DB
}

func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format.
func (s *LinkStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new link owned by ownerID.
func (s *LinkStore) Create(ctx context.Context, ownerID, title, url string, position int) (*Link, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO links (id, user_id, title, url, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, ownerID, title, url, position, now, now)
	if err != nil {
		return nil, err
	}

	return s.GetOwned(ctx, id, ownerID)
}

// GetOwned returns the link matching id and owner, or ErrNotFound.
func (s *LinkStore) GetOwned(ctx context.Context, id, ownerID string) (*Link, error) {
	var l Link
	err := s.db.GetContext(ctx, &l, s.q(`SELECT * FROM links WHERE id = ? AND user_id = ?`), id, ownerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByOwner returns all links owned by ownerID, ordered by position
// ascending with creation time as the tiebreaker.
func (s *LinkStore) ListByOwner(ctx context.Context, ownerID string) ([]*Link, error) {
	var links []*Link
	err := s.db.SelectContext(ctx, &links, s.q(`
		SELECT * FROM links
		WHERE user_id = ?
		ORDER BY position ASC, created_at ASC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ListPublicByOwner returns the public projection of a user's links in
// display order.
func (s *LinkStore) ListPublicByOwner(ctx context.Context, ownerID string) ([]PublicLink, error) {
	var links []PublicLink
	err := s.db.SelectContext(ctx, &links, s.q(`
		SELECT id, title, url, position, click_count FROM links
		WHERE user_id = ?
		ORDER BY position ASC, created_at ASC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateOwned applies a partial update to the link matching id and owner.
// Unset patch fields keep their current value via COALESCE, so the merge
// happens in a single statement. Returns ErrNotFound when the row is absent
// or owned by someone else.
func (s *LinkStore) UpdateOwned(ctx context.Context, id, ownerID string, patch LinkPatch) (*Link, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE links SET
			title = COALESCE(?, title),
			url = COALESCE(?, url),
			position = COALESCE(?, position),
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`), patch.Title, patch.URL, patch.Position, now, id, ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetOwned(ctx, id, ownerID)
}

// DeleteOwned removes the link matching id and owner. Returns ErrNotFound
// when the row is absent or owned by someone else.
func (s *LinkStore) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM links WHERE id = ? AND user_id = ?`), id, ownerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Click atomically increments the click counter and returns the target URL in
// one statement, so concurrent clicks on the same link never lose updates.
// Returns ErrNotFound when the link does not exist.
//
// TODO: RETURNING works on SQLite (3.35+) and PostgreSQL but not MySQL; MySQL
// needs a transaction with SELECT ... FOR UPDATE instead.
func (s *LinkStore) Click(ctx context.Context, id string) (string, error) {
	var url string
	err := s.db.QueryRowContext(ctx, s.q(`
		UPDATE links SET click_count = click_count + 1 WHERE id = ? RETURNING url
	`), id).Scan(&url)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return url, nil
}
