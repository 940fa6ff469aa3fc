// Package sqlite is an embedded record store backed by modernc.org/sqlite.
// A ":memory:" path gives an isolated store, which the tests rely on.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/gamassss/brevly/internal/repository"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS shortened_links (
	id            TEXT PRIMARY KEY,
	url           TEXT NOT NULL,
	shortened_url TEXT NOT NULL UNIQUE,
	visits        INTEGER NOT NULL DEFAULT 0 CHECK (visits >= 0),
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shortened_links_created_at ON shortened_links (created_at DESC);
`

const selectColumns = `id, url, shortened_url, visits, created_at, updated_at`

// SQLite's own LIKE and lower() fold ASCII only. casefold lowers with Go's
// Unicode tables so search matches non-ASCII text the way postgres ILIKE does.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefold)
}

func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

type ShortenedLinkRepository struct {
	db *sql.DB
}

func NewShortenedLinkRepository(path string) (*ShortenedLinkRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A single connection serializes writers and keeps ":memory:" databases
	// from splitting across connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return &ShortenedLinkRepository{db: db}, nil
}

func (r *ShortenedLinkRepository) Create(ctx context.Context, link *domain.ShortenedLink) error {
	query := `
		INSERT INTO shortened_links (id, url, shortened_url, visits, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.URL,
		link.ShortenedURL,
		link.Visits,
		link.CreatedAt.UTC(),
		link.UpdatedAt.UTC(),
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return domain.ErrAliasExists
		}
		return err
	}

	return nil
}

func (r *ShortenedLinkRepository) GetByID(ctx context.Context, id string) (*domain.ShortenedLink, error) {
	query := `SELECT ` + selectColumns + ` FROM shortened_links WHERE id = ?`

	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *ShortenedLinkRepository) GetByShortenedURL(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error) {
	query := `SELECT ` + selectColumns + ` FROM shortened_links WHERE shortened_url = ?`

	return scanOne(r.db.QueryRowContext(ctx, query, shortenedURL))
}

// IncrementVisits runs the counter bump and the read back in one
// transaction. The increment itself is evaluated by sqlite.
func (r *ShortenedLinkRepository) IncrementVisits(ctx context.Context, id string, at time.Time) (*domain.ShortenedLink, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE shortened_links SET visits = visits + 1, updated_at = ? WHERE id = ?`,
		at.UTC(), id,
	)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	link, err := scanOne(tx.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM shortened_links WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return link, nil
}

func (r *ShortenedLinkRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shortened_links WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShortenedLinkRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.ShortenedLink, int64, error) {
	where := ""
	args := []interface{}{}
	if q.Search != "" {
		pattern := repository.LikePattern(strings.ToLower(q.Search))
		where = `WHERE casefold(url) LIKE ? ESCAPE '\' OR casefold(shortened_url) LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM shortened_links `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM shortened_links %s ORDER BY %s LIMIT ? OFFSET ?`,
		selectColumns, where, repository.OrderBy(q))
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	links, err := scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	return links, total, nil
}

func (r *ShortenedLinkRepository) ListAll(ctx context.Context) ([]domain.ShortenedLink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM shortened_links ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}

	return scanAll(rows)
}

func (r *ShortenedLinkRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ShortenedLinkRepository) Close() {
	r.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLink(row scanner) (*domain.ShortenedLink, error) {
	var link domain.ShortenedLink

	err := row.Scan(
		&link.ID,
		&link.URL,
		&link.ShortenedURL,
		&link.Visits,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	link.CreatedAt = link.CreatedAt.UTC()
	link.UpdatedAt = link.UpdatedAt.UTC()

	return &link, nil
}

func scanOne(row *sql.Row) (*domain.ShortenedLink, error) {
	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return link, err
}

func scanAll(rows *sql.Rows) ([]domain.ShortenedLink, error) {
	defer rows.Close()

	links := []domain.ShortenedLink{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}

	return links, rows.Err()
}
