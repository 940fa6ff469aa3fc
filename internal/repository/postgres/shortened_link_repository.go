package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/gamassss/brevly/internal/repository"
	"github.com/gamassss/brevly/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const aliasConstraint = "shortened_links_shortened_url_unique"

const selectColumns = `id, url, shortened_url, visits, created_at, updated_at`

type ShortenedLinkRepository struct {
	db *pgxpool.Pool
}

func NewShortenedLinkRepository(db *pgxpool.Pool) *ShortenedLinkRepository {
	return &ShortenedLinkRepository{db: db}
}

// Migrate applies the embedded schema. Every script is idempotent.
func (r *ShortenedLinkRepository) Migrate(ctx context.Context) error {
	scripts, err := migrations.Up()
	if err != nil {
		return err
	}

	for _, script := range scripts {
		if _, err := r.db.Exec(ctx, script); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return nil
}

func (r *ShortenedLinkRepository) Create(ctx context.Context, link *domain.ShortenedLink) error {
	query := `
		INSERT INTO shortened_links (id, url, shortened_url, visits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		link.ID,
		link.URL,
		link.ShortenedURL,
		link.Visits,
		link.CreatedAt,
		link.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == aliasConstraint {
			return domain.ErrAliasExists
		}
		return err
	}

	return nil
}

func (r *ShortenedLinkRepository) GetByID(ctx context.Context, id string) (*domain.ShortenedLink, error) {
	query := `SELECT ` + selectColumns + ` FROM shortened_links WHERE id = $1`

	return scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *ShortenedLinkRepository) GetByShortenedURL(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error) {
	query := `SELECT ` + selectColumns + ` FROM shortened_links WHERE shortened_url = $1`

	return scanOne(r.db.QueryRow(ctx, query, shortenedURL))
}

// IncrementVisits bumps the counter inside the UPDATE so concurrent
// resolutions never lose an increment.
func (r *ShortenedLinkRepository) IncrementVisits(ctx context.Context, id string, at time.Time) (*domain.ShortenedLink, error) {
	query := `
		UPDATE shortened_links
		SET visits = visits + 1, updated_at = $2
		WHERE id = $1
		RETURNING ` + selectColumns

	return scanOne(r.db.QueryRow(ctx, query, id, at))
}

func (r *ShortenedLinkRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shortened_links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShortenedLinkRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.ShortenedLink, int64, error) {
	where := ""
	args := []interface{}{}
	if q.Search != "" {
		where = `WHERE url ILIKE $1 ESCAPE '\' OR shortened_url ILIKE $1 ESCAPE '\'`
		args = append(args, repository.LikePattern(q.Search))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(id) FROM shortened_links `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM shortened_links %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectColumns, where, repository.OrderBy(q), len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.Query(ctx, query, args...)
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
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM shortened_links ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}

	return scanAll(rows)
}

func (r *ShortenedLinkRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *ShortenedLinkRepository) Close() {
	r.db.Close()
}

func scanLink(row pgx.Row) (*domain.ShortenedLink, error) {
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

func scanOne(row pgx.Row) (*domain.ShortenedLink, error) {
	link, err := scanLink(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return link, err
}

func scanAll(rows pgx.Rows) ([]domain.ShortenedLink, error) {
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
