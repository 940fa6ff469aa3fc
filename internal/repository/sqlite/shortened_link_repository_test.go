package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestRepository(t *testing.T) *ShortenedLinkRepository {
	repo, err := NewShortenedLinkRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func newLink(alias, url string, createdAt time.Time) *domain.ShortenedLink {
	return &domain.ShortenedLink{
		ID:           uuid.NewString(),
		URL:          url,
		ShortenedURL: alias,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func seed(t *testing.T, repo *ShortenedLinkRepository, count int) []*domain.ShortenedLink {
	links := make([]*domain.ShortenedLink, 0, count)
	for i := 0; i < count; i++ {
		link := newLink(fmt.Sprintf("link%d", i), fmt.Sprintf("https://example.com/%d", i), baseTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(context.Background(), link))
		links = append(links, link)
	}
	return links
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	link := newLink("google123", "https://www.google.com", baseTime)
	require.NoError(t, repo.Create(ctx, link))

	byID, err := repo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "google123", byID.ShortenedURL)
	assert.Equal(t, "https://www.google.com", byID.URL)
	assert.Equal(t, int64(0), byID.Visits)
	assert.True(t, baseTime.Equal(byID.CreatedAt))

	byAlias, err := repo.GetByShortenedURL(ctx, "google123")
	require.NoError(t, err)
	assert.Equal(t, link.ID, byAlias.ID)
}

func TestRepository_Create_DuplicateAlias(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newLink("dup", "https://a.com", baseTime)))

	err := repo.Create(ctx, newLink("dup", "https://b.com", baseTime))

	assert.ErrorIs(t, err, domain.ErrAliasExists)
}

func TestRepository_Create_SameURLDifferentAliases(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, newLink("one", "https://a.com", baseTime)))
	assert.NoError(t, repo.Create(ctx, newLink("two", "https://a.com", baseTime)))
}

func TestRepository_NotFound(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByShortenedURL(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.IncrementVisits(ctx, uuid.NewString(), baseTime)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), domain.ErrNotFound)
}

func TestRepository_IncrementVisits(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	link := newLink("visits", "https://a.com", baseTime)
	require.NoError(t, repo.Create(ctx, link))

	later := baseTime.Add(time.Hour)
	updated, err := repo.IncrementVisits(ctx, link.ID, later)
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.Visits)
	assert.True(t, later.Equal(updated.UpdatedAt))
	assert.True(t, baseTime.Equal(updated.CreatedAt))
}

func TestRepository_IncrementVisits_Concurrent(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	link := newLink("hot", "https://a.com", baseTime)
	require.NoError(t, repo.Create(ctx, link))

	const n = 50
	var wg sync.WaitGroup
	errChan := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementVisits(ctx, link.ID, baseTime.Add(time.Second))
			errChan <- err
		}()
	}
	wg.Wait()
	close(errChan)

	for err := range errChan {
		assert.NoError(t, err)
	}

	result, err := repo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), result.Visits)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	link := newLink("gone", "https://a.com", baseTime)
	require.NoError(t, repo.Create(ctx, link))

	require.NoError(t, repo.Delete(ctx, link.ID))
	assert.ErrorIs(t, repo.Delete(ctx, link.ID), domain.ErrNotFound)

	_, err := repo.GetByID(ctx, link.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_List_Pagination(t *testing.T) {
	repo := setupTestRepository(t)
	links := seed(t, repo, 5)

	page, total, err := repo.List(context.Background(), domain.ListQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	// newest first: link4, link3, link2, link1, link0
	assert.Equal(t, links[2].ShortenedURL, page[0].ShortenedURL)
	assert.Equal(t, links[1].ShortenedURL, page[1].ShortenedURL)
}

func TestRepository_List_Sort(t *testing.T) {
	repo := setupTestRepository(t)
	links := seed(t, repo, 3)
	ctx := context.Background()

	_, err := repo.IncrementVisits(ctx, links[0].ID, baseTime.Add(time.Hour))
	require.NoError(t, err)

	page, _, err := repo.List(ctx, domain.ListQuery{SortBy: "visits", SortDirection: "desc", Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "link0", page[0].ShortenedURL)

	page, _, err = repo.List(ctx, domain.ListQuery{SortBy: "createdAt", SortDirection: "asc", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"link0", "link1", "link2"}, aliases(page))
}

func TestRepository_List_Search(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newLink("Docs", "https://golang.org/doc", baseTime)))
	require.NoError(t, repo.Create(ctx, newLink("news", "https://News.example.com", baseTime.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newLink("other", "https://example.org/50%_off", baseTime.Add(2*time.Minute))))

	page, total, err := repo.List(ctx, domain.ListQuery{Search: "NEWS", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"news"}, aliases(page))

	page, total, err = repo.List(ctx, domain.ListQuery{Search: "doc", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Docs"}, aliases(page))

	_, total, err = repo.List(ctx, domain.ListQuery{Search: "%_", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	page, total, err = repo.List(ctx, domain.ListQuery{Search: "nothing-matches", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, page)
}

func TestRepository_List_SearchFoldsUnicodeCase(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newLink("berlin", "https://example.com/ÜBER-STRASSE", baseTime)))
	require.NoError(t, repo.Create(ctx, newLink("paris", "https://example.com/école", baseTime.Add(time.Minute))))

	page, total, err := repo.List(ctx, domain.ListQuery{Search: "über", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"berlin"}, aliases(page))

	page, total, err = repo.List(ctx, domain.ListQuery{Search: "ÉCOLE", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"paris"}, aliases(page))
}

func TestRepository_ListAll(t *testing.T) {
	repo := setupTestRepository(t)
	seed(t, repo, 3)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"link2", "link1", "link0"}, aliases(all))
}

func TestRepository_Ping(t *testing.T) {
	repo := setupTestRepository(t)

	assert.NoError(t, repo.Ping(context.Background()))
}

func aliases(links []domain.ShortenedLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.ShortenedURL)
	}
	return out
}
