package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportShortenedLinksCSV_Empty(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("ListAll", ctx).Return([]domain.ShortenedLink{}, nil).Once()

	csv, err := service.ExportShortenedLinksCSV(ctx)

	require.NoError(t, err)
	assert.Equal(t, "ID,URL,Shortened URL,Visits,Created At,Updated At", csv)
	assert.Len(t, strings.Split(csv, "\n"), 1)
}

func TestExportShortenedLinksCSV_Rows(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	links := []domain.ShortenedLink{
		{
			ID:           validID,
			URL:          `https://example.com/?q="quoted"`,
			ShortenedURL: "quoted",
			Visits:       0,
			CreatedAt:    fixedNow,
			UpdatedAt:    fixedNow,
		},
	}
	repo.On("ListAll", ctx).Return(links, nil).Once()

	csv, err := service.ExportShortenedLinksCSV(ctx)
	require.NoError(t, err)

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		validID+`,"https://example.com/?q=""quoted""",quoted,0,2025-03-01T12:00:00.000Z,2025-03-01T12:00:00.000Z`,
		lines[1])
	assert.Contains(t, lines[1], ",0,")
}

func TestExportShortenedLinksCSV_StoreError(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("ListAll", ctx).Return(nil, errors.New("timeout")).Once()

	_, err := service.ExportShortenedLinksCSV(ctx)

	assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
}
