package mocks

import (
	"context"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShortenerService struct {
	mock.Mock
}

func (m *MockShortenerService) CreateShortenedLink(ctx context.Context, req *domain.CreateShortenedLinkRequest) (*domain.CreatedShortenedLink, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatedShortenedLink), args.Error(1)
}

func (m *MockShortenerService) GetShortenedLinkByID(ctx context.Context, id string) (*domain.ShortenedLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortenedLink), args.Error(1)
}

func (m *MockShortenerService) ResolveShortenedLink(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error) {
	args := m.Called(ctx, shortenedURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortenedLink), args.Error(1)
}

func (m *MockShortenerService) ListShortenedLinks(ctx context.Context, req *domain.ListShortenedLinksRequest) (*domain.ShortenedLinkPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortenedLinkPage), args.Error(1)
}

func (m *MockShortenerService) DeleteShortenedLink(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShortenerService) ExportShortenedLinksCSV(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
