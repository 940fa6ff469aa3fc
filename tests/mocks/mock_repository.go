package mocks

import (
	"context"
	"time"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShortenedLinkRepository struct {
	mock.Mock
}

func (m *MockShortenedLinkRepository) Create(ctx context.Context, link *domain.ShortenedLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockShortenedLinkRepository) GetByID(ctx context.Context, id string) (*domain.ShortenedLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortenedLink), args.Error(1)
}

func (m *MockShortenedLinkRepository) GetByShortenedURL(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error) {
	args := m.Called(ctx, shortenedURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortenedLink), args.Error(1)
}

func (m *MockShortenedLinkRepository) IncrementVisits(ctx context.Context, id string, at time.Time) (*domain.ShortenedLink, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortenedLink), args.Error(1)
}

func (m *MockShortenedLinkRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShortenedLinkRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.ShortenedLink, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ShortenedLink), args.Get(1).(int64), args.Error(2)
}

func (m *MockShortenedLinkRepository) ListAll(ctx context.Context) ([]domain.ShortenedLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShortenedLink), args.Error(1)
}

type MockReachabilityChecker struct {
	mock.Mock
}

func (m *MockReachabilityChecker) IsReachable(ctx context.Context, targetURL string) bool {
	args := m.Called(ctx, targetURL)
	return args.Bool(0)
}
