package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/gamassss/brevly/internal/logger"
	"github.com/gamassss/brevly/internal/normalize"
	"github.com/gamassss/brevly/pkg/validator"
	"github.com/google/uuid"
)

type ShortenedLinkRepository interface {
	Create(ctx context.Context, link *domain.ShortenedLink) error
	GetByID(ctx context.Context, id string) (*domain.ShortenedLink, error)
	GetByShortenedURL(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error)
	IncrementVisits(ctx context.Context, id string, at time.Time) (*domain.ShortenedLink, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q domain.ListQuery) ([]domain.ShortenedLink, int64, error)
	ListAll(ctx context.Context) ([]domain.ShortenedLink, error)
}

type ReachabilityChecker interface {
	IsReachable(ctx context.Context, targetURL string) bool
}

type ShortenerService struct {
	repo    ShortenedLinkRepository
	checker ReachabilityChecker
	clock   domain.Clock
}

func NewShortenerService(repo ShortenedLinkRepository, checker ReachabilityChecker, clock domain.Clock) *ShortenerService {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &ShortenerService{
		repo:    repo,
		checker: checker,
		clock:   clock,
	}
}

func (s *ShortenerService) CreateShortenedLink(ctx context.Context, req *domain.CreateShortenedLinkRequest) (*domain.CreatedShortenedLink, error) {
	if errs := validator.Validate(req); len(errs) > 0 {
		return nil, domain.NewValidationError(validator.Messages(errs))
	}

	now := s.clock.Now()
	link := &domain.ShortenedLink{
		ID:           uuid.NewString(),
		URL:          normalize.URL(req.URL),
		ShortenedURL: req.ShortenedURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, link); err != nil {
		if errors.Is(err, domain.ErrAliasExists) {
			return nil, domain.NewConflictError()
		}
		return nil, s.unknown(ctx, "failed to create shortened link", err)
	}

	logger.FromContext(ctx).Info("Shortened link created",
		"id", link.ID,
		"shortened_url", link.ShortenedURL,
	)

	return &domain.CreatedShortenedLink{
		ID:           link.ID,
		URL:          link.URL,
		ShortenedURL: link.ShortenedURL,
		CreatedAt:    link.CreatedAt,
	}, nil
}

func (s *ShortenerService) GetShortenedLinkByID(ctx context.Context, id string) (*domain.ShortenedLink, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError()
		}
		return nil, s.unknown(ctx, "failed to get shortened link", err)
	}

	return link, nil
}

// ResolveShortenedLink looks up a link by alias and, only when its target
// responds, records one visit. An unreachable target leaves the record
// untouched. A link deleted between the check and the increment resolves as
// not found.
func (s *ShortenerService) ResolveShortenedLink(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error) {
	if errs := validator.Validate(&domain.ResolveShortenedLinkRequest{ShortenedURL: shortenedURL}); len(errs) > 0 {
		return nil, domain.NewValidationError(validator.Messages(errs))
	}

	link, err := s.repo.GetByShortenedURL(ctx, shortenedURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError()
		}
		return nil, s.unknown(ctx, "failed to get shortened link", err)
	}

	if !s.checker.IsReachable(ctx, link.URL) {
		return nil, domain.NewUnreachableError()
	}

	at := s.clock.Now()
	if at.Before(link.CreatedAt) {
		at = link.CreatedAt
	}

	updated, err := s.repo.IncrementVisits(ctx, link.ID, at)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError()
		}
		return nil, s.unknown(ctx, "failed to record visit", err)
	}

	return updated, nil
}

func (s *ShortenerService) ListShortenedLinks(ctx context.Context, req *domain.ListShortenedLinksRequest) (*domain.ShortenedLinkPage, error) {
	page := req.Page
	if page < 1 {
		page = domain.DefaultPage
	}

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	// keeps (page-1)*pageSize from overflowing into a negative offset
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}

	links, total, err := s.repo.List(ctx, domain.ListQuery{
		Search:        req.SearchQuery,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	})
	if err != nil {
		return nil, s.unknown(ctx, "failed to list shortened links", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.ShortenedLinkPage{
		ShortenedLinks: links,
		Total:          total,
		Page:           page,
		PageSize:       pageSize,
		TotalPages:     totalPages,
	}, nil
}

func (s *ShortenerService) DeleteShortenedLink(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError()
		}
		return s.unknown(ctx, "failed to delete shortened link", err)
	}

	logger.FromContext(ctx).Info("Shortened link deleted", "id", id)

	return nil
}

func (s *ShortenerService) unknown(ctx context.Context, message string, err error) error {
	logger.FromContext(ctx).Error(message, "error", err)
	return domain.NewUnknownError(message, err)
}

func validateID(id string) error {
	if errs := validator.Validate(&domain.ShortenedLinkIDRequest{ID: id}); len(errs) > 0 {
		return domain.NewValidationError(validator.Messages(errs))
	}
	return nil
}
