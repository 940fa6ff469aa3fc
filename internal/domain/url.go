package domain

import "time"

type ShortenedLink struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	ShortenedURL string    `json:"shortenedUrl"`
	Visits       int64     `json:"visits"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateShortenedLinkRequest struct {
	URL          string `json:"url" validate:"required,url,max=2048"`
	ShortenedURL string `json:"shortenedUrl" validate:"required,min=1,max=50,alias"`
}

// CreatedShortenedLink is the body returned by the create operation.
type CreatedShortenedLink struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	ShortenedURL string    `json:"shortenedUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ShortenedLinkIDRequest struct {
	ID string `validate:"required,uuid"`
}

type ResolveShortenedLinkRequest struct {
	ShortenedURL string `validate:"required,min=1,alias"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListShortenedLinksRequest struct {
	SearchQuery   string `form:"searchQuery"`
	SortBy        string `form:"sortBy" binding:"omitempty,oneof=createdAt url shortenedUrl visits"`
	SortDirection string `form:"sortDirection" binding:"omitempty,oneof=asc desc"`
	Page          int    `form:"page"`
	PageSize      int    `form:"pageSize"`
}

// ListQuery is the store-level form of a list request after defaults apply.
type ListQuery struct {
	Search        string
	SortBy        string
	SortDirection string
	Limit         int
	Offset        int
}

type ShortenedLinkPage struct {
	ShortenedLinks []ShortenedLink `json:"shortenedLinks"`
	Total          int64           `json:"total"`
	Page           int             `json:"page"`
	PageSize       int             `json:"pageSize"`
	TotalPages     int             `json:"totalPages"`
}
