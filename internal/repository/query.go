// Package repository holds helpers shared by the record store implementations.
package repository

import (
	"strings"

	"github.com/gamassss/brevly/internal/domain"
)

var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"url":          "url",
	"shortenedUrl": "shortened_url",
	"visits":       "visits",
}

// OrderBy returns the ORDER BY clause for q. Unknown or partial sort
// options fall back to newest first. Ties break on id for stable pages.
func OrderBy(q domain.ListQuery) string {
	column, ok := sortColumns[q.SortBy]
	direction := strings.ToUpper(q.SortDirection)

	if !ok || (direction != "ASC" && direction != "DESC") {
		return "created_at DESC, id ASC"
	}

	return column + " " + direction + ", id ASC"
}

// LikePattern wraps search in wildcards, escaping LIKE metacharacters with
// a backslash so the query matches as a literal substring.
func LikePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}
