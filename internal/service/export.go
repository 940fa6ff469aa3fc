package service

import (
	"context"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"ID", "URL", "Shortened URL", "Visits", "Created At", "Updated At"}

const csvTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ExportShortenedLinksCSV renders every link, newest first. The URL column
// is always quoted; the header row is present even with no links.
func (s *ShortenerService) ExportShortenedLinksCSV(ctx context.Context) (string, error) {
	links, err := s.repo.ListAll(ctx)
	if err != nil {
		return "", s.unknown(ctx, "failed to export shortened links", err)
	}

	lines := make([]string, 0, len(links)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, link := range links {
		lines = append(lines, strings.Join([]string{
			link.ID,
			`"` + strings.ReplaceAll(link.URL, `"`, `""`) + `"`,
			link.ShortenedURL,
			strconv.FormatInt(link.Visits, 10),
			formatCSVTime(link.CreatedAt),
			formatCSVTime(link.UpdatedAt),
		}, ","))
	}

	return strings.Join(lines, "\n"), nil
}

func formatCSVTime(t time.Time) string {
	return t.UTC().Format(csvTimeFormat)
}
