// Package reachability verifies that a stored target URL currently responds.
package reachability

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gamassss/brevly/internal/logger"
)

const DefaultTimeout = 5 * time.Second

const userAgent = "brevly-reachability/1.0"

// Doer is the subset of *http.Client the checker needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Checker struct {
	client  Doer
	timeout time.Duration
}

func NewChecker(client Doer, timeout time.Duration) *Checker {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{client: client, timeout: timeout}
}

// IsReachable issues a HEAD request and falls back to a single GET only when
// HEAD fails at the transport level. Any HEAD response, including 405, is
// final. A 2xx or 3xx status counts as reachable. Each attempt is bounded by the checker
// timeout and by ctx.
func (c *Checker) IsReachable(ctx context.Context, targetURL string) bool {
	log := logger.FromContext(ctx)

	status, err := c.attempt(ctx, http.MethodHead, targetURL)
	if err == nil {
		return isSuccess(status)
	}
	log.Debug("HEAD reachability attempt failed, falling back to GET",
		"url", targetURL,
		"error", err,
	)

	status, err = c.attempt(ctx, http.MethodGet, targetURL)
	if err != nil {
		log.Warn("Target URL is unreachable",
			"url", targetURL,
			"error", err,
		)
		return false
	}

	return isSuccess(status)
}

func (c *Checker) attempt(ctx context.Context, method, targetURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 400
}
