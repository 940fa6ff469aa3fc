// Package normalize canonicalizes target URLs before they are stored.
package normalize

import (
	"net"
	"net/url"
	"sort"
	"strings"
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// URL returns the canonical form of rawURL. Non-root paths lose their
// trailing slashes, query parameters are sorted by key, and a bare root
// path is dropped from the serialized form. Inputs that do not parse as an
// absolute URL are returned unchanged.
func URL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return rawURL
	}

	u.Host = canonicalHost(u.Scheme, u.Host)

	if u.Opaque == "" {
		normalizePath(u)
	}

	if u.RawQuery != "" {
		u.RawQuery = sortQuery(u.RawQuery)
	}
	if u.RawQuery == "" {
		u.ForceQuery = false
	}

	normalized := u.String()
	if u.EscapedPath() == "/" && u.RawQuery == "" && u.Fragment == "" {
		normalized = strings.TrimSuffix(normalized, "/")
	}

	return normalized
}

func canonicalHost(scheme, host string) string {
	host = strings.ToLower(host)

	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if defaultPorts[scheme] == port {
		if strings.Contains(h, ":") {
			return "[" + h + "]"
		}
		return h
	}
	return host
}

func normalizePath(u *url.URL) {
	escaped := u.EscapedPath()

	if escaped != "/" {
		escaped = strings.TrimRight(escaped, "/")
	}
	if escaped == "" && u.Host != "" {
		escaped = "/"
	}

	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return
	}

	u.Path = unescaped
	u.RawPath = escaped
}

type queryParam struct {
	key   string
	value string
}

func sortQuery(rawQuery string) string {
	var params []queryParam

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		params = append(params, queryParam{key: key, value: value})
	}

	sort.SliceStable(params, func(i, j int) bool {
		return params[i].key < params[j].key
	})

	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	return b.String()
}
