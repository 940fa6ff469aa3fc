package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"root without slash", "https://www.google.com", "https://www.google.com"},
		{"root with slash", "https://www.google.com/", "https://www.google.com"},
		{"trailing slash on path", "https://example.com/docs/", "https://example.com/docs"},
		{"many trailing slashes", "https://example.com/docs///", "https://example.com/docs"},
		{"sorts query", "https://e.com?z=1&a=2", "https://e.com/?a=2&z=1"},
		{"sort is stable on equal keys", "https://e.com/p?b=2&a=9&b=1", "https://e.com/p?a=9&b=2&b=1"},
		{"query keeps root slash", "https://e.com/?q=go", "https://e.com/?q=go"},
		{"fragment keeps root slash", "https://e.com/#top", "https://e.com/#top"},
		{"path with query", "https://e.com/search/?q=a+b&lang=en", "https://e.com/search?lang=en&q=a+b"},
		{"lowercases host", "https://Example.COM/Path", "https://example.com/Path"},
		{"drops default port", "https://example.com:443/a", "https://example.com/a"},
		{"keeps custom port", "http://localhost:8080/", "http://localhost:8080"},
		{"relative input unchanged", "not a url", "not a url"},
		{"invalid input unchanged", "http://[::1", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.input))
		})
	}
}

func TestURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.google.com",
		"https://e.com?z=1&a=2",
		"https://example.com/a/b/?y=&x=1#frag",
		"http://localhost:3333/shortened-links/",
		"https://example.com/caf%C3%A9/?name=J%C3%BAlia",
		"https://example.com/with%20space/",
	}

	for _, input := range inputs {
		once := URL(input)
		assert.Equal(t, once, URL(once), "normalizing %q twice changed the result", input)
	}
}
