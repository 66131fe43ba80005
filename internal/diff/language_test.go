package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a/b/c.tsx", "typescript"},
		{"main.go", "go"},
		{"src/app.jsx", "javascript"},
		{"styles.SCSS", "scss"},
		{"README", "text"},
		{"x.UNKNOWN", "text"},
		{"trailing.", "text"},
		{"", "text"},
		{"config.yml", "yaml"},
		{"schema.sql", "sql"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, DetectLanguage(tt.path), "path %q", tt.path)
	}
}
