package utils

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// IsURL reports whether src looks like an http(s) URL rather than a path.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// SourceName returns a short display name for a data source.
// Example: https://example.com/a/b/prices.json -> example.com/prices.json
// Example: /home/me/data/prices.csv -> prices.csv
func SourceName(src string) string {
	if !IsURL(src) {
		return filepath.Base(src)
	}
	parsed, err := url.Parse(src)
	if err != nil {
		return src
	}

	// Get the file part without query
	base := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if base == "." || base == "/" || base == "" {
		return parsed.Host
	}
	return parsed.Host + "/" + base
}
