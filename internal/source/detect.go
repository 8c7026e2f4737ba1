package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Format is the encoding of a data source.
type Format uint8

const (
	Unknown Format = iota
	JSON
	CSV
	SQLite
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CSV:
		return "csv"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// ParseFormat maps a flag value to a Format. Empty means detect.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return Unknown, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "sqlite", "sqlite3", "db":
		return SQLite, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Detect guesses the format from the leading bytes and the file name.
// Binary content is matched by magic number first, so a renamed database
// is still read as SQLite.
func Detect(head []byte, name string) (Format, error) {
	kind, _ := filetype.Match(head)
	if kind != filetype.Unknown {
		if kind.Extension == "sqlite" {
			return SQLite, nil
		}
		return Unknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON, nil
	case ".csv":
		return CSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return SQLite, nil
	}

	// Sniff text content.
	trimmed := bytes.TrimSpace(head)
	if len(trimmed) == 0 {
		return Unknown, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}
	switch trimmed[0] {
	case '[', '{':
		return JSON, nil
	}
	firstLine := trimmed
	if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
		firstLine = trimmed[:i]
	}
	if bytes.IndexByte(firstLine, ',') >= 0 {
		return CSV, nil
	}
	return Unknown, ErrUnsupportedFormat
}

// formatFromMediaType maps a Content-Type media type to a Format.
func formatFromMediaType(mtype string) Format {
	switch {
	case mtype == "application/json", mtype == "text/json", strings.HasSuffix(mtype, "+json"):
		return JSON
	case mtype == "text/csv", mtype == "application/csv":
		return CSV
	case mtype == "application/vnd.sqlite3", mtype == "application/x-sqlite3":
		return SQLite
	}
	return Unknown
}
