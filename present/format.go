package present

import (
	"strings"

	"github.com/mseshachalam/hncli/app"
)

// Format is an output format
type Format string

// Known formats
const (
	Text     Format = "text"
	Table    Format = "table"
	JSON     Format = "json"
	RSS      Format = "rss"
	Atom     Format = "atom"
	JSONFeed Format = "jsonfeed"
	Sitemap  Format = "sitemap"
)

// Formats lists every known format
var Formats = []Format{Text, Table, JSON, RSS, Atom, JSONFeed, Sitemap}

// ParseFormat parses s into a Format
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}

	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", &app.ValidationError{Field: "format", Value: s, Reason: "must be one of " + strings.Join(names, ", ")}
}

// ContentType is the HTTP content type of documents in f
func (f Format) ContentType() string {
	switch f {
	case JSON, JSONFeed:
		return "application/json"
	case RSS, Atom, Sitemap:
		return "application/xml; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}
