package models

import (
	"net/url"
	"strings"
)

// SearchQuery is the user's current search state. An empty field means "no
// constraint" and is never sent to the backend.
type SearchQuery struct {
	Search   string
	Category string
}

// Normalize trims surrounding whitespace from both fields.
func (q SearchQuery) Normalize() SearchQuery {
	return SearchQuery{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
	}
}

func (q SearchQuery) IsEmpty() bool {
	n := q.Normalize()
	return n.Search == "" && n.Category == ""
}

// Encode renders the query string without the leading '?'. Keys are emitted
// in the order search, category and only when non-empty, so an empty query
// encodes to "".
func (q SearchQuery) Encode() string {
	n := q.Normalize()

	parts := make([]string, 0, 2)
	if n.Search != "" {
		parts = append(parts, "search="+url.QueryEscape(n.Search))
	}
	if n.Category != "" {
		parts = append(parts, "category="+url.QueryEscape(n.Category))
	}
	return strings.Join(parts, "&")
}
