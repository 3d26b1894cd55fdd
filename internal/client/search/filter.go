// Package search implements species search for the terminal client: one
// pure filter shared by every in-memory consumer, and a Controller that
// turns a stream of query edits into result sets, either by filtering a list
// loaded once or by debounced backend searches.
package search

import (
	"strings"

	"github.com/pohonku/pohonku/internal/client/models"
)

type filterOptions struct {
	description bool
}

type FilterOption func(*filterOptions)

// WithDescription extends text matching to the description field.
func WithDescription() FilterOption {
	return func(o *filterOptions) { o.description = true }
}

// Filter returns the species of list that match q, in their original order.
// Text matches case-insensitively as a substring of name or latinName;
// category must be equal. Both constraints must hold. An empty field is no
// constraint. The result is never nil.
func Filter(list []models.Species, q models.SearchQuery, opts ...FilterOption) []models.Species {
	var o filterOptions
	for _, opt := range opts {
		opt(&o)
	}

	q = q.Normalize()
	term := strings.ToLower(q.Search)

	out := make([]models.Species, 0, len(list))
	for _, s := range list {
		if q.Category != "" && s.Category != q.Category {
			continue
		}
		if term != "" && !matchesText(s, term, o) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesText(s models.Species, term string, o filterOptions) bool {
	if strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.LatinName), term) {
		return true
	}
	return o.description && strings.Contains(strings.ToLower(s.Description), term)
}
