// Package filter derives the visible subset of the collection from a
// free-text name query and a cuisine selector.
package filter

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
)

// CategoryAll is the sentinel category that resets every constraint.
const CategoryAll = "All"

// State is the user's current search and category selection. Empty
// fields mean "no constraint".
type State struct {
	NameQuery     string
	CuisineFilter string
}

// SetQuery returns the state with a new name query.
func (s State) SetQuery(q string) State {
	s.NameQuery = q
	return s
}

// SelectCategory applies a category pick. CategoryAll clears both the
// query and the cuisine filter; any other value only sets the filter.
func (s State) SelectCategory(category string) State {
	if category == CategoryAll {
		return State{}
	}
	s.CuisineFilter = category
	return s
}

// Active reports whether any constraint is set.
func (s State) Active() bool {
	return s.NameQuery != "" || s.CuisineFilter != ""
}

func (s State) String() string {
	switch {
	case s.NameQuery != "" && s.CuisineFilter != "":
		return fmt.Sprintf("%q in %s", s.NameQuery, s.CuisineFilter)
	case s.NameQuery != "":
		return fmt.Sprintf("%q", s.NameQuery)
	case s.CuisineFilter != "":
		return s.CuisineFilter
	default:
		return CategoryAll
	}
}

// Project returns the recipes matching s, in input order. It has no side
// effects; the same inputs always yield the same output.
func Project(items []domain.Recipe, s State) []domain.Recipe {
	// cases.Caser is stateful, so each projection gets its own.
	lower := cases.Lower(language.Und)
	query := lower.String(s.NameQuery)
	cuisine := lower.String(s.CuisineFilter)

	out := make([]domain.Recipe, 0, len(items))
	for _, r := range items {
		if matchName(lower, r, query) && matchCuisine(lower, r, cuisine) {
			out = append(out, r)
		}
	}
	return out
}

func matchName(lower cases.Caser, r domain.Recipe, query string) bool {
	return query == "" || strings.Contains(lower.String(r.Name), query)
}

func matchCuisine(lower cases.Caser, r domain.Recipe, cuisine string) bool {
	return cuisine == "" || lower.String(r.Cuisine) == cuisine
}
