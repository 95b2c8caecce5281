package store

import (
	"strconv"
	"strings"

	"recipe-manager-api/models"
)

// Criteria is the search box and category dropdown of the recipe list.
// A zero Criteria matches everything.
type Criteria struct {
	SearchTerm string
	Category   models.Category
}

// MatchesSearch reports whether the recipe title, any ingredient, or the
// preparation time written in minutes contains term, ignoring case.
func MatchesSearch(r models.Recipe, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return strings.Contains(strconv.Itoa(r.PreparationTime), term)
}

// MatchesCategory is true for every recipe when category is empty
func MatchesCategory(r models.Recipe, category models.Category) bool {
	return category == "" || r.Category == category
}

// Matches composes the search and category predicates
func (c Criteria) Matches(r models.Recipe) bool {
	return MatchesSearch(r, c.SearchTerm) && MatchesCategory(r, c.Category)
}

// Filter returns the recipes matching c, preserving order
func Filter(recipes []models.Recipe, c Criteria) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
