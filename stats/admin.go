package stats

import (
	"strings"

	"recipe-manager-api/models"
)

// Summary is the admin dashboard payload
type Summary struct {
	TotalUsers        int            `json:"totalUsers"`
	TotalRecipes      int            `json:"totalRecipes"`
	AvgRecipesPerUser float64        `json:"avgRecipesPerUser"`
	RecipesPerUser    map[string]int `json:"recipesPerUser"`
}

// UserRow is one line of the admin user table
type UserRow struct {
	models.User
	RecipeCount int `json:"recipeCount"`
}

// RecipeCounts groups recipes by owning user id
func RecipeCounts(recipes []models.Recipe) map[string]int {
	counts := make(map[string]int)
	for _, r := range recipes {
		counts[r.UserID]++
	}
	return counts
}

// Summarize computes the dashboard figures with a single pass over recipes.
// Users without recipes appear in RecipesPerUser with a zero count.
func Summarize(users []models.User, recipes []models.Recipe) Summary {
	counts := RecipeCounts(recipes)
	perUser := make(map[string]int, len(users))
	for _, u := range users {
		perUser[u.ID] = counts[u.ID]
	}

	s := Summary{
		TotalUsers:     len(users),
		TotalRecipes:   len(recipes),
		RecipesPerUser: perUser,
	}
	if len(users) > 0 {
		s.AvgRecipesPerUser = float64(len(recipes)) / float64(len(users))
	}
	return s
}

// UserRows annotates users with their recipe count, keeping only those whose
// username or email contains term (case-insensitive). Empty term keeps all.
func UserRows(users []models.User, recipes []models.Recipe, term string) []UserRow {
	counts := RecipeCounts(recipes)
	term = strings.ToLower(term)
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Username), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		rows = append(rows, UserRow{User: u, RecipeCount: counts[u.ID]})
	}
	return rows
}
