package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"recipe-manager-api/client"
	"recipe-manager-api/models"
	"recipe-manager-api/stats"
	"recipe-manager-api/store"
)

// RecipeForm is the recipe editor's input. Ingredients is comma separated.
type RecipeForm struct {
	Title           string
	Category        models.Category
	Ingredients     string
	Instructions    string
	Image           *string
	PreparationTime int
}

// ParseIngredients splits comma separated text into trimmed, non-empty entries
func ParseIngredients(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (f RecipeForm) input() (client.RecipeInput, error) {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	switch {
	case f.Category == "":
		errs["category"] = "Please select a category"
	case !f.Category.Valid():
		errs["category"] = ErrInvalidCategory.Error()
	}
	ingredients := ParseIngredients(f.Ingredients)
	if len(ingredients) == 0 {
		errs["ingredients"] = "At least one ingredient is required"
	}
	if strings.TrimSpace(f.Instructions) == "" {
		errs["instructions"] = "Instructions are required"
	}
	if f.PreparationTime < 0 {
		errs["preparationTime"] = "Preparation time cannot be negative"
	}
	if err := errs.orNil(); err != nil {
		return client.RecipeInput{}, err
	}
	return client.RecipeInput{
		Title:           strings.TrimSpace(f.Title),
		Category:        f.Category,
		Ingredients:     ingredients,
		Instructions:    f.Instructions,
		Image:           f.Image,
		PreparationTime: f.PreparationTime,
	}, nil
}

// FormFor fills the editor from an existing recipe
func FormFor(r models.Recipe) RecipeForm {
	return RecipeForm{
		Title:           r.Title,
		Category:        r.Category,
		Ingredients:     strings.Join(r.Ingredients, ", "),
		Instructions:    r.Instructions,
		Image:           r.Image,
		PreparationTime: r.PreparationTime,
	}
}

// RatingLabel is the recipe's average as shown on cards: one decimal, or
// "No rating" before the first review
func RatingLabel(r models.Recipe) string {
	return stats.FormatRating(r.AverageRating, len(r.Reviews))
}

func ReviewStars(rv models.Review) string {
	return stats.Stars(rv.Rating)
}

// LoadRecipes replaces the store's list with what the API returns for the
// signed-in user (every recipe for admins)
func (a *App) LoadRecipes(ctx context.Context) ([]models.Recipe, error) {
	if _, err := a.requireUser(); err != nil {
		return nil, err
	}
	recipes, err := a.api.ListRecipes(ctx, client.RecipeQuery{})
	if err != nil {
		return nil, a.apiFailure("load recipes", err, ErrTryAgain)
	}
	state := a.store.Dispatch(store.SetRecipes{Recipes: recipes})
	a.log.Debug("recipes loaded", zap.Int("count", len(state.Recipes)))
	return state.Visible(), nil
}

func (a *App) CreateRecipe(ctx context.Context, form RecipeForm) (models.Recipe, error) {
	if _, err := a.requireUser(); err != nil {
		return models.Recipe{}, err
	}
	in, err := form.input()
	if err != nil {
		return models.Recipe{}, err
	}
	r, err := a.api.CreateRecipe(ctx, in)
	if err != nil {
		return models.Recipe{}, a.apiFailure("create recipe", err, ErrSaveFailed)
	}
	a.store.Dispatch(store.AddRecipe{Recipe: r})
	a.log.Info("recipe created", zap.String("recipe_id", r.ID))
	return r, nil
}

func (a *App) EditRecipe(ctx context.Context, id string, form RecipeForm) (models.Recipe, error) {
	if _, err := a.requireUser(); err != nil {
		return models.Recipe{}, err
	}
	in, err := form.input()
	if err != nil {
		return models.Recipe{}, err
	}
	r, err := a.api.UpdateRecipe(ctx, id, in)
	if err != nil {
		return models.Recipe{}, a.apiFailure("edit recipe", err, ErrSaveFailed)
	}
	a.store.Dispatch(store.UpdateRecipe{Recipe: r})
	a.log.Info("recipe updated", zap.String("recipe_id", r.ID))
	return r, nil
}

func (a *App) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	if err := a.api.DeleteRecipe(ctx, id); err != nil {
		return a.apiFailure("delete recipe", err, ErrTryAgain)
	}
	a.store.Dispatch(store.DeleteRecipe{ID: id})
	a.log.Info("recipe deleted", zap.String("recipe_id", id))
	return nil
}

func (a *App) ToggleFavorite(ctx context.Context, id string) (models.Recipe, error) {
	if _, err := a.requireUser(); err != nil {
		return models.Recipe{}, err
	}
	r, err := a.api.ToggleFavorite(ctx, id)
	if err != nil {
		return models.Recipe{}, a.apiFailure("toggle favorite", err, ErrTryAgain)
	}
	a.store.Dispatch(store.FavoriteToggled{Recipe: r})
	return r, nil
}

// OpenRecipe fetches a recipe and makes it the current one
func (a *App) OpenRecipe(ctx context.Context, id string) (models.Recipe, error) {
	if _, err := a.requireUser(); err != nil {
		return models.Recipe{}, err
	}
	r, err := a.api.GetRecipe(ctx, id)
	if err != nil {
		return models.Recipe{}, a.apiFailure("open recipe", err, ErrTryAgain)
	}
	state := a.store.Dispatch(store.SetCurrent{Recipe: &r})
	return *state.Current, nil
}

// SubmitReview posts a review and swaps in the recipe with its recomputed
// average rating
func (a *App) SubmitReview(ctx context.Context, recipeID string, rating int, comment string) (models.Recipe, error) {
	if _, err := a.requireUser(); err != nil {
		return models.Recipe{}, err
	}
	if rating < 1 || rating > 5 {
		return models.Recipe{}, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return models.Recipe{}, ErrEmptyComment
	}

	r, err := a.api.AddReview(ctx, recipeID, rating, comment)
	if err != nil {
		return models.Recipe{}, a.apiFailure("submit review", err, ErrTryAgain)
	}
	a.store.Dispatch(store.ReviewAdded{Recipe: r})
	a.log.Info("review submitted",
		zap.String("recipe_id", recipeID),
		zap.Int("rating", rating),
		zap.Float64("average_rating", r.AverageRating),
	)
	return r, nil
}

// Search sets the search term and returns the recipes left visible
func (a *App) Search(term string) []models.Recipe {
	return a.store.Dispatch(store.SetSearchTerm{Term: term}).Visible()
}

// FilterByCategory narrows the visible recipes to one category. An empty
// category shows all of them.
func (a *App) FilterByCategory(category models.Category) ([]models.Recipe, error) {
	if category != "" && !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return a.store.Dispatch(store.SetFilterCategory{Category: category}).Visible(), nil
}
