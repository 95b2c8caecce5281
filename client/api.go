package client

import (
	"context"
	"net/http"
	"net/url"

	"recipe-manager-api/models"
	"recipe-manager-api/stats"
)

// AuthResult is returned by Signup and Login
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RecipeInput is the editable part of a recipe. On update a nil Image keeps
// the stored image and a pointer to "" removes it.
type RecipeInput struct {
	Title           string          `json:"title"`
	Category        models.Category `json:"category"`
	Ingredients     []string        `json:"ingredients"`
	Instructions    string          `json:"instructions"`
	Image           *string         `json:"image,omitempty"`
	PreparationTime int             `json:"preparationTime"`
}

// RecipeQuery narrows ListRecipes. Zero value lists the caller's recipes.
type RecipeQuery struct {
	UserID   string
	Search   string
	Category models.Category
}

func (q RecipeQuery) values() url.Values {
	v := url.Values{}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", string(q.Category))
	}
	return v
}

type recipeEnvelope struct {
	Recipe models.Recipe `json:"recipe"`
}

func (c *Client) Signup(ctx context.Context, username, email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/users", nil, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, nil, &out)
	return out.User, err
}

func (c *Client) ListRecipes(ctx context.Context, q RecipeQuery) ([]models.Recipe, error) {
	var out struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/recipes", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

func (c *Client) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	var out recipeEnvelope
	err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(id), nil, nil, &out)
	return out.Recipe, err
}

func (c *Client) CreateRecipe(ctx context.Context, in RecipeInput) (models.Recipe, error) {
	var out recipeEnvelope
	err := c.do(ctx, http.MethodPost, "/api/recipes", nil, in, &out)
	return out.Recipe, err
}

// UpdateRecipe sends every editable field, replacing the stored values
func (c *Client) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (models.Recipe, error) {
	var out recipeEnvelope
	err := c.do(ctx, http.MethodPatch, "/api/recipes/"+url.PathEscape(id), nil, in, &out)
	return out.Recipe, err
}

func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ToggleFavorite(ctx context.Context, id string) (models.Recipe, error) {
	var out recipeEnvelope
	err := c.do(ctx, http.MethodPatch, "/api/recipes/"+url.PathEscape(id)+"/favorite", nil, nil, &out)
	return out.Recipe, err
}

// AddReview returns the recipe with the new review appended and its average
// rating recomputed
func (c *Client) AddReview(ctx context.Context, recipeID string, rating int, comment string) (models.Recipe, error) {
	var out recipeEnvelope
	err := c.do(ctx, http.MethodPost, "/api/recipes/"+url.PathEscape(recipeID)+"/reviews", nil, map[string]any{
		"rating":  rating,
		"comment": comment,
	}, &out)
	return out.Recipe, err
}

func (c *Client) ListUsers(ctx context.Context, search string) ([]stats.UserRow, error) {
	var q url.Values
	if search != "" {
		q = url.Values{"search": {search}}
	}
	var out struct {
		Users []stats.UserRow `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// DeleteUser removes a user and their recipes, returning how many recipes went
func (c *Client) DeleteUser(ctx context.Context, id string) (int64, error) {
	var out struct {
		DeletedRecipes int64 `json:"deletedRecipes"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil, &out)
	return out.DeletedRecipes, err
}

func (c *Client) Stats(ctx context.Context) (stats.Summary, error) {
	var out struct {
		Stats stats.Summary `json:"stats"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, nil, &out)
	return out.Stats, err
}
