package handlers

import (
	"errors"
	"net/http"
	"strings"

	"recipe-manager-api/logger"
	"recipe-manager-api/middleware"
	"recipe-manager-api/models"
	"recipe-manager-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateRecipeRequest struct {
	Title           string          `json:"title" binding:"required"`
	Category        models.Category `json:"category" binding:"required,recipe_category"`
	Ingredients     []string        `json:"ingredients" binding:"required,min=1"`
	Instructions    string          `json:"instructions" binding:"required"`
	Image           *string         `json:"image" binding:"omitempty,recipe_image"`
	PreparationTime int             `json:"preparationTime" binding:"min=0"`
}

// UpdateRecipeRequest only touches the fields that are present. An empty
// image removes the stored one.
type UpdateRecipeRequest struct {
	Title           *string          `json:"title" binding:"omitempty,min=1"`
	Category        *models.Category `json:"category" binding:"omitempty,recipe_category"`
	Ingredients     []string         `json:"ingredients" binding:"omitempty,min=1"`
	Instructions    *string          `json:"instructions"`
	Image           *string          `json:"image" binding:"omitempty,recipe_image"`
	PreparationTime *int             `json:"preparationTime" binding:"omitempty,min=0"`
}

// preloadReviews keeps reviews in submission order
func preloadReviews(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at asc")
	})
}

// cleanIngredients trims entries and drops empty ones
func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		if s := strings.TrimSpace(ing); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func imageOrNil(img *string) *string {
	if img == nil || *img == "" {
		return nil
	}
	return img
}

// ListRecipes returns the caller's recipes. Admins may pass userId, or omit
// it to see every recipe. search and category apply the recipe list filter.
func (h *Handler) ListRecipes(c *gin.Context) {
	criteria := store.Criteria{
		SearchTerm: c.Query("search"),
		Category:   models.Category(c.Query("category")),
	}
	if criteria.Category != "" && !criteria.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Must be: Breakfast, Lunch, Snacks, or Dinner"})
		return
	}

	query := preloadReviews(h.db.WithContext(c.Request.Context()))
	userID := middleware.GetUserID(c)
	if middleware.IsAdmin(c) {
		userID = c.Query("userId")
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at asc").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}
	recipes = store.Filter(recipes, criteria)

	c.JSON(http.StatusOK, gin.H{"count": len(recipes), "recipes": recipes})
}

// GetRecipe returns one recipe with its reviews to any signed-in user
func (h *Handler) GetRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := preloadReviews(h.db.WithContext(c.Request.Context())).First(&recipe, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// CreateRecipe adds a recipe owned by the caller
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if strings.TrimSpace(req.Instructions) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Instructions are required"})
		return
	}
	ingredients := cleanIngredients(req.Ingredients)
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one ingredient is required"})
		return
	}

	recipe := models.Recipe{
		UserID:          middleware.GetUserID(c),
		Title:           title,
		Category:        req.Category,
		Ingredients:     ingredients,
		Instructions:    req.Instructions,
		Image:           imageOrNil(req.Image),
		PreparationTime: req.PreparationTime,
		Reviews:         []models.Review{},
	}
	if err := h.db.WithContext(c.Request.Context()).Omit("Reviews").Create(&recipe).Error; err != nil {
		logger.FromGin(c).Error("create recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe created", "recipe": recipe})
}

// UpdateRecipe edits a recipe (owner or admin)
func (h *Handler) UpdateRecipe(c *gin.Context) {
	recipe, ok := h.loadOwnedRecipe(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only allow safe fields
	var columns []string
	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
		if recipe.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		columns = append(columns, "title")
	}
	if req.Category != nil {
		recipe.Category = *req.Category
		columns = append(columns, "category")
	}
	if req.Ingredients != nil {
		ingredients := cleanIngredients(req.Ingredients)
		if len(ingredients) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one ingredient is required"})
			return
		}
		recipe.Ingredients = ingredients
		columns = append(columns, "ingredients")
	}
	if req.Instructions != nil {
		if strings.TrimSpace(*req.Instructions) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Instructions are required"})
			return
		}
		recipe.Instructions = *req.Instructions
		columns = append(columns, "instructions")
	}
	if req.Image != nil {
		recipe.Image = imageOrNil(req.Image)
		columns = append(columns, "image")
	}
	if req.PreparationTime != nil {
		recipe.PreparationTime = *req.PreparationTime
		columns = append(columns, "preparation_time")
	}

	db := h.db.WithContext(c.Request.Context())
	if len(columns) > 0 {
		if err := db.Model(recipe).Select(columns).Updates(recipe).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
			return
		}
	}
	if err := preloadReviews(db).First(recipe, "id = ?", recipe.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated", "recipe": recipe})
}

// DeleteRecipe removes a recipe and its reviews (owner or admin)
func (h *Handler) DeleteRecipe(c *gin.Context) {
	recipe, ok := h.loadOwnedRecipe(c)
	if !ok {
		return
	}
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// ToggleFavorite flips the favorite flag and returns the updated recipe
func (h *Handler) ToggleFavorite(c *gin.Context) {
	recipe, ok := h.loadOwnedRecipe(c)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())
	if err := db.Model(recipe).Update("favorite", !recipe.Favorite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorite"})
		return
	}
	if err := preloadReviews(db).First(recipe, "id = ?", recipe.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// loadOwnedRecipe fetches :id and verifies the caller owns it or is an admin.
// It writes the error response itself and reports false in that case.
func (h *Handler) loadOwnedRecipe(c *gin.Context) (*models.Recipe, bool) {
	var recipe models.Recipe
	err := h.db.WithContext(c.Request.Context()).First(&recipe, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return nil, false
	}
	if recipe.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this recipe"})
		return nil, false
	}
	return &recipe, true
}
