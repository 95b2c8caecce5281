package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"recipe-manager-api/logger"
	"recipe-manager-api/middleware"
	"recipe-manager-api/models"
	"recipe-manager-api/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

var errRecipeNotFound = errors.New("recipe not found")

// AddReview appends the caller's review and recomputes the recipe's average
// rating in the same transaction.
func (h *Handler) AddReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment is required"})
		return
	}

	recipeID := c.Param("id")
	review := models.Review{
		UserID:    middleware.GetUserID(c),
		Username:  middleware.GetUsername(c),
		RecipeID:  recipeID,
		Rating:    req.Rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	db := h.db.WithContext(c.Request.Context())
	var average float64
	err := db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRecipeNotFound
			}
			return err
		}

		var existing []models.Review
		if err := tx.Where("recipe_id = ?", recipeID).Find(&existing).Error; err != nil {
			return err
		}
		_, average = stats.AppendReview(existing, review)

		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&recipe).Update("average_rating", average).Error
	})
	if errors.Is(err, errRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("add review", zap.String("recipe_id", recipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}

	var recipe models.Recipe
	if err := preloadReviews(db).First(&recipe, "id = ?", recipeID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload recipe"})
		return
	}
	logger.FromGin(c).Info("review added",
		zap.String("recipe_id", recipeID),
		zap.Int("rating", review.Rating),
		zap.Float64("average_rating", average),
	)
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}
