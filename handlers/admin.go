package handlers

import (
	"net/http"

	"recipe-manager-api/logger"
	"recipe-manager-api/middleware"
	"recipe-manager-api/models"
	"recipe-manager-api/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadDirectory reads every user and the owner of every recipe
func (h *Handler) loadDirectory(c *gin.Context) ([]models.User, []models.Recipe, error) {
	db := h.db.WithContext(c.Request.Context())
	var users []models.User
	if err := db.Order("created_at asc").Find(&users).Error; err != nil {
		return nil, nil, err
	}
	var recipes []models.Recipe
	if err := db.Select("id", "user_id").Find(&recipes).Error; err != nil {
		return nil, nil, err
	}
	return users, recipes, nil
}

// AdminStats returns user/recipe totals and per-user recipe counts. Admin only.
func (h *Handler) AdminStats(c *gin.Context) {
	users, recipes, err := h.loadDirectory(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats.Summarize(users, recipes)})
}

// AdminListUsers returns all users with their recipe counts. Admin only.
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, recipes, err := h.loadDirectory(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	rows := stats.UserRows(users, recipes, c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "users": rows})
}

// AdminDeleteUser removes a user together with their recipes and the reviews
// on those recipes. Admin only.
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	db := h.db.WithContext(c.Request.Context())
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var deletedRecipes int64
	err := db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Recipe{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("recipe_id IN (?)", owned).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&models.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		deletedRecipes = res.RowsAffected
		return tx.Delete(&user).Error
	})
	if err != nil {
		logger.FromGin(c).Error("delete user", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	logger.FromGin(c).Info("user deleted",
		zap.String("user_id", userID),
		zap.Int64("deleted_recipes", deletedRecipes),
	)
	c.JSON(http.StatusOK, gin.H{
		"message":        "User and their recipes deleted",
		"deletedRecipes": deletedRecipes,
	})
}
