package handlers

import (
	"sync"

	"recipe-manager-api/middleware"
	"recipe-manager-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Handler serves every API route from one database handle
type Handler struct {
	db   *gorm.DB
	auth *middleware.Auth
}

func New(db *gorm.DB, auth *middleware.Auth) *Handler {
	registerValidators()
	return &Handler{db: db, auth: auth}
}

var validatorsOnce sync.Once

// registerValidators adds the recipe_category and recipe_image tags to gin's
// validator
func registerValidators() {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("recipe_category", func(fl validator.FieldLevel) bool {
				return models.Category(fl.Field().String()).Valid()
			})
			// empty clears the image on update
			_ = v.RegisterValidation("recipe_image", func(fl validator.FieldLevel) bool {
				s := fl.Field().String()
				return s == "" || v.Var(s, "datauri") == nil
			})
		}
	})
}
