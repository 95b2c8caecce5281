package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the fixed set of meal slots a recipe can be filed under
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategorySnacks    Category = "Snacks"
	CategoryDinner    Category = "Dinner"
)

// Categories lists every valid category in display order
var Categories = []Category{CategoryBreakfast, CategoryLunch, CategorySnacks, CategoryDinner}

// Valid reports whether c is one of Categories
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Recipe struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	UserID          string    `json:"userId" gorm:"index;not null;size:36"`
	Title           string    `json:"title" gorm:"not null"`
	Category        Category  `json:"category" gorm:"not null;index"`
	Ingredients     []string  `json:"ingredients" gorm:"serializer:json"`
	Instructions    string    `json:"instructions"`
	Image           *string   `json:"image"` // embedded data URI, optional
	PreparationTime int       `json:"preparationTime"`
	AverageRating   float64   `json:"averageRating" gorm:"not null;default:0"`
	Reviews         []Review  `json:"reviews" gorm:"foreignKey:RecipeID"`
	Favorite        bool      `json:"favorite" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Review is immutable once written; it only ever gets appended to a recipe
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"userId" gorm:"not null;size:36"`
	Username  string    `json:"username" gorm:"not null"`
	RecipeID  string    `json:"recipeId" gorm:"index;not null;size:36"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
