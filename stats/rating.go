// Package stats holds the pure aggregations behind review ratings and the
// admin dashboard. Nothing here touches storage.
package stats

import (
	"fmt"

	"recipe-manager-api/models"
)

// NoRating is shown in place of an average when a recipe has no reviews
const NoRating = "No rating"

// AverageRating is the arithmetic mean of the review ratings, or 0 for an
// empty list. The value is never rounded here.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// AppendReview returns the recipe's reviews with rv appended and the new mean.
// The input slice is not modified.
func AppendReview(reviews []models.Review, rv models.Review) ([]models.Review, float64) {
	out := make([]models.Review, 0, len(reviews)+1)
	out = append(out, reviews...)
	out = append(out, rv)
	return out, AverageRating(out)
}

// FormatRating renders an average to one decimal place
func FormatRating(avg float64, reviewCount int) string {
	if reviewCount == 0 {
		return NoRating
	}
	return fmt.Sprintf("%.1f", avg)
}

// Stars renders a 1-5 rating as filled and empty stars
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	s := ""
	for i := 0; i < 5; i++ {
		if i < rating {
			s += "★"
		} else {
			s += "☆"
		}
	}
	return s
}
