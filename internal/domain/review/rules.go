package review

import (
	"math"
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating = httperr.Validation("invalid_rating", "Puan 1 ile 5 arasında olmalıdır")
	ErrEmptyComment  = httperr.Validation("comment_required", "Yorum boş olamaz")
)

// Validate checks rating bounds and returns the trimmed comment.
func Validate(rating int, comment string) (string, error) {
	if rating < MinRating || rating > MaxRating {
		return "", ErrInvalidRating
	}
	c := strings.TrimSpace(comment)
	if c == "" {
		return "", ErrEmptyComment
	}
	return c, nil
}

// Average rounds to one decimal. An empty slice averages to 0.
func Average(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
