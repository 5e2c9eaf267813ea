package review

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	ListByShop(ctx context.Context, shopID uint) ([]models.Review, error)
	// ListFeedback returns reviews with no shop, newest first.
	ListFeedback(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, r *models.Review) error
}
