package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) ListByShop(ctx context.Context, shopID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewGormRepository) ListFeedback(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("shop_id IS NULL").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rv).Error
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
