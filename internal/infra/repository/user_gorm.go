package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, httperr.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, httperr.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserGormRepository) List(ctx context.Context, f domain.ListFilter) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if f.Role != "" {
		q = q.Where("role = ?", strings.ToLower(f.Role))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		p := likePattern(s)
		q = q.Where("(email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?)", p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.
		Order("created_at DESC").
		Offset(f.Skip).
		Limit(f.Take).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserGormRepository) OwnedShops(ctx context.Context, userID string) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&shops).Error
	return shops, err
}

func (r *UserGormRepository) EmployeeShops(ctx context.Context, userID string) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_employees se ON se.shop_id = shops.id").
		Where("se.user_id = ?", userID).
		Order("shops.created_at DESC").
		Find(&shops).Error
	return shops, err
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
