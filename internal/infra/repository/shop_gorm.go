package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *ShopGormRepository) List(ctx context.Context, f domain.ListFilter) ([]models.Shop, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Shop{})

	if s := strings.TrimSpace(f.Query); s != "" {
		p := likePattern(s)
		q = q.Where("(name ILIKE ? OR description ILIKE ? OR address ILIKE ?)", p, p, p)
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shops []models.Shop
	if err := q.
		Preload("Owner").
		Order("created_at DESC").
		Offset(f.Skip).
		Limit(f.Take).
		Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

func (r *ShopGormRepository) GetByID(ctx context.Context, id uint) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err, httperr.ErrShopNotFound)
	}
	return &s, nil
}

func (r *ShopGormRepository) GetDetail(ctx context.Context, id uint) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Employees").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&s, id).Error; err != nil {
		return nil, notFound(err, httperr.ErrShopNotFound)
	}
	return &s, nil
}

func (r *ShopGormRepository) Create(ctx context.Context, s *models.Shop) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *ShopGormRepository) Update(ctx context.Context, s *models.Shop) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *ShopGormRepository) ListEmployees(ctx context.Context, shopID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_employees se ON se.user_id = users.id").
		Where("se.shop_id = ?", shopID).
		Order("users.first_name ASC, users.last_name ASC").
		Find(&users).Error
	return users, err
}

func (r *ShopGormRepository) IsEmployee(ctx context.Context, shopID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("shop_employees").
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ShopGormRepository) AddEmployee(ctx context.Context, shopID uint, userID string) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO shop_employees (shop_id, user_id) VALUES (?, ?)", shopID, userID).
		Error
}

func (r *ShopGormRepository) RemoveEmployee(ctx context.Context, shopID uint, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM shop_employees WHERE shop_id = ? AND user_id = ?", shopID, userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ShopGormRepository) ListServices(ctx context.Context, shopID uint) ([]models.Service, error) {
	var svcs []models.Service
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&svcs).Error
	return svcs, err
}

func (r *ShopGormRepository) ListCatalog(ctx context.Context) ([]models.Service, error) {
	var svcs []models.Service
	err := r.db.WithContext(ctx).
		Where("shop_id IS NULL").
		Order("name ASC").
		Find(&svcs).Error
	return svcs, err
}

func (r *ShopGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

// Compile-time check
var _ domain.Repository = (*ShopGormRepository)(nil)
