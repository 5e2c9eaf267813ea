package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err, httperr.ErrShopNotFound)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) CountStaff(ctx context.Context, shopID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("shop_employees").
		Where("shop_id = ?", shopID).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) IsStaff(ctx context.Context, shopID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("shop_employees").
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, httperr.ErrServiceNotFound)
	}
	return &svc, nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

type dayCount struct {
	Day   string
	Count int64
}

func (r *AppointmentGormRepository) CountByDay(
	ctx context.Context,
	shopID uint,
	from string,
	to string,
) (map[string]int64, error) {

	var rows []dayCount
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("to_char(date, 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("shop_id = ? AND date BETWEEN ? AND ? AND status <> ?",
			shopID, from, to, string(domain.StatusCancelled)).
		Group("date").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Day] = row.Count
	}
	return out, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) CreateWithinCapacity(
	ctx context.Context,
	ap *models.Appointment,
	capacity int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The shop row is the per-shop booking lock.
		var shop models.Shop
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&shop, ap.ShopID).Error; err != nil {
			return notFound(err, httperr.ErrShopNotFound)
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where("shop_id = ? AND date = ? AND time_slot = ? AND status = ?",
				ap.ShopID, ap.Date.Format(domain.DateLayout), ap.TimeSlot, string(domain.StatusScheduled)).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(capacity) {
			return domain.ErrSlotFull
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

func (r *AppointmentGormRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) Update(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) listing(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Service").
		Preload("Customer").
		Order("date DESC, time_slot DESC")
}

func (r *AppointmentGormRepository) ListForCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := r.listing(ctx).
		Where("customer_id = ?", customerID).
		Find(&apps).Error
	return apps, err
}

// ListForStaff returns bookings of every shop the user owns or works at.
func (r *AppointmentGormRepository) ListForStaff(ctx context.Context, userID string) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := r.listing(ctx).
		Where("shop_id IN (SELECT id FROM shops WHERE owner_id = ?) OR shop_id IN (SELECT shop_id FROM shop_employees WHERE user_id = ?)",
			userID, userID).
		Find(&apps).Error
	return apps, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
