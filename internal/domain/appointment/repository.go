package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShop(ctx context.Context, id uint) (*models.Shop, error)
	CountStaff(ctx context.Context, shopID uint) (int64, error)
	IsStaff(ctx context.Context, shopID uint, userID string) (bool, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Stats --------
	// CountByDay groups non-cancelled appointments in [from, to] by date (YYYY-MM-DD).
	CountByDay(ctx context.Context, shopID uint, from, to string) (map[string]int64, error)

	// -------- Appointment --------
	Create(ctx context.Context, ap *models.Appointment) error
	// CreateWithinCapacity inserts ap only while its slot holds fewer than
	// capacity scheduled appointments, serialized per shop.
	CreateWithinCapacity(ctx context.Context, ap *models.Appointment, capacity int) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, ap *models.Appointment) error

	ListForCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	ListForStaff(ctx context.Context, userID string) ([]models.Appointment, error)
}
