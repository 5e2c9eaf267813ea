package shop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ListFilter struct {
	Query   string
	OwnerID string
	Skip    int
	Take    int
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]models.Shop, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Shop, error)
	// GetDetail loads the owner, staff and services along with the shop.
	GetDetail(ctx context.Context, id uint) (*models.Shop, error)
	Create(ctx context.Context, s *models.Shop) error
	Update(ctx context.Context, s *models.Shop) error

	ListEmployees(ctx context.Context, shopID uint) ([]models.User, error)
	IsEmployee(ctx context.Context, shopID uint, userID string) (bool, error)
	AddEmployee(ctx context.Context, shopID uint, userID string) error
	// RemoveEmployee reports whether a membership row was deleted.
	RemoveEmployee(ctx context.Context, shopID uint, userID string) (bool, error)

	ListServices(ctx context.Context, shopID uint) ([]models.Service, error)
	ListCatalog(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
}
