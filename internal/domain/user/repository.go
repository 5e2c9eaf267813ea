package user

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ListFilter struct {
	Role  string
	Query string
	Skip  int
	Take  int
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	List(ctx context.Context, f ListFilter) ([]models.User, int64, error)

	OwnedShops(ctx context.Context, userID string) ([]models.Shop, error)
	EmployeeShops(ctx context.Context, userID string) ([]models.Shop, error)
}
