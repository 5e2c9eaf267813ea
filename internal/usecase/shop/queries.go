package shop

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Queries serves the public read side of shops.
type Queries struct {
	repo domain.Repository
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{repo: repo}
}

func (q *Queries) List(ctx context.Context, f domain.ListFilter) ([]models.Shop, int64, error) {
	shops, total, err := q.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if shops == nil {
		shops = []models.Shop{}
	}
	return shops, total, nil
}

func (q *Queries) Get(ctx context.Context, id uint) (*models.Shop, error) {
	return q.repo.GetDetail(ctx, id)
}

func (q *Queries) ListEmployees(ctx context.Context, shopID uint) ([]models.User, error) {
	if _, err := q.repo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	users, err := q.repo.ListEmployees(ctx, shopID)
	if users == nil && err == nil {
		users = []models.User{}
	}
	return users, err
}

func (q *Queries) ListServices(ctx context.Context, shopID uint) ([]models.Service, error) {
	if _, err := q.repo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	services, err := q.repo.ListServices(ctx, shopID)
	if services == nil && err == nil {
		services = []models.Service{}
	}
	return services, err
}

func (q *Queries) ListCatalog(ctx context.Context) ([]models.Service, error) {
	services, err := q.repo.ListCatalog(ctx)
	if services == nil && err == nil {
		services = []models.Service{}
	}
	return services, err
}
