package shop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CreateServiceInput struct {
	Actor       *authz.Actor
	ShopID      uint
	Name        string
	Description string
	Price       float64
	Duration    int
}

type CreateService struct {
	repo  domain.Repository
	authz authz.Authorizer
	audit audit.Recorder
}

func NewCreateService(repo domain.Repository, authorizer authz.Authorizer, recorder audit.Recorder) *CreateService {
	return &CreateService{repo: repo, authz: authorizer, audit: recorder}
}

func (uc *CreateService) Execute(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	s, err := authorizeManage(ctx, uc.repo, uc.authz, in.Actor, in.ShopID)
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ShopID:      &s.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
	}
	if err := domain.PrepareService(svc); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &s.ID,
		UserID:   &in.Actor.ID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
	})
	return svc, nil
}
