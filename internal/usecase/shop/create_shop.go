package shop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CreateShopInput struct {
	Actor       *authz.Actor
	Name        string
	Description string
	Address     string
	Phone       string
	Timezone    string
}

type CreateShop struct {
	repo  domain.Repository
	authz authz.Authorizer
	audit audit.Recorder
}

func NewCreateShop(repo domain.Repository, authorizer authz.Authorizer, recorder audit.Recorder) *CreateShop {
	return &CreateShop{repo: repo, authz: authorizer, audit: recorder}
}

// Execute creates a shop owned by the actor. Only barbers and admins may own shops.
func (uc *CreateShop) Execute(ctx context.Context, in CreateShopInput) (*models.Shop, error) {
	if err := uc.authz.Authorize(ctx, in.Actor, authz.ShopCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	s := &models.Shop{
		OwnerID:     in.Actor.ID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
		Timezone:    in.Timezone,
	}
	if err := domain.PrepareShop(s); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &s.ID,
		UserID:   &in.Actor.ID,
		Action:   "shop_created",
		Entity:   "shop",
		EntityID: &s.ID,
		Metadata: map[string]string{"name": s.Name},
	})
	return s, nil
}
