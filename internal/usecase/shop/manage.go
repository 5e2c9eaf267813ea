package shop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// authorizeManage loads the shop and checks that the actor owns it or is an admin.
func authorizeManage(
	ctx context.Context,
	repo domain.Repository,
	authorizer authz.Authorizer,
	actor *authz.Actor,
	shopID uint,
) (*models.Shop, error) {

	if actor == nil || actor.ID == "" {
		return nil, authorizer.Authorize(ctx, actor, authz.ShopManage, authz.Resource{})
	}

	s, err := repo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := authorizer.Authorize(ctx, actor, authz.ShopManage, authz.Resource{OwnerID: s.OwnerID}); err != nil {
		return nil, err
	}
	return s, nil
}
