package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// loadForActor fetches the appointment and its shop and runs the policy for action.
func loadForActor(
	ctx context.Context,
	repo domain.Repository,
	authorizer authz.Authorizer,
	actor *authz.Actor,
	action authz.Action,
	appointmentID uint,
) (*models.Appointment, *models.Shop, error) {

	if actor == nil || actor.ID == "" {
		return nil, nil, authorizer.Authorize(ctx, actor, action, authz.Resource{})
	}

	ap, err := repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	shop, err := repo.GetShop(ctx, ap.ShopID)
	if err != nil {
		return nil, nil, err
	}

	isStaff, err := repo.IsStaff(ctx, shop.ID, actor.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := authorizer.Authorize(ctx, actor, action, authz.Resource{
		OwnerID:    shop.OwnerID,
		CustomerID: ap.CustomerID,
		IsStaff:    isStaff,
	}); err != nil {
		return nil, nil, err
	}
	return ap, shop, nil
}
