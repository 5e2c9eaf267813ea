package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	authz authz.Authorizer
	audit audit.Recorder
}

func NewCancelAppointment(
	repo domain.Repository,
	authorizer authz.Authorizer,
	recorder audit.Recorder,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		authz: authorizer,
		audit: recorder,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor *authz.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, shop, err := loadForActor(ctx, uc.repo, uc.authz, actor, authz.AppointmentCancel, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, timezone.NowIn(shop.Timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &shop.ID,
		UserID:   &actor.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
