package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type UserAppointments struct {
	Appointments []models.Appointment `json:"appointments"`
	UserID       string               `json:"userId"`
	UserRole     string               `json:"userRole"`
}

type ListForUser struct {
	repo  domain.Repository
	users UserLookup
	authz authz.Authorizer
}

func NewListForUser(repo domain.Repository, users UserLookup, authorizer authz.Authorizer) *ListForUser {
	return &ListForUser{repo: repo, users: users, authz: authorizer}
}

// Execute lists bookings made by a customer, or bookings taken by the shops
// a barber or employee works for.
func (uc *ListForUser) Execute(
	ctx context.Context,
	actor *authz.Actor,
	userID string,
) (*UserAppointments, error) {

	if err := uc.authz.Authorize(ctx, actor, authz.UserReadAppointments, authz.Resource{TargetID: userID}); err != nil {
		return nil, err
	}

	target, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role := user.Normalize(target.Role)

	var apps []models.Appointment
	if role.CanBeStaff() {
		apps, err = uc.repo.ListForStaff(ctx, target.ID)
	} else {
		apps, err = uc.repo.ListForCustomer(ctx, target.ID)
	}
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}

	return &UserAppointments{
		Appointments: apps,
		UserID:       target.ID,
		UserRole:     role.String(),
	}, nil
}
