package shop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ======================================================
// ADD EMPLOYEE
// ======================================================

type AddEmployee struct {
	repo  domain.Repository
	users UserLookup
	authz authz.Authorizer
	audit audit.Recorder
}

func NewAddEmployee(
	repo domain.Repository,
	users UserLookup,
	authorizer authz.Authorizer,
	recorder audit.Recorder,
) *AddEmployee {
	return &AddEmployee{repo: repo, users: users, authz: authorizer, audit: recorder}
}

func (uc *AddEmployee) Execute(ctx context.Context, actor *authz.Actor, shopID uint, userID string) error {
	s, err := authorizeManage(ctx, uc.repo, uc.authz, actor, shopID)
	if err != nil {
		return err
	}

	if userID == "" {
		return httperr.Validation(httperr.CodeInvalidInput, httperr.MsgInvalidInput)
	}
	target, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Normalize(target.Role).CanBeStaff() {
		return domain.ErrInvalidStaffRole
	}

	already, err := uc.repo.IsEmployee(ctx, s.ID, target.ID)
	if err != nil {
		return err
	}
	if already {
		return domain.ErrAlreadyEmployee
	}

	if err := uc.repo.AddEmployee(ctx, s.ID, target.ID); err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrAlreadyEmployee
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &s.ID,
		UserID:   &actor.ID,
		Action:   "employee_added",
		Entity:   "shop",
		EntityID: &s.ID,
		Metadata: map[string]string{"employeeId": target.ID},
	})
	return nil
}

// ======================================================
// REMOVE EMPLOYEE
// ======================================================

type RemoveEmployee struct {
	repo  domain.Repository
	authz authz.Authorizer
	audit audit.Recorder
}

func NewRemoveEmployee(repo domain.Repository, authorizer authz.Authorizer, recorder audit.Recorder) *RemoveEmployee {
	return &RemoveEmployee{repo: repo, authz: authorizer, audit: recorder}
}

func (uc *RemoveEmployee) Execute(ctx context.Context, actor *authz.Actor, shopID uint, userID string) error {
	s, err := authorizeManage(ctx, uc.repo, uc.authz, actor, shopID)
	if err != nil {
		return err
	}

	removed, err := uc.repo.RemoveEmployee(ctx, s.ID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotEmployee
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &s.ID,
		UserID:   &actor.ID,
		Action:   "employee_removed",
		Entity:   "shop",
		EntityID: &s.ID,
		Metadata: map[string]string{"employeeId": userID},
	})
	return nil
}
