package user

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// PROVISION
// ======================================================

// Provision returns the local row for a verified identity, creating it on first sight.
type Provision struct {
	repo domain.Repository
}

func NewProvision(repo domain.Repository) *Provision {
	return &Provision{repo: repo}
}

func (uc *Provision) Execute(ctx context.Context, id *identity.Identity) (*models.User, error) {
	u, err := uc.repo.GetByID(ctx, id.Subject)
	if err == nil {
		return u, nil
	}
	if !httperr.Is(err, httperr.CodeUserNotFound) {
		return nil, err
	}

	// Token metadata is writable by the caller at sign-up; admin is never taken from it.
	role := domain.Normalize(id.Role)
	if !role.SelfAssignable() {
		role = domain.RoleCustomer
	}

	u = &models.User{
		ID:        id.Subject,
		Email:     identity.NormalizeEmail(id.Email),
		Phone:     id.Phone,
		Role:      role.String(),
		FirstName: id.FirstName,
		LastName:  id.LastName,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		// A concurrent request may have provisioned the same subject.
		if httperr.IsUniqueViolation(err) {
			return uc.repo.GetByID(ctx, id.Subject)
		}
		return nil, err
	}
	return u, nil
}

// ======================================================
// LIST
// ======================================================

type ListUsers struct {
	repo  domain.Repository
	authz authz.Authorizer
}

func NewListUsers(repo domain.Repository, authorizer authz.Authorizer) *ListUsers {
	return &ListUsers{repo: repo, authz: authorizer}
}

func (uc *ListUsers) Execute(ctx context.Context, actor *authz.Actor, f domain.ListFilter) ([]models.User, int64, error) {
	if err := uc.authz.Authorize(ctx, actor, authz.UserList, authz.Resource{}); err != nil {
		return nil, 0, err
	}
	if f.Role != "" {
		r, ok := domain.Parse(f.Role)
		if !ok {
			return nil, 0, httperr.Validation("invalid_role", "Geçersiz rol")
		}
		f.Role = r.String()
	}

	users, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, total, nil
}

// ======================================================
// SHOPS OF A USER
// ======================================================

type UserShopsResult struct {
	OwnedShops    []models.Shop `json:"ownedShops"`
	EmployeeShops []models.Shop `json:"employeeShops"`
	Role          string        `json:"role"`
}

type UserShops struct {
	repo  domain.Repository
	authz authz.Authorizer
}

func NewUserShops(repo domain.Repository, authorizer authz.Authorizer) *UserShops {
	return &UserShops{repo: repo, authz: authorizer}
}

func (uc *UserShops) Execute(ctx context.Context, actor *authz.Actor, userID string) (*UserShopsResult, error) {
	if err := uc.authz.Authorize(ctx, actor, authz.UserReadShops, authz.Resource{TargetID: userID}); err != nil {
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, err := uc.repo.OwnedShops(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	employed, err := uc.repo.EmployeeShops(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	out := &UserShopsResult{
		OwnedShops:    owned,
		EmployeeShops: employed,
		Role:          domain.Normalize(u.Role).String(),
	}
	if out.OwnedShops == nil {
		out.OwnedShops = []models.Shop{}
	}
	if out.EmployeeShops == nil {
		out.EmployeeShops = []models.Shop{}
	}
	return out, nil
}
