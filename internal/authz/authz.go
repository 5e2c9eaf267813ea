// Package authz evaluates role and ownership rules with an embedded Rego policy.
package authz

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

//go:embed policy.rego
var policySource string

const query = "data.barbershop.authz.allow"

type Action string

const (
	ShopCreate           Action = "shop:create"
	ShopManage           Action = "shop:manage"
	UserList             Action = "user:list"
	UserReadShops        Action = "user:read_shops"
	UserReadAppointments Action = "user:read_appointments"
	ReviewCreate         Action = "review:create"
	AppointmentCreate    Action = "appointment:create"
	AppointmentCancel    Action = "appointment:cancel"
	AppointmentComplete  Action = "appointment:complete"
	AuditRead            Action = "audit:read"
)

type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Resource carries whatever the rule for an action needs; unused fields stay empty.
type Resource struct {
	OwnerID    string `json:"owner_id"`
	CustomerID string `json:"customer_id"`
	TargetID   string `json:"target_id"`
	IsStaff    bool   `json:"is_staff"`
}

type Authorizer interface {
	Authorize(ctx context.Context, actor *Actor, action Action, res Resource) error
}

type Policy struct {
	query rego.PreparedEvalQuery
}

var _ Authorizer = (*Policy)(nil)

func New(ctx context.Context) (*Policy, error) {
	pq, err := rego.New(
		rego.Query(query),
		rego.Module("policy.rego", policySource),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("authz: prepare policy: %w", err)
	}
	return &Policy{query: pq}, nil
}

// Authorize returns nil when allowed, ErrUnauthorized without an actor and
// ErrForbidden on deny.
func (p *Policy) Authorize(ctx context.Context, actor *Actor, action Action, res Resource) error {
	if actor == nil || actor.ID == "" {
		return httperr.ErrUnauthorized
	}

	input := map[string]any{
		"actor":    actor,
		"action":   string(action),
		"resource": res,
	}
	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return httperr.Internal("authz_eval_failed", err)
	}
	if !rs.Allowed() {
		return httperr.ErrForbidden
	}
	return nil
}
