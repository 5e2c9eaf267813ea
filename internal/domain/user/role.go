package user

import "strings"

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBarber   Role = "barber"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Normalize lowercases the role and falls back to customer for empty or unknown values.
func Normalize(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return RoleCustomer
	}
	return r
}

// Parse is strict: unknown roles are rejected instead of defaulted.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleBarber, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// CanOwnShop: only barbers and admins may open a shop.
func (r Role) CanOwnShop() bool {
	return r == RoleBarber || r == RoleAdmin
}

// CanBeStaff: only barbers and employees may be attached to a shop.
func (r Role) CanBeStaff() bool {
	return r == RoleBarber || r == RoleEmployee
}

// SelfAssignable lists the roles accepted at sign-up.
func (r Role) SelfAssignable() bool {
	return r.Valid() && r != RoleAdmin
}
