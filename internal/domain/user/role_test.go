package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, RoleBarber, Normalize(" Barber "))
	assert.Equal(t, RoleAdmin, Normalize("ADMIN"))
	assert.Equal(t, RoleCustomer, Normalize(""))
	assert.Equal(t, RoleCustomer, Normalize("superuser"))
}

func TestParse(t *testing.T) {
	r, ok := Parse("Employee")
	assert.True(t, ok)
	assert.Equal(t, RoleEmployee, r)

	_, ok = Parse("owner")
	assert.False(t, ok)
}

func TestCapabilities(t *testing.T) {
	cases := []struct {
		role        Role
		owns, staff bool
	}{
		{RoleCustomer, false, false},
		{RoleBarber, true, true},
		{RoleEmployee, false, true},
		{RoleAdmin, true, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.owns, tc.role.CanOwnShop(), tc.role)
		assert.Equal(t, tc.staff, tc.role.CanBeStaff(), tc.role)
	}
	assert.False(t, RoleAdmin.SelfAssignable())
	assert.True(t, RoleBarber.SelfAssignable())
}
