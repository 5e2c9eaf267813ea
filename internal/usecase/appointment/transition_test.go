package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func bookedRepo() *fakeRepo {
	repo := seededRepo()
	repo.insert(&models.Appointment{
		ShopID:     1,
		CustomerID: "cust-1",
		Date:       time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "10:00",
		Status:     string(domain.StatusScheduled),
	})
	return repo
}

func TestCancelAppointment_Actors(t *testing.T) {
	tests := []struct {
		name  string
		actor *authz.Actor
		code  string
	}{
		{"customer", &authz.Actor{ID: "cust-1", Role: "customer"}, ""},
		{"owner", &authz.Actor{ID: "owner-1", Role: "barber"}, ""},
		{"staff", &authz.Actor{ID: "barber-1", Role: "barber"}, ""},
		{"admin", &authz.Actor{ID: "root", Role: "admin"}, ""},
		{"stranger", &authz.Actor{ID: "cust-2", Role: "customer"}, httperr.CodeForbidden},
		{"other owner", &authz.Actor{ID: "owner-2", Role: "barber"}, httperr.CodeForbidden},
		{"anonymous", nil, httperr.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := bookedRepo()
			ap, err := NewCancelAppointment(repo, newPolicy(t), audit.Nop{}).Execute(context.Background(), tt.actor, 1)

			if tt.code != "" {
				assert.True(t, httperr.Is(err, tt.code), "got %v", err)
				assert.Equal(t, string(domain.StatusScheduled), repo.apps[1].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), ap.Status)
			assert.NotNil(t, ap.CancelledAt)
			assert.Equal(t, string(domain.StatusCancelled), repo.apps[1].Status)
		})
	}
}

func TestCompleteAppointment_CustomerCannotComplete(t *testing.T) {
	repo := bookedRepo()
	uc := NewCompleteAppointment(repo, newPolicy(t), audit.Nop{})

	_, err := uc.Execute(context.Background(), &authz.Actor{ID: "cust-1", Role: "customer"}, 1)
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	ap, err := uc.Execute(context.Background(), &authz.Actor{ID: "barber-1", Role: "barber"}, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)
}

func TestTransitions_OnlyFromScheduled(t *testing.T) {
	repo := bookedRepo()
	owner := &authz.Actor{ID: "owner-1", Role: "barber"}

	_, err := NewCancelAppointment(repo, newPolicy(t), audit.Nop{}).Execute(context.Background(), owner, 1)
	require.NoError(t, err)

	_, err = NewCancelAppointment(repo, newPolicy(t), audit.Nop{}).Execute(context.Background(), owner, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = NewCompleteAppointment(repo, newPolicy(t), audit.Nop{}).Execute(context.Background(), owner, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelAppointment_NotFound(t *testing.T) {
	_, err := NewCancelAppointment(seededRepo(), newPolicy(t), audit.Nop{}).
		Execute(context.Background(), &authz.Actor{ID: "root", Role: "admin"}, 42)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}
