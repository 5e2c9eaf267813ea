package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	errShopMissing    = httperr.ErrShopNotFound
	errServiceMissing = httperr.ErrServiceNotFound
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishAppointmentBooked(ctx context.Context, ev events.AppointmentBooked) error {
	return m.Called(ev).Error(0)
}

func newPolicy(t *testing.T) *authz.Policy {
	t.Helper()
	p, err := authz.New(context.Background())
	require.NoError(t, err)
	return p
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.shops[1] = &models.Shop{ID: 1, OwnerID: "owner-1", Name: "Makas", Timezone: "Europe/Istanbul"}
	repo.shops[2] = &models.Shop{ID: 2, OwnerID: "owner-2", Name: "Usta", Timezone: "UTC"}
	repo.staff[1] = []string{"barber-1"}
	shopTwo := uint(2)
	repo.services[10] = &models.Service{ID: 10, Name: "Saç Kesimi"}
	repo.services[20] = &models.Service{ID: 20, ShopID: &shopTwo, Name: "Sakal"}
	return repo
}

func newCreate(t *testing.T, repo *fakeRepo, opts Options) *CreateAppointment {
	t.Helper()
	uc := NewCreateAppointment(repo, newPolicy(t), audit.Nop{}, events.NopPublisher{}, opts)
	uc.now = func() time.Time { return time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC) }
	return uc
}

var customer = &authz.Actor{ID: "cust-1", Role: "customer"}

func TestCreateAppointment_Succeeds(t *testing.T) {
	repo := seededRepo()
	pub := new(publisherMock)
	pub.On("PublishAppointmentBooked", mock.MatchedBy(func(ev events.AppointmentBooked) bool {
		return ev.ShopID == 1 && ev.Date == "2030-03-04" && ev.TimeSlot == "10:30"
	})).Return(nil).Once()

	uc := NewCreateAppointment(repo, newPolicy(t), audit.Nop{}, pub, Options{})
	uc.now = func() time.Time { return time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC) }

	svc := uint(10)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Actor:     customer,
		ShopID:    1,
		Date:      "2030-03-04",
		TimeSlot:  "10:30",
		ServiceID: &svc,
		Notes:     "  kısa kesim  ",
	})
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, "cust-1", ap.CustomerID)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "kısa kesim", ap.Notes)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), ap.Date)
	pub.AssertExpectations(t)
}

func TestCreateAppointment_Rejections(t *testing.T) {
	otherShopService := uint(20)
	missingService := uint(99)

	tests := []struct {
		name  string
		actor *authz.Actor
		in    CreateAppointmentInput
		code  string
	}{
		{"no session", nil, CreateAppointmentInput{ShopID: 1, Date: "2030-03-04", TimeSlot: "10:00"}, httperr.CodeUnauthorized},
		{"unknown shop", customer, CreateAppointmentInput{ShopID: 7, Date: "2030-03-04", TimeSlot: "10:00"}, httperr.CodeShopNotFound},
		{"bad date", customer, CreateAppointmentInput{ShopID: 1, Date: "04/03/2030", TimeSlot: "10:00"}, "invalid_date"},
		{"missing date", customer, CreateAppointmentInput{ShopID: 1, TimeSlot: "10:00"}, "date_required"},
		{"off grid", customer, CreateAppointmentInput{ShopID: 1, Date: "2030-03-04", TimeSlot: "10:15"}, "invalid_time_slot"},
		{"after closing", customer, CreateAppointmentInput{ShopID: 1, Date: "2030-03-04", TimeSlot: "17:00"}, "invalid_time_slot"},
		{"in the past", customer, CreateAppointmentInput{ShopID: 1, Date: "2030-02-28", TimeSlot: "10:00"}, "too_soon"},
		{"foreign service", customer, CreateAppointmentInput{ShopID: 1, Date: "2030-03-04", TimeSlot: "10:00", ServiceID: &otherShopService}, "service_not_in_shop"},
		{"missing service", customer, CreateAppointmentInput{ShopID: 1, Date: "2030-03-04", TimeSlot: "10:00", ServiceID: &missingService}, "service_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo()
			in := tt.in
			in.Actor = tt.actor

			_, err := newCreate(t, repo, Options{}).Execute(context.Background(), in)

			require.Error(t, err)
			assert.True(t, httperr.Is(err, tt.code), "got %v", err)
			assert.Empty(t, repo.apps)
		})
	}
}

func TestCreateAppointment_NotesTooLong(t *testing.T) {
	long := make([]rune, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err := newCreate(t, seededRepo(), Options{}).Execute(context.Background(), CreateAppointmentInput{
		Actor: customer, ShopID: 1, Date: "2030-03-04", TimeSlot: "10:00", Notes: string(long),
	})
	assert.ErrorIs(t, err, ErrNotesTooLong)
}

func TestCreateAppointment_PublishFailureDoesNotFailBooking(t *testing.T) {
	pub := new(publisherMock)
	pub.On("PublishAppointmentBooked", mock.Anything).Return(assert.AnError)

	uc := NewCreateAppointment(seededRepo(), newPolicy(t), audit.Nop{}, pub, Options{})
	uc.now = func() time.Time { return time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC) }

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Actor: customer, ShopID: 1, Date: "2030-03-04", TimeSlot: "09:00",
	})
	assert.NoError(t, err)
}

func bookConcurrently(t *testing.T, uc *CreateAppointment, n int) []error {
	t.Helper()
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateAppointmentInput{
				Actor:    &authz.Actor{ID: "cust-" + string(rune('a'+i)), Role: "customer"},
				ShopID:   1,
				Date:     "2030-03-04",
				TimeSlot: "11:00",
			})
		}(i)
	}
	wg.Wait()
	return errs
}

func TestCreateAppointment_ConcurrentSameSlotBothSucceedByDefault(t *testing.T) {
	repo := seededRepo()
	errs := bookConcurrently(t, newCreate(t, repo, Options{}), 2)

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, repo.apps, 2)
}

func TestCreateAppointment_EnforcedCapacityRejectsSecond(t *testing.T) {
	repo := seededRepo() // shop 1 has one staff member
	errs := bookConcurrently(t, newCreate(t, repo, Options{EnforceCapacity: true}), 2)

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.Is(err, domain.ErrSlotFull.Code):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)
	assert.Len(t, repo.apps, 1)
}

func TestCreateAppointment_EnforcedCapacityUsesLegacyCountWithoutStaff(t *testing.T) {
	repo := seededRepo()
	repo.staff[1] = nil
	errs := bookConcurrently(t, newCreate(t, repo, Options{EnforceCapacity: true}), 3)

	full := 0
	for _, err := range errs {
		if err != nil {
			require.True(t, httperr.Is(err, domain.ErrSlotFull.Code))
			full++
		}
	}
	assert.Equal(t, 1, full)
	assert.Len(t, repo.apps, domain.LegacyStaffCount)
}
