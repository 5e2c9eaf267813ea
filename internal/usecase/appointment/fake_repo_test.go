package appointment

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type fakeRepo struct {
	mu       sync.Mutex
	shops    map[uint]*models.Shop
	staff    map[uint][]string
	services map[uint]*models.Service
	apps     map[uint]*models.Appointment
	nextID   uint
	counts   map[string]int64
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:    map[uint]*models.Shop{},
		staff:    map[uint][]string{},
		services: map[uint]*models.Service{},
		apps:     map[uint]*models.Appointment{},
		counts:   map[string]int64{},
	}
}

func (r *fakeRepo) GetShop(_ context.Context, id uint) (*models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[id]
	if !ok {
		return nil, errShopMissing
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) CountStaff(_ context.Context, shopID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.staff[shopID])), nil
}

func (r *fakeRepo) IsStaff(_ context.Context, shopID uint, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.staff[shopID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, errServiceMissing
	}
	return s, nil
}

func (r *fakeRepo) CountByDay(_ context.Context, _ uint, _, _ string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(ap)
	return nil
}

func (r *fakeRepo) CreateWithinCapacity(_ context.Context, ap *models.Appointment, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := 0
	for _, a := range r.apps {
		if a.ShopID == ap.ShopID && a.Date.Equal(ap.Date) && a.TimeSlot == ap.TimeSlot &&
			a.Status == string(domain.StatusScheduled) {
			taken++
		}
	}
	if taken >= capacity {
		return domain.ErrSlotFull
	}
	r.insert(ap)
	return nil
}

func (r *fakeRepo) insert(ap *models.Appointment) {
	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.apps[ap.ID] = &cp
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ap
	r.apps[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListForCustomer(_ context.Context, customerID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.apps {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForStaff(_ context.Context, userID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.apps {
		shop := r.shops[a.ShopID]
		works := shop != nil && shop.OwnerID == userID
		for _, id := range r.staff[a.ShopID] {
			works = works || id == userID
		}
		if works {
			out = append(out, *a)
		}
	}
	return out, nil
}
