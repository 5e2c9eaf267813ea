package shop

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/imaging"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	shops     map[uint]*models.Shop
	employees map[uint][]string
	services  []models.Service
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:     map[uint]*models.Shop{1: {ID: 1, OwnerID: "owner-1", Name: "Makas", Timezone: "UTC"}},
		employees: map[uint][]string{},
	}
}

func (r *fakeRepo) List(_ context.Context, _ domain.ListFilter) ([]models.Shop, int64, error) {
	var out []models.Shop
	for _, s := range r.shops {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*models.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, httperr.ErrShopNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetDetail(ctx context.Context, id uint) (*models.Shop, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) Create(_ context.Context, s *models.Shop) error {
	s.ID = uint(len(r.shops) + 1)
	r.shops[s.ID] = s
	return nil
}

func (r *fakeRepo) Update(_ context.Context, s *models.Shop) error {
	r.shops[s.ID] = s
	return nil
}

func (r *fakeRepo) ListEmployees(_ context.Context, shopID uint) ([]models.User, error) {
	var out []models.User
	for _, id := range r.employees[shopID] {
		out = append(out, models.User{ID: id})
	}
	return out, nil
}

func (r *fakeRepo) IsEmployee(_ context.Context, shopID uint, userID string) (bool, error) {
	for _, id := range r.employees[shopID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) AddEmployee(_ context.Context, shopID uint, userID string) error {
	r.employees[shopID] = append(r.employees[shopID], userID)
	return nil
}

func (r *fakeRepo) RemoveEmployee(_ context.Context, shopID uint, userID string) (bool, error) {
	ids := r.employees[shopID]
	for i, id := range ids {
		if id == userID {
			r.employees[shopID] = append(ids[:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListServices(_ context.Context, shopID uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.ShopID != nil && *s.ShopID == shopID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListCatalog(context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.ShopID == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateService(_ context.Context, svc *models.Service) error {
	svc.ID = uint(len(r.services) + 1)
	r.services = append(r.services, *svc)
	return nil
}

type userMap map[string]*models.User

func (m userMap) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, httperr.ErrUserNotFound
	}
	return u, nil
}

type uploaderMock struct {
	mock.Mock
}

func (m *uploaderMock) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	args := m.Called(key, contentType)
	return args.String(0), args.Error(1)
}

func newPolicy(t *testing.T) *authz.Policy {
	t.Helper()
	p, err := authz.New(context.Background())
	require.NoError(t, err)
	return p
}

var (
	owner    = &authz.Actor{ID: "owner-1", Role: "barber"}
	admin    = &authz.Actor{ID: "root", Role: "admin"}
	customer = &authz.Actor{ID: "cust-1", Role: "customer"}
)

// ======================================================
// TESTS
// ======================================================

func TestCreateShop_RoleGate(t *testing.T) {
	tests := []struct {
		name  string
		actor *authz.Actor
		err   error
	}{
		{"customer", customer, httperr.ErrForbidden},
		{"employee", &authz.Actor{ID: "e", Role: "employee"}, httperr.ErrForbidden},
		{"anonymous", nil, httperr.ErrUnauthorized},
		{"barber", owner, nil},
		{"admin", admin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			s, err := NewCreateShop(repo, newPolicy(t), audit.Nop{}).Execute(context.Background(), CreateShopInput{
				Actor: tt.actor,
				Name:  "  Yeni Dükkan ",
			})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Len(t, repo.shops, 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Yeni Dükkan", s.Name)
			assert.Equal(t, tt.actor.ID, s.OwnerID)
			assert.NotEmpty(t, s.Timezone)
		})
	}
}

func TestCreateShop_Validation(t *testing.T) {
	uc := NewCreateShop(newFakeRepo(), newPolicy(t), audit.Nop{})

	_, err := uc.Execute(context.Background(), CreateShopInput{Actor: owner, Name: "   "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = uc.Execute(context.Background(), CreateShopInput{Actor: owner, Name: "X", Timezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
}

func TestAddEmployee(t *testing.T) {
	users := userMap{
		"barber-2": {ID: "barber-2", Role: "barber"},
		"emp-1":    {ID: "emp-1", Role: "employee"},
		"cust-2":   {ID: "cust-2", Role: "customer"},
		"admin-2":  {ID: "admin-2", Role: "admin"},
	}

	tests := []struct {
		name   string
		actor  *authz.Actor
		target string
		err    error
	}{
		{"barber target", owner, "barber-2", nil},
		{"employee target by admin", admin, "emp-1", nil},
		{"customer target", owner, "cust-2", domain.ErrInvalidStaffRole},
		{"admin target", owner, "admin-2", domain.ErrInvalidStaffRole},
		{"unknown target", owner, "ghost", httperr.ErrUserNotFound},
		{"not the owner", &authz.Actor{ID: "barber-2", Role: "barber"}, "emp-1", httperr.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			err := NewAddEmployee(repo, users, newPolicy(t), audit.Nop{}).Execute(context.Background(), tt.actor, 1, tt.target)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, repo.employees[1])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.target}, repo.employees[1])
		})
	}
}

func TestAddEmployee_AlreadyEmployee(t *testing.T) {
	repo := newFakeRepo()
	repo.employees[1] = []string{"emp-1"}
	users := userMap{"emp-1": {ID: "emp-1", Role: "employee"}}

	err := NewAddEmployee(repo, users, newPolicy(t), audit.Nop{}).Execute(context.Background(), owner, 1, "emp-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyEmployee)
}

func TestAddEmployee_UnknownShop(t *testing.T) {
	err := NewAddEmployee(newFakeRepo(), userMap{}, newPolicy(t), audit.Nop{}).Execute(context.Background(), admin, 9, "x")
	assert.ErrorIs(t, err, httperr.ErrShopNotFound)
}

func TestRemoveEmployee(t *testing.T) {
	repo := newFakeRepo()
	repo.employees[1] = []string{"emp-1"}
	uc := NewRemoveEmployee(repo, newPolicy(t), audit.Nop{})

	require.NoError(t, uc.Execute(context.Background(), owner, 1, "emp-1"))
	assert.Empty(t, repo.employees[1])

	assert.ErrorIs(t, uc.Execute(context.Background(), owner, 1, "emp-1"), domain.ErrNotEmployee)
	assert.ErrorIs(t, uc.Execute(context.Background(), customer, 1, "emp-1"), httperr.ErrForbidden)
}

func TestCreateService(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateService(repo, newPolicy(t), audit.Nop{})

	svc, err := uc.Execute(context.Background(), CreateServiceInput{Actor: owner, ShopID: 1, Name: "Fön", Price: 150})
	require.NoError(t, err)
	require.NotNil(t, svc.ShopID)
	assert.Equal(t, uint(1), *svc.ShopID)
	assert.Equal(t, domain.DefaultServiceDuration, svc.Duration)

	_, err = uc.Execute(context.Background(), CreateServiceInput{Actor: owner, ShopID: 1, Name: ""})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = uc.Execute(context.Background(), CreateServiceInput{Actor: customer, ShopID: 1, Name: "Fön"})
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	services, err := NewQueries(repo).ListServices(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, services, 1)
}

func TestQueries_EmptyListsAreNotNil(t *testing.T) {
	q := NewQueries(newFakeRepo())

	employees, err := q.ListEmployees(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, employees)

	catalog, err := q.ListCatalog(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, catalog)

	_, err = q.ListServices(context.Background(), 5)
	assert.ErrorIs(t, err, httperr.ErrShopNotFound)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	t.Run("storage disabled", func(t *testing.T) {
		_, err := NewUploadImage(newFakeRepo(), newPolicy(t), audit.Nop{}, nil).
			Execute(context.Background(), owner, 1, pngBytes(t))
		assert.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run("stores the public url", func(t *testing.T) {
		up := new(uploaderMock)
		up.On("Put", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "shops/1/") && strings.HasSuffix(key, ".webp")
		}), imaging.ContentType).Return("https://cdn.example.com/shops/1/a.webp", nil).Once()

		repo := newFakeRepo()
		s, err := NewUploadImage(repo, newPolicy(t), audit.Nop{}, up).Execute(context.Background(), owner, 1, pngBytes(t))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/shops/1/a.webp", s.ImageURL)
		assert.Equal(t, s.ImageURL, repo.shops[1].ImageURL)
		up.AssertExpectations(t)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := NewUploadImage(newFakeRepo(), newPolicy(t), audit.Nop{}, new(uploaderMock)).
			Execute(context.Background(), owner, 1, []byte("not an image"))
		assert.ErrorIs(t, err, imaging.ErrUnsupported)
	})

	t.Run("customer forbidden", func(t *testing.T) {
		_, err := NewUploadImage(newFakeRepo(), newPolicy(t), audit.Nop{}, new(uploaderMock)).
			Execute(context.Background(), customer, 1, pngBytes(t))
		assert.ErrorIs(t, err, httperr.ErrForbidden)
	})
}
