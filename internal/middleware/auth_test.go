package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type providerMock struct {
	mock.Mock
	identity.Provider
}

func (m *providerMock) Verify(_ context.Context, token string) (*identity.Identity, error) {
	args := m.Called(token)
	id, _ := args.Get(0).(*identity.Identity)
	return id, args.Error(1)
}

type provisionFunc func(ctx context.Context, id *identity.Identity) (*models.User, error)

func (f provisionFunc) Execute(ctx context.Context, id *identity.Identity) (*models.User, error) {
	return f(ctx, id)
}

func provisionAs(role string) provisionFunc {
	return func(_ context.Context, id *identity.Identity) (*models.User, error) {
		return &models.User{ID: id.Subject, Role: role}, nil
	}
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", TokenFromRequest(c))

	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(c))

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, TokenFromRequest(c))
}

func TestSessionAndRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prov := new(providerMock)
	prov.On("Verify", "good").Return(&identity.Identity{Subject: "u-1", Role: "barber"}, nil)
	prov.On("Verify", "bad").Return(nil, identity.ErrInvalidToken)

	r := gin.New()
	r.Use(Session(prov, provisionAs("Barber")))
	r.GET("/open", func(c *gin.Context) {
		if a := Actor(c); a != nil {
			c.String(http.StatusOK, a.ID+":"+a.Role)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/closed", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, "u-1:barber", do("/open", "good").Body.String())
	assert.Equal(t, "anonymous", do("/open", "bad").Body.String())
	assert.Equal(t, "anonymous", do("/open", "").Body.String())

	assert.Equal(t, http.StatusNoContent, do("/closed", "good").Code)
	w := do("/closed", "bad")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Yetkisiz erişim","code":"unauthorized"}`, w.Body.String())
}
