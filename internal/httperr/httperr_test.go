package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (int, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond_MapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{Validation("invalid_rating", "Puan 1 ile 5 arasında olmalı"), http.StatusBadRequest, "invalid_rating"},
		{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{ErrForbidden, http.StatusForbidden, CodeForbidden},
		{ErrShopNotFound, http.StatusNotFound, CodeShopNotFound},
		{fmt.Errorf("wrapped: %w", ErrForbidden), http.StatusForbidden, CodeForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		status, body := respond(t, tc.err)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Error)
	}
}

func TestRespond_InternalHidesCause(t *testing.T) {
	status, body := respond(t, Internal("create_failed", errors.New("pq: secret detail")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, MsgInternal, body.Error)
}

func TestRespond_UniqueViolationIsValidation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	status, body := respond(t, fmt.Errorf("insert: %w", pgErr))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeAlreadyExists, body.Code)
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Validation("slot_full", "dolu"))
	assert.True(t, Is(err, "slot_full"))
	assert.False(t, Is(err, "too_soon"))
	assert.False(t, Is(errors.New("slot_full"), "slot_full"))
}
