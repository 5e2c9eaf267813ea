package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
	ContextIdentity = "identity"
	ContextToken    = "accessToken"

	SessionCookie = "access_token"
)

type Provisioner interface {
	Execute(ctx context.Context, id *identity.Identity) (*models.User, error)
}

// TokenFromRequest reads the session cookie, then the bearer header.
func TokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Session resolves the caller when a token is present. It never aborts:
// anonymous requests continue without context values.
func Session(provider identity.Provider, users Provisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		id, err := provider.Verify(c.Request.Context(), token)
		if err != nil {
			if !httperr.Is(err, identity.ErrInvalidToken.Code) {
				logging.FromContext(c).WithError(err).Warn("session verification failed")
			}
			c.Next()
			return
		}

		u, err := users.Execute(c.Request.Context(), id)
		if err != nil {
			logging.FromContext(c).WithError(err).Error("user provisioning failed")
			c.Next()
			return
		}

		c.Set(ContextIdentity, id)
		c.Set(ContextToken, token)
		c.Set(ContextUser, u)
		c.Set(ContextUserID, u.ID)
		c.Set(ContextUserRole, user.Normalize(u.Role).String())

		logging.WithEntry(c, logging.FromContext(c).WithField("user_id", u.ID))
		c.Next()
	}
}

// RequireAuth rejects requests that Session did not resolve.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			httperr.Abort(c, httperr.KindUnauthorized.Status(), httperr.CodeUnauthorized, httperr.MsgUnauthorized)
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func CurrentIdentity(c *gin.Context) *identity.Identity {
	if v, ok := c.Get(ContextIdentity); ok {
		if id, ok := v.(*identity.Identity); ok {
			return id
		}
	}
	return nil
}

// Actor is nil for anonymous requests.
func Actor(c *gin.Context) *authz.Actor {
	u := CurrentUser(c)
	if u == nil {
		return nil
	}
	return &authz.Actor{ID: u.ID, Role: user.Normalize(u.Role).String()}
}
