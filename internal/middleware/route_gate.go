package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
)

const UnauthorizedPath = "/unauthorized"

var authOnlyPaths = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
	"/reset-password":  true,
}

func isProtected(path string) bool {
	return path == "/dashboard" || strings.HasPrefix(path, "/dashboard/")
}

// Decide returns the redirect target for a page request, or "" to pass through.
// role is the session's metadata role; it defaults to customer.
func Decide(path string, authenticated bool, role string) string {
	switch {
	case isProtected(path) && !authenticated:
		return UnauthorizedPath
	case authOnlyPaths[path] && authenticated:
		return DashboardPath(role)
	default:
		return ""
	}
}

func DashboardPath(role string) string {
	return "/dashboard/" + user.Normalize(role).String()
}

// RouteGate applies Decide to page routes. It runs after Session.
func RouteGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var role string
		authenticated := false
		if id := CurrentIdentity(c); id != nil {
			authenticated = true
			role = id.Role
		}

		if target := Decide(c.Request.URL.Path, authenticated, role); target != "" {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
