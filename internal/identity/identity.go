// Package identity abstracts the external auth service that owns user sessions.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = httperr.Unauthorized("invalid_credentials", "E-posta veya şifre hatalı")
	ErrInvalidToken       = httperr.Unauthorized("invalid_token", "Oturum geçersiz veya süresi dolmuş")
	ErrEmailTaken         = httperr.Validation("email_taken", "Bu e-posta adresi zaten kayıtlı")
	ErrWeakPassword       = httperr.Validation("weak_password", "Şifre en az 6 karakter olmalıdır")
	ErrEmailRequired      = httperr.Validation("email_required", "E-posta adresi zorunludur")
	ErrUnavailable        = httperr.Internal("identity_unavailable", nil)
)

// Identity is what a verified session tells us about its holder.
type Identity struct {
	Subject   string `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Session struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        Identity  `json:"user"`
}

type SignUpInput struct {
	Email     string
	Password  string
	Phone     string
	Role      string
	FirstName string
	LastName  string
}

type Provider interface {
	// SignUp may return a nil session when the provider requires email confirmation.
	SignUp(ctx context.Context, in SignUpInput) (*Identity, *Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	RecoverPassword(ctx context.Context, email, redirectTo string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateCredentials(email, password string) error {
	if NormalizeEmail(email) == "" {
		return ErrEmailRequired
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// FromClaims reads an Identity from token claims. The role lives in
// user_metadata and defaults to customer.
func FromClaims(claims jwt.MapClaims) Identity {
	meta := mapClaim(claims, "user_metadata")
	return Identity{
		Subject:   stringClaim(claims, "sub"),
		Email:     stringClaim(claims, "email"),
		Phone:     stringClaim(claims, "phone"),
		Role:      user.Normalize(stringClaim(meta, "role")).String(),
		FirstName: stringClaim(meta, "first_name"),
		LastName:  stringClaim(meta, "last_name"),
	}
}

// Metadata is the user_metadata payload written at sign-up.
func Metadata(in SignUpInput) map[string]any {
	return map[string]any{
		"role":       user.Normalize(in.Role).String(),
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
		"phone":      strings.TrimSpace(in.Phone),
	}
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func mapClaim(claims map[string]any, key string) map[string]any {
	if m, ok := claims[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
