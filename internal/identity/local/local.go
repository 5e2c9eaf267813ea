// Package local is the development identity provider backed by the users table.
package local

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	purposeRecovery = "recovery"
	recoveryTTL     = 30 * time.Minute
)

// Store is the slice of the user repository the provider needs.
type Store interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
}

// RecoveryFunc receives the token minted by RecoverPassword.
type RecoveryFunc func(ctx context.Context, email, token, redirectTo string)

type Provider struct {
	store      Store
	secret     []byte
	ttl        time.Duration
	now        func() time.Time
	onRecovery RecoveryFunc
}

var _ identity.Provider = (*Provider)(nil)

func New(store Store, secret string, ttl time.Duration, log *logrus.Logger) *Provider {
	return &Provider{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		onRecovery: func(_ context.Context, email, token, redirectTo string) {
			log.WithFields(logrus.Fields{
				"email":       email,
				"redirect_to": redirectTo,
				"token":       token,
			}).Info("password recovery token issued")
		},
	}
}

// WithRecovery replaces the default recovery sink.
func (p *Provider) WithRecovery(fn RecoveryFunc) *Provider {
	p.onRecovery = fn
	return p
}

func (p *Provider) SignUp(ctx context.Context, in identity.SignUpInput) (*identity.Identity, *identity.Session, error) {
	if err := identity.ValidateCredentials(in.Email, in.Password); err != nil {
		return nil, nil, err
	}
	email := identity.NormalizeEmail(in.Email)

	existing, err := p.store.GetByEmail(ctx, email)
	if err != nil && !httperr.Is(err, httperr.CodeUserNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, identity.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, httperr.Internal("hash_failed", err)
	}

	meta := identity.Metadata(in)
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Phone:        meta["phone"].(string),
		Role:         meta["role"].(string),
		FirstName:    meta["first_name"].(string),
		LastName:     meta["last_name"].(string),
		PasswordHash: string(hash),
	}
	if err := p.store.Create(ctx, u); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, nil, identity.ErrEmailTaken
		}
		return nil, nil, err
	}

	sess, err := p.issue(u)
	if err != nil {
		return nil, nil, err
	}
	return &sess.User, sess, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	u, err := p.store.GetByEmail(ctx, identity.NormalizeEmail(email))
	if err != nil {
		if httperr.Is(err, httperr.CodeUserNotFound) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, identity.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, identity.ErrInvalidCredentials
	}
	return p.issue(u)
}

// SignOut is a no-op: access tokens are stateless and expire on their own.
func (p *Provider) SignOut(context.Context, string) error {
	return nil
}

// RecoverPassword never reveals whether the email is registered.
func (p *Provider) RecoverPassword(ctx context.Context, email, redirectTo string) error {
	u, err := p.store.GetByEmail(ctx, identity.NormalizeEmail(email))
	if err != nil {
		if httperr.Is(err, httperr.CodeUserNotFound) {
			return nil
		}
		return err
	}

	now := p.now()
	token, err := p.sign(jwt.MapClaims{
		"sub":     u.ID,
		"email":   u.Email,
		"purpose": purposeRecovery,
		"pwv":     p.passwordVersion(u),
		"iat":     now.Unix(),
		"exp":     now.Add(recoveryTTL).Unix(),
	})
	if err != nil {
		return err
	}
	p.onRecovery(ctx, u.Email, token, redirectTo)
	return nil
}

func (p *Provider) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < identity.MinPasswordLength {
		return identity.ErrWeakPassword
	}
	claims, err := p.parse(token)
	if err != nil || claims["purpose"] != purposeRecovery {
		return identity.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	u, err := p.store.GetByID(ctx, sub)
	if err != nil {
		if httperr.Is(err, httperr.CodeUserNotFound) {
			return identity.ErrInvalidToken
		}
		return err
	}
	if v, _ := claims["pwv"].(string); !hmac.Equal([]byte(v), []byte(p.passwordVersion(u))) {
		return identity.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return httperr.Internal("hash_failed", err)
	}
	u.PasswordHash = string(hash)
	return p.store.Update(ctx, u)
}

func (p *Provider) Verify(_ context.Context, accessToken string) (*identity.Identity, error) {
	claims, err := p.parse(accessToken)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}
	if _, isRecovery := claims["purpose"]; isRecovery {
		return nil, identity.ErrInvalidToken
	}
	id := identity.FromClaims(claims)
	if id.Subject == "" {
		return nil, identity.ErrInvalidToken
	}
	return &id, nil
}

// ====================================================
// Tokens
// ====================================================

func (p *Provider) issue(u *models.User) (*identity.Session, error) {
	now := p.now()
	exp := now.Add(p.ttl)

	token, err := p.sign(jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"phone": u.Phone,
		"user_metadata": map[string]any{
			"role":       u.Role,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
		},
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &identity.Session{
		AccessToken: token,
		ExpiresAt:   exp,
		User: identity.Identity{
			Subject:   u.ID,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.Role,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		},
	}, nil
}

// passwordVersion fingerprints the current hash, so a recovery token stops
// working once the password it was issued against has changed.
func (p *Provider) passwordVersion(u *models.User) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(u.ID + ":" + u.PasswordHash))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

func (p *Provider) sign(claims jwt.MapClaims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", httperr.Internal("token_sign_failed", err)
	}
	return token, nil
}

func (p *Provider) parse(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
