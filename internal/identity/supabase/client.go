// Package supabase talks to a Supabase GoTrue instance over its REST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
)

type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
	Timeout   time.Duration
}

// apiError is a non-2xx answer from GoTrue.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gotrue: status %d: %s", e.Status, e.Body)
}

type Provider struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *logrus.Logger
}

var _ identity.Provider = (*Provider)(nil)

func New(cfg Config, log *logrus.Logger) *Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")

	settings := gobreaker.Settings{
		Name:        "supabase-auth",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		// 4xx answers mean the service is up.
		IsSuccessful: func(err error) bool {
			var ae *apiError
			return err == nil || (errors.As(err, &ae) && ae.Status < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state change")
		},
	}

	return &Provider{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		log:     log,
	}
}

// ====================================================
// GoTrue payloads
// ====================================================

type gotrueUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u gotrueUser) identity() identity.Identity {
	return identity.FromClaims(jwt.MapClaims{
		"sub":           u.ID,
		"email":         u.Email,
		"phone":         u.Phone,
		"user_metadata": u.UserMetadata,
	})
}

type gotrueSession struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	User        gotrueUser `json:"user"`
}

// ====================================================
// Provider
// ====================================================

func (p *Provider) SignUp(ctx context.Context, in identity.SignUpInput) (*identity.Identity, *identity.Session, error) {
	if err := identity.ValidateCredentials(in.Email, in.Password); err != nil {
		return nil, nil, err
	}

	body := map[string]any{
		"email":    identity.NormalizeEmail(in.Email),
		"password": in.Password,
		"data":     identity.Metadata(in),
	}
	raw, err := p.call(ctx, http.MethodPost, "/auth/v1/signup", "", body)
	if err != nil {
		if status(err) == http.StatusUnprocessableEntity || status(err) == http.StatusBadRequest {
			return nil, nil, identity.ErrEmailTaken
		}
		return nil, nil, p.unavailable(err)
	}

	// With email confirmation on, GoTrue answers with the bare user.
	var sess gotrueSession
	if err := json.Unmarshal(raw, &sess); err == nil && sess.AccessToken != "" {
		s := p.session(sess)
		return &s.User, s, nil
	}
	var u gotrueUser
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		return nil, nil, httperr.Internal("gotrue_decode", err)
	}
	id := u.identity()
	return &id, nil, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	body := map[string]any{
		"email":    identity.NormalizeEmail(email),
		"password": password,
	}
	raw, err := p.call(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body)
	if err != nil {
		if s := status(err); s >= 400 && s < 500 {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, p.unavailable(err)
	}

	var sess gotrueSession
	if err := json.Unmarshal(raw, &sess); err != nil || sess.AccessToken == "" {
		return nil, httperr.Internal("gotrue_decode", err)
	}
	return p.session(sess), nil
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	_, err := p.call(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	return p.ignoreClientErrors(err)
}

func (p *Provider) RecoverPassword(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	_, err := p.call(ctx, http.MethodPost, path, "", map[string]any{
		"email": identity.NormalizeEmail(email),
	})
	return p.ignoreClientErrors(err)
}

// ResetPassword uses the recovery access token GoTrue put in the reset link.
func (p *Provider) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < identity.MinPasswordLength {
		return identity.ErrWeakPassword
	}
	_, err := p.call(ctx, http.MethodPut, "/auth/v1/user", token, map[string]any{
		"password": newPassword,
	})
	if err != nil {
		if s := status(err); s == http.StatusUnauthorized || s == http.StatusForbidden {
			return identity.ErrInvalidToken
		} else if s >= 400 && s < 500 {
			return identity.ErrWeakPassword
		}
		return p.unavailable(err)
	}
	return nil
}

// Verify checks the signature locally when the JWT secret is configured and
// falls back to GET /auth/v1/user.
func (p *Provider) Verify(ctx context.Context, accessToken string) (*identity.Identity, error) {
	if accessToken == "" {
		return nil, identity.ErrInvalidToken
	}
	if p.cfg.JWTSecret != "" {
		if id, err := p.verifyLocal(accessToken); err == nil {
			return id, nil
		}
	}

	raw, err := p.call(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		if s := status(err); s >= 400 && s < 500 {
			return nil, identity.ErrInvalidToken
		}
		return nil, p.unavailable(err)
	}
	var u gotrueUser
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		return nil, identity.ErrInvalidToken
	}
	id := u.identity()
	return &id, nil
}

func (p *Provider) verifyLocal(token string) (*identity.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(p.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, identity.ErrInvalidToken
	}
	id := identity.FromClaims(claims)
	if id.Subject == "" {
		return nil, identity.ErrInvalidToken
	}
	return &id, nil
}

// ====================================================
// Transport
// ====================================================

func (p *Provider) call(ctx context.Context, method, path, bearer string, body any) ([]byte, error) {
	return p.breaker.Execute(func() ([]byte, error) {
		var rdr io.Reader = http.NoBody
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			rdr = bytes.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx, method, p.cfg.URL+path, rdr)
		if err != nil {
			return nil, err
		}
		req.Header.Set("apikey", p.cfg.AnonKey)
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}

		resp, err := p.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 300 {
			return nil, &apiError{Status: resp.StatusCode, Body: string(data)}
		}
		return data, nil
	})
}

func (p *Provider) session(s gotrueSession) *identity.Session {
	return &identity.Session{
		AccessToken: s.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(s.ExpiresIn) * time.Second),
		User:        s.User.identity(),
	}
}

func (p *Provider) unavailable(err error) error {
	p.log.WithError(err).Error("identity provider call failed")
	return httperr.Internal(identity.ErrUnavailable.Code, err)
}

// ignoreClientErrors treats 4xx answers as done; an expired session is
// already logged out and recovery must not reveal unknown emails.
func (p *Provider) ignoreClientErrors(err error) error {
	if err == nil {
		return nil
	}
	if s := status(err); s >= 400 && s < 500 {
		return nil
	}
	return p.unavailable(err)
}

func status(err error) int {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
