package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

var ErrRoleNotAllowed = httperr.Validation("invalid_role", "Bu rol kayıt sırasında seçilemez")

type Provisioner interface {
	Execute(ctx context.Context, id *identity.Identity) (*models.User, error)
}

type AuthHandler struct {
	provider      identity.Provider
	users         Provisioner
	secureCookies bool
	checkDomain   bool
}

func NewAuthHandler(provider identity.Provider, users Provisioner, secureCookies, checkEmailDomain bool) *AuthHandler {
	return &AuthHandler{
		provider:      provider,
		users:         users,
		secureCookies: secureCookies,
		checkDomain:   checkEmailDomain,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email      string `json:"email" binding:"required"`
	RedirectTo string `json:"redirectTo"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}

	role := user.RoleCustomer
	if strings.TrimSpace(req.Role) != "" {
		r, ok := user.Parse(req.Role)
		if !ok || !r.SelfAssignable() {
			httperr.Respond(c, ErrRoleNotAllowed)
			return
		}
		role = r
	}

	email := identity.NormalizeEmail(req.Email)
	if err := validators.CheckEmail(email, h.checkDomain); err != nil {
		httperr.Respond(c, err)
		return
	}

	id, session, err := h.provider.SignUp(c.Request.Context(), identity.SignUpInput{
		Email:     email,
		Password:  req.Password,
		Phone:     strings.TrimSpace(req.Phone),
		Role:      role.String(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.users.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if session != nil {
		h.setSession(c, session)
	}
	httpresp.Created(c, gin.H{
		"user":    u,
		"session": session,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.provider.SignIn(c.Request.Context(), identity.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if _, err := h.users.Execute(c.Request.Context(), &session.User); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setSession(c, session)
	httpresp.OK(c, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := h.provider.SignOut(c.Request.Context(), token); err != nil {
			httperr.Respond(c, err)
			return
		}
	}
	h.clearSession(c)
	httpresp.Done(c, "Çıkış yapıldı")
}

// ForgotPassword answers the same way whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bind(c, &req) {
		return
	}

	email := identity.NormalizeEmail(req.Email)
	if err := validators.CheckEmail(email, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.provider.RecoverPassword(c.Request.Context(), email, req.RedirectTo); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Done(c, "Şifre sıfırlama bağlantısı gönderildi")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bind(c, &req) {
		return
	}

	if err := h.provider.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Done(c, "Şifre güncellendi")
}

// --------- Cookie ---------

func (h *AuthHandler) setSession(c *gin.Context, s *identity.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int((24 * time.Hour).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, s.AccessToken, maxAge, "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookies, true)
}
