package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	domainShop "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucReview "github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
	ucShop "github.com/BruksfildServices01/barbershop-booking/internal/usecase/shop"
	ucUser "github.com/BruksfildServices01/barbershop-booking/internal/usecase/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/web"
)

const (
	homeShopCount = 6
	statsWindow   = 7
)

// WebHandler renders pages from the same use cases as the JSON API.
type WebHandler struct {
	shops        *ucShop.Queries
	reviews      *ucReview.Queries
	stats        *ucAppointment.GetStats
	userShops    *ucUser.UserShops
	appointments *ucAppointment.ListForUser
}

func NewWebHandler(
	shops *ucShop.Queries,
	reviews *ucReview.Queries,
	stats *ucAppointment.GetStats,
	userShops *ucUser.UserShops,
	appointments *ucAppointment.ListForUser,
) *WebHandler {
	return &WebHandler{
		shops:        shops,
		reviews:      reviews,
		stats:        stats,
		userShops:    userShops,
		appointments: appointments,
	}
}

// page seeds the template data every page shares.
func page(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title": title,
		"User":  middleware.CurrentUser(c),
	}
}

func (h *WebHandler) fail(c *gin.Context, err error) {
	if httperr.KindOf(err) == httperr.KindNotFound {
		c.HTML(http.StatusNotFound, web.PageNotFound, page(c, "Bulunamadı"))
		return
	}
	logging.FromContext(c).WithError(err).Error("page render failed")
	c.String(http.StatusInternalServerError, httperr.MsgInternal)
}

// ======================================================
// PUBLIC PAGES
// ======================================================

func (h *WebHandler) Home(c *gin.Context) {
	shops, _, err := h.shops.List(c.Request.Context(), domainShop.ListFilter{Take: homeShopCount})
	if err != nil {
		h.fail(c, err)
		return
	}
	catalog, err := h.shops.ListCatalog(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	data := page(c, "")
	data["Shops"] = shops
	data["Catalog"] = catalog
	c.HTML(http.StatusOK, web.PageHome, data)
}

func (h *WebHandler) Shops(c *gin.Context) {
	skip, take := httpresp.Page(c)
	query := strings.TrimSpace(c.Query("q"))

	shops, total, err := h.shops.List(c.Request.Context(), domainShop.ListFilter{Query: query, Skip: skip, Take: take})
	if err != nil {
		h.fail(c, err)
		return
	}

	data := page(c, "Dükkanlar")
	data["Shops"] = shops
	data["Query"] = query
	data["Pagination"] = httpresp.NewPagination(total, skip, take)
	data["HasPrev"] = skip > 0
	data["PrevSkip"] = max(skip-take, 0)
	data["NextSkip"] = skip + take
	c.HTML(http.StatusOK, web.PageShops, data)
}

func (h *WebHandler) Shop(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		c.HTML(http.StatusNotFound, web.PageNotFound, page(c, "Bulunamadı"))
		return
	}
	ctx := c.Request.Context()

	shop, err := h.shops.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	services, err := h.shops.ListServices(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	catalog, err := h.shops.ListCatalog(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	reviews, err := h.reviews.ListShopReviews(ctx, id, true)
	if err != nil {
		h.fail(c, err)
		return
	}

	today := timezone.NowIn(shop.Timezone)
	stats, err := h.stats.Execute(ctx, id,
		today.Format(appointment.DateLayout),
		today.AddDate(0, 0, statsWindow-1).Format(appointment.DateLayout),
	)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := page(c, shop.Name)
	data["Shop"] = shop
	data["Services"] = append(services, catalog...)
	data["Slots"] = appointment.Slots()
	data["Stats"] = stats
	data["Reviews"] = reviews
	data["Ratings"] = []int{5, 4, 3, 2, 1}
	c.HTML(http.StatusOK, web.PageShop, data)
}

// ======================================================
// AUTH PAGES
// ======================================================

func (h *WebHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageLogin, page(c, "Giriş"))
}

func (h *WebHandler) Register(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageRegister, page(c, "Kayıt ol"))
}

func (h *WebHandler) ForgotPassword(c *gin.Context) {
	data := page(c, "Şifremi unuttum")
	data["ResetURL"] = "/reset-password"
	c.HTML(http.StatusOK, web.PageForgotPassword, data)
}

// ResetPassword takes the recovery token from the query string.
func (h *WebHandler) ResetPassword(c *gin.Context) {
	data := page(c, "Yeni şifre")
	data["Token"] = c.Query("token")
	c.HTML(http.StatusOK, web.PageResetPassword, data)
}

func (h *WebHandler) Unauthorized(c *gin.Context) {
	c.HTML(http.StatusUnauthorized, web.PageUnauthorized, page(c, "Yetkisiz"))
}

// ======================================================
// DASHBOARD
// ======================================================

func sessionRole(c *gin.Context) string {
	if id := middleware.CurrentIdentity(c); id != nil {
		return user.Normalize(id.Role).String()
	}
	return user.RoleCustomer.String()
}

func (h *WebHandler) DashboardRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.DashboardPath(sessionRole(c)))
}

// Dashboard sends callers to their own role's dashboard when the path disagrees.
func (h *WebHandler) Dashboard(c *gin.Context) {
	role := sessionRole(c)
	if strings.ToLower(c.Param("role")) != role {
		c.Redirect(http.StatusFound, middleware.DashboardPath(role))
		return
	}

	u := middleware.CurrentUser(c)
	actor := middleware.Actor(c)
	if u == nil || actor == nil {
		c.Redirect(http.StatusFound, middleware.UnauthorizedPath)
		return
	}
	ctx := c.Request.Context()
	r := user.Normalize(u.Role)

	apps, err := h.appointments.Execute(ctx, actor, u.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := page(c, "Panel")
	data["Role"] = role
	data["Appointments"] = apps
	data["IsStaff"] = r.CanBeStaff() || r == user.RoleAdmin
	data["CanCreateShop"] = r.CanOwnShop()

	if r.CanOwnShop() || r.CanBeStaff() {
		shops, err := h.userShops.Execute(ctx, actor, u.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
		data["Shops"] = shops
	}
	c.HTML(http.StatusOK, web.PageDashboard, data)
}

// NotFound answers JSON under /api and renders the 404 page elsewhere.
func (h *WebHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		httperr.Respond(c, httperr.NotFound("route_not_found", "Kaynak bulunamadı"))
		return
	}
	c.HTML(http.StatusNotFound, web.PageNotFound, page(c, "Bulunamadı"))
}
