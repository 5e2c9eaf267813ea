package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucUser "github.com/BruksfildServices01/barbershop-booking/internal/usecase/user"
)

type UserHandler struct {
	list         *ucUser.ListUsers
	shops        *ucUser.UserShops
	appointments *ucAppointment.ListForUser
}

func NewUserHandler(
	list *ucUser.ListUsers,
	shops *ucUser.UserShops,
	appointments *ucAppointment.ListForUser,
) *UserHandler {
	return &UserHandler{list: list, shops: shops, appointments: appointments}
}

func (h *UserHandler) List(c *gin.Context) {
	skip, take := httpresp.Page(c)

	users, total, err := h.list.Execute(c.Request.Context(), middleware.Actor(c), domain.ListFilter{
		Role:  strings.TrimSpace(c.Query("role")),
		Query: strings.TrimSpace(c.Query("q")),
		Skip:  skip,
		Take:  take,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"users":      users,
		"pagination": httpresp.NewPagination(total, skip, take),
	})
}

func (h *UserHandler) Shops(c *gin.Context) {
	out, err := h.shops.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *UserHandler) Appointments(c *gin.Context) {
	out, err := h.appointments.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
