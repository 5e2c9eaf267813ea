package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	stats    *ucAppointment.GetStats
	cancel   *ucAppointment.CancelAppointment
	complete *ucAppointment.CompleteAppointment
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	stats *ucAppointment.GetStats,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		stats:    stats,
		cancel:   cancel,
		complete: complete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"timeSlot" binding:"required"`
	ServiceID *uint  `json:"serviceId"`
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	shopID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	var req CreateAppointmentRequest
	if !bind(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:     middleware.Actor(c),
		ShopID:    shopID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		ServiceID: req.ServiceID,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, ap)
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) Stats(c *gin.Context) {
	shopID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	stats, err := h.stats.Execute(c.Request.Context(), shopID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}
