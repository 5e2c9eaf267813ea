package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AuditLister interface {
	List(ctx context.Context, f repository.AuditFilter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs  AuditLister
	authz authz.Authorizer
}

func NewAuditLogsHandler(logs AuditLister, authorizer authz.Authorizer) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, authz: authorizer}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if err := h.authz.Authorize(c.Request.Context(), middleware.Actor(c), authz.AuditRead, authz.Resource{}); err != nil {
		httperr.Respond(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------
	f := repository.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if v, err := strconv.ParseUint(c.Query("shopId"), 10, 64); err == nil && v > 0 {
		id := uint(v)
		f.ShopID = &id
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, httperr.Internal("audit_list_failed", err))
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
