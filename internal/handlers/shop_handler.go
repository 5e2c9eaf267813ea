package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucShop "github.com/BruksfildServices01/barbershop-booking/internal/usecase/shop"
)

const maxImageBytes = 8 << 20

var (
	errImageRequired = httperr.Validation("image_required", "Görsel dosyası zorunludur")
	errImageTooBig   = httperr.Validation("image_too_large", "Görsel en fazla 8 MB olabilir")
)

// ======================================================
// HANDLER
// ======================================================

type ShopHandler struct {
	queries        *ucShop.Queries
	createShop     *ucShop.CreateShop
	addEmployee    *ucShop.AddEmployee
	removeEmployee *ucShop.RemoveEmployee
	createService  *ucShop.CreateService
	uploadImage    *ucShop.UploadImage
}

func NewShopHandler(
	queries *ucShop.Queries,
	createShop *ucShop.CreateShop,
	addEmployee *ucShop.AddEmployee,
	removeEmployee *ucShop.RemoveEmployee,
	createService *ucShop.CreateService,
	uploadImage *ucShop.UploadImage,
) *ShopHandler {
	return &ShopHandler{
		queries:        queries,
		createShop:     createShop,
		addEmployee:    addEmployee,
		removeEmployee: removeEmployee,
		createService:  createService,
		uploadImage:    uploadImage,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateShopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Timezone    string `json:"timezone"`
}

type AddEmployeeRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

// ======================================================
// READ
// ======================================================

func (h *ShopHandler) List(c *gin.Context) {
	skip, take := httpresp.Page(c)

	shops, total, err := h.queries.List(c.Request.Context(), domain.ListFilter{
		Query:   strings.TrimSpace(c.Query("q")),
		OwnerID: strings.TrimSpace(c.Query("ownerId")),
		Skip:    skip,
		Take:    take,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"shops":      shops,
		"pagination": httpresp.NewPagination(total, skip, take),
	})
}

func (h *ShopHandler) Get(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	s, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ShopHandler) ListEmployees(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	employees, err := h.queries.ListEmployees(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, employees)
}

func (h *ShopHandler) ListServices(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	services, err := h.queries.ListServices(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, services)
}

// Catalog lists the services shared by every shop.
func (h *ShopHandler) Catalog(c *gin.Context) {
	services, err := h.queries.ListCatalog(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, services)
}

// ======================================================
// WRITE
// ======================================================

func (h *ShopHandler) Create(c *gin.Context) {
	var req CreateShopRequest
	if !bind(c, &req) {
		return
	}

	s, err := h.createShop.Execute(c.Request.Context(), ucShop.CreateShopInput{
		Actor:       middleware.Actor(c),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Timezone:    req.Timezone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ShopHandler) AddEmployee(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	var req AddEmployeeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.addEmployee.Execute(c.Request.Context(), middleware.Actor(c), id, strings.TrimSpace(req.UserID)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Done(c, "Çalışan eklendi")
}

func (h *ShopHandler) RemoveEmployee(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.removeEmployee.Execute(c.Request.Context(), middleware.Actor(c), id, c.Param("employeeId")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Done(c, "Çalışan kaldırıldı")
}

func (h *ShopHandler) CreateService(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	var req CreateServiceRequest
	if !bind(c, &req) {
		return
	}

	svc, err := h.createService.Execute(c.Request.Context(), ucShop.CreateServiceInput{
		Actor:       middleware.Actor(c),
		ShopID:      id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ShopHandler) UploadImage(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.Respond(c, errImageRequired)
		return
	}
	if fh.Size > maxImageBytes {
		httperr.Respond(c, errImageTooBig)
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, errImageRequired)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		httperr.Respond(c, httperr.Internal("image_read_failed", err))
		return
	}

	s, err := h.uploadImage.Execute(c.Request.Context(), middleware.Actor(c), id, data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}
