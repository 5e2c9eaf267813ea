package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucReview "github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
)

type ReviewHandler struct {
	queries *ucReview.Queries
	create  *ucReview.Create
}

func NewReviewHandler(queries *ucReview.Queries, create *ucReview.Create) *ReviewHandler {
	return &ReviewHandler{queries: queries, create: create}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) ListForShop(c *gin.Context) {
	shopID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	includeRating, _ := strconv.ParseBool(c.Query("includeRating"))

	out, err := h.queries.ListShopReviews(c.Request.Context(), shopID, includeRating)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ReviewHandler) CreateForShop(c *gin.Context) {
	shopID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.createReview(c, &shopID)
}

func (h *ReviewHandler) ListFeedback(c *gin.Context) {
	out, err := h.queries.ListFeedback(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ReviewHandler) CreateFeedback(c *gin.Context) {
	h.createReview(c, nil)
}

func (h *ReviewHandler) createReview(c *gin.Context, shopID *uint) {
	var req CreateReviewRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.create.Execute(c.Request.Context(), ucReview.CreateInput{
		Actor:   middleware.Actor(c),
		ShopID:  shopID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, r)
}
