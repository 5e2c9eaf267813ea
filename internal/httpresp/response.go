package httpresp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultTake = 10
	MaxTake     = 100
)

type Pagination struct {
	Total   int64 `json:"total"`
	Skip    int   `json:"skip"`
	Take    int   `json:"take"`
	HasMore bool  `json:"hasMore"`
}

type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Done(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Success{Success: true, Message: message})
}

// Page reads skip/take from the query string. Invalid or negative values fall
// back to the defaults and take is capped at MaxTake.
func Page(c *gin.Context) (skip, take int) {
	skip, err := strconv.Atoi(c.Query("skip"))
	if err != nil || skip < 0 {
		skip = 0
	}
	take, err = strconv.Atoi(c.Query("take"))
	if err != nil || take <= 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}
	return skip, take
}

func NewPagination(total int64, skip, take int) Pagination {
	return Pagination{
		Total:   total,
		Skip:    skip,
		Take:    take,
		HasMore: int64(skip+take) < total,
	}
}
