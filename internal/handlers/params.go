package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

var errInvalidID = httperr.Validation("invalid_id", "Geçersiz kimlik")

// uintParam parses a positive numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errInvalidID
	}
	return uint(v), nil
}

// bind decodes the JSON body and maps failures onto the validation envelope.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, httperr.MsgInvalidInput)
		return false
	}
	return true
}
