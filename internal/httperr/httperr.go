package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
)

type HTTPError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Error: message,
		Code:  code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error: message,
		Code:  code,
	})
}

// Respond maps err onto the error envelope. Anything that is not an *Error
// becomes a 500 and is logged with the request entry.
func Respond(c *gin.Context, err error) {
	e, ok := asError(err)
	if !ok || e.Kind == KindInternal {
		logging.FromContext(c).WithError(err).Error("request failed")
	}
	if !ok {
		Write(c, http.StatusInternalServerError, CodeInternal, MsgInternal)
		return
	}
	Write(c, e.Kind.Status(), e.Code, e.Message)
}

func asError(err error) (*Error, bool) {
	if IsUniqueViolation(err) && KindOf(err) == KindInternal {
		return Validation(CodeAlreadyExists, "Kayıt zaten mevcut"), true
	}
	var e *Error
	if !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}
