package httperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the typed failure returned by use cases. Message is shown to the
// client as is; Err is only logged.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// Internal wraps an unexpected failure. The cause never reaches the client.
func Internal(code string, err error) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: MsgInternal, Err: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ====================================================
// Common codes and messages
// ====================================================

const (
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeInvalidInput    = "invalid_input"
	CodeInternal        = "internal_error"
	CodeShopNotFound    = "shop_not_found"
	CodeUserNotFound    = "user_not_found"
	CodeServiceNotFound = "service_not_found"
	CodeAlreadyExists   = "already_exists"
	CodeRateLimited     = "rate_limited"

	MsgUnauthorized    = "Yetkisiz erişim"
	MsgForbidden       = "Bu işlem için yetkiniz yok"
	MsgInvalidInput    = "Geçersiz istek"
	MsgInternal        = "Sunucu hatası"
	MsgShopNotFound    = "Berber dükkanı bulunamadı"
	MsgUserNotFound    = "Kullanıcı bulunamadı"
	MsgServiceNotFound = "Hizmet bulunamadı"
)

var (
	ErrUnauthorized    = Unauthorized(CodeUnauthorized, MsgUnauthorized)
	ErrForbidden       = Forbidden(CodeForbidden, MsgForbidden)
	ErrShopNotFound    = NotFound(CodeShopNotFound, MsgShopNotFound)
	ErrUserNotFound    = NotFound(CodeUserNotFound, MsgUserNotFound)
	ErrServiceNotFound = NotFound(CodeServiceNotFound, MsgServiceNotFound)
)
