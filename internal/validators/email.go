package validators

import (
	"net"
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

var (
	ErrInvalidEmail       = httperr.Validation("invalid_email", "Geçersiz e-posta adresi")
	ErrInvalidEmailDomain = httperr.Validation("invalid_email_domain", "E-posta alan adı geçerli görünmüyor")
)

// CheckEmail validates the address format and, when checkDomain is set,
// that its domain resolves to a mail exchanger or a host.
func CheckEmail(email string, checkDomain bool) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	if checkDomain && !IsEmailDomainValid(email) {
		return ErrInvalidEmailDomain
	}
	return nil
}

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
