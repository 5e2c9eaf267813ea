package shop

import (
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const DefaultServiceDuration = 30

var (
	ErrNameRequired     = httperr.Validation("name_required", "İsim alanı zorunludur")
	ErrInvalidTimezone  = httperr.Validation("invalid_timezone", "Geçersiz saat dilimi")
	ErrInvalidPrice     = httperr.Validation("invalid_price", "Fiyat negatif olamaz")
	ErrInvalidDuration  = httperr.Validation("invalid_duration", "Süre pozitif olmalıdır")
	ErrInvalidStaffRole = httperr.Validation("invalid_employee_role", "Sadece berber veya çalışan rolündeki kullanıcılar eklenebilir")
	ErrAlreadyEmployee  = httperr.Validation("already_employee", "Kullanıcı zaten bu dükkanda çalışıyor")
	ErrNotEmployee      = httperr.NotFound("employee_not_found", "Çalışan bu dükkanda bulunamadı")
)

// PrepareShop trims user input and applies the default timezone.
func PrepareShop(s *models.Shop) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Address = strings.TrimSpace(s.Address)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Timezone = strings.TrimSpace(s.Timezone)

	if s.Name == "" {
		return ErrNameRequired
	}
	if s.Timezone == "" {
		s.Timezone = timezone.Default()
	} else if !timezone.IsValid(s.Timezone) {
		return ErrInvalidTimezone
	}
	return nil
}

func PrepareService(svc *models.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	svc.Description = strings.TrimSpace(svc.Description)

	if svc.Name == "" {
		return ErrNameRequired
	}
	if svc.Price < 0 {
		return ErrInvalidPrice
	}
	if svc.Duration == 0 {
		svc.Duration = DefaultServiceDuration
	}
	if svc.Duration < 0 {
		return ErrInvalidDuration
	}
	return nil
}
