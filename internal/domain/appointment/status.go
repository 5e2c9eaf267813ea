package appointment

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var ErrInvalidState = httperr.Validation("invalid_state", "Randevu bu durumdayken değiştirilemez")

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

var (
	ErrAppointmentNotFound = httperr.NotFound("appointment_not_found", "Randevu bulunamadı")
	ErrSlotFull            = httperr.Validation("slot_full", "Bu saat dilimi dolu")
)
