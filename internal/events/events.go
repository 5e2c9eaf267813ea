// Package events publishes booking events to RabbitMQ and consumes them.
package events

import (
	"context"
	"time"
)

const QueueAppointmentBooked = "appointment.booked"

type AppointmentBooked struct {
	AppointmentID uint      `json:"appointmentId"`
	ShopID        uint      `json:"shopId"`
	ShopName      string    `json:"shopName"`
	CustomerID    string    `json:"customerId"`
	ServiceID     *uint     `json:"serviceId,omitempty"`
	Date          string    `json:"date"`
	TimeSlot      string    `json:"timeSlot"`
	BookedAt      time.Time `json:"bookedAt"`
}

type Publisher interface {
	PublishAppointmentBooked(ctx context.Context, ev AppointmentBooked) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishAppointmentBooked(context.Context, AppointmentBooked) error {
	return nil
}
