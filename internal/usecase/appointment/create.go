package appointment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const (
	maxNotesLength = 255
	publishTimeout = 2 * time.Second
)

var (
	ErrInvalidSlot      = httperr.Validation("invalid_time_slot", "Geçersiz saat dilimi")
	ErrTooSoon          = httperr.Validation("too_soon", "Geçmiş bir saat için randevu alınamaz")
	ErrServiceNotInShop = httperr.Validation("service_not_in_shop", "Hizmet bu dükkana ait değil")
	ErrNotesTooLong     = httperr.Validation("notes_too_long", "Not en fazla 255 karakter olabilir")
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor     *authz.Actor
	ShopID    uint
	Date      string
	TimeSlot  string
	ServiceID *uint
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type Options struct {
	// EnforceCapacity rejects a booking once its slot holds staffCount scheduled appointments.
	EnforceCapacity bool
	// FixedStaffCount uses the legacy staff count of 2 for every shop.
	FixedStaffCount bool
}

type CreateAppointment struct {
	repo      domain.Repository
	authz     authz.Authorizer
	audit     audit.Recorder
	publisher events.Publisher
	opts      Options
	now       func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	authorizer authz.Authorizer,
	recorder audit.Recorder,
	publisher events.Publisher,
	opts Options,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		authz:     authorizer,
		audit:     recorder,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := uc.authz.Authorize(ctx, in.Actor, authz.AppointmentCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Shop and its local calendar
	// --------------------------------------------------
	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	day, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Slot on the daily grid, not in the past
	// --------------------------------------------------
	if !domain.IsValidSlot(in.TimeSlot) {
		return nil, uc.reject(ErrInvalidSlot)
	}
	start, err := domain.SlotStart(day, in.TimeSlot, loc)
	if err != nil {
		return nil, uc.reject(ErrInvalidSlot)
	}
	if !start.After(uc.now().In(loc)) {
		return nil, uc.reject(ErrTooSoon)
	}

	// --------------------------------------------------
	// Service: the shop's own or a catalog entry
	// --------------------------------------------------
	if in.ServiceID != nil {
		svc, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc.ShopID != nil && *svc.ShopID != shop.ID {
			return nil, uc.reject(ErrServiceNotInShop)
		}
	}

	notes := strings.TrimSpace(in.Notes)
	if len([]rune(notes)) > maxNotesLength {
		return nil, ErrNotesTooLong
	}

	y, m, d := day.Date()
	ap := &models.Appointment{
		ShopID:     shop.ID,
		CustomerID: in.Actor.ID,
		ServiceID:  in.ServiceID,
		Date:       time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		TimeSlot:   in.TimeSlot,
		Status:     string(domain.InitialStatus()),
		Notes:      notes,
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	if uc.opts.EnforceCapacity {
		capacity, err := uc.slotCapacity(ctx, shop.ID)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.CreateWithinCapacity(ctx, ap, capacity); err != nil {
			return nil, uc.reject(err)
		}
	} else if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(strconv.FormatUint(uint64(shop.ID), 10)).Inc()

	// --------------------------------------------------
	// Audit and event
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ShopID:   &shop.ID,
		UserID:   &in.Actor.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"date": ap.Date.Format(domain.DateLayout), "timeSlot": ap.TimeSlot},
	})

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	_ = uc.publisher.PublishAppointmentBooked(pubCtx, events.AppointmentBooked{
		AppointmentID: ap.ID,
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		CustomerID:    ap.CustomerID,
		ServiceID:     ap.ServiceID,
		Date:          ap.Date.Format(domain.DateLayout),
		TimeSlot:      ap.TimeSlot,
		BookedAt:      uc.now().UTC(),
	})

	return ap, nil
}

// slotCapacity is the number of bookings one slot takes: one per staff member.
func (uc *CreateAppointment) slotCapacity(ctx context.Context, shopID uint) (int, error) {
	if uc.opts.FixedStaffCount {
		return domain.LegacyStaffCount, nil
	}
	staff, err := uc.repo.CountStaff(ctx, shopID)
	if err != nil {
		return 0, err
	}
	if staff <= 0 {
		return domain.LegacyStaffCount, nil
	}
	return int(staff), nil
}

func (uc *CreateAppointment) reject(err error) error {
	var code string
	switch {
	case httperr.Is(err, ErrTooSoon.Code):
		code = ErrTooSoon.Code
	case httperr.Is(err, domain.ErrSlotFull.Code):
		code = domain.ErrSlotFull.Code
	case httperr.Is(err, ErrInvalidSlot.Code):
		code = ErrInvalidSlot.Code
	case httperr.Is(err, ErrServiceNotInShop.Code):
		code = ErrServiceNotInShop.Code
	default:
		return err
	}
	metrics.BookingsRejected.WithLabelValues(code).Inc()
	return err
}
