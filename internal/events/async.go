package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	asyncQueueSize      = 256
	asyncPublishTimeout = 10 * time.Second
)

var ErrQueueFull = errors.New("events: publish queue full")

// AsyncPublisher hands events to a background worker so callers never wait
// on the broker. When the queue is full the event is dropped.
type AsyncPublisher struct {
	next  Publisher
	log   logrus.FieldLogger
	queue chan AppointmentBooked
	once  sync.Once
	done  chan struct{}
}

var _ Publisher = (*AsyncPublisher)(nil)

func NewAsync(next Publisher, log logrus.FieldLogger) *AsyncPublisher {
	p := &AsyncPublisher{
		next:  next,
		log:   log,
		queue: make(chan AppointmentBooked, asyncQueueSize),
		done:  make(chan struct{}),
	}
	go p.worker()
	return p
}

func (p *AsyncPublisher) worker() {
	defer close(p.done)
	for ev := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		if err := p.next.PublishAppointmentBooked(ctx, ev); err != nil {
			p.log.WithError(err).WithField("appointment_id", ev.AppointmentID).Warn("booking event dropped")
		}
		cancel()
	}
}

// PublishAppointmentBooked only enqueues; ctx is not used.
func (p *AsyncPublisher) PublishAppointmentBooked(_ context.Context, ev AppointmentBooked) error {
	select {
	case p.queue <- ev:
		return nil
	default:
		p.log.WithField("appointment_id", ev.AppointmentID).Warn("publish queue full, dropping booking event")
		return ErrQueueFull
	}
}

// Close drains queued events. Publishing afterwards panics.
func (p *AsyncPublisher) Close() {
	p.once.Do(func() { close(p.queue) })
	<-p.done
}
