package audit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	ShopID   *uint
	UserID   *string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder is what use cases depend on.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	log    logrus.FieldLogger
	queue  chan Event
	once   sync.Once
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.WithError(err).WithField("action", ev.Action).Warn("audit write failed")
		}
		cancel()
	}
}

// Dispatch never blocks the request: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close drains queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	<-d.done
}

// Nop discards events.
type Nop struct{}

func (Nop) Dispatch(Event) {}

// Ptr is a helper for the optional Event fields.
func Ptr[T any](v T) *T {
	return &v
}
