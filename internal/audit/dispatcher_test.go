package audit

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type memStore struct {
	mu    sync.Mutex
	logs  []models.AuditLog
	block chan struct{}
}

func (s *memStore) Create(_ context.Context, l *models.AuditLog) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *l)
	return nil
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDispatcher_WritesEvents(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(New(store), quiet())

	d.Dispatch(Event{
		ShopID:   Ptr(uint(3)),
		UserID:   Ptr("u-1"),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: Ptr(uint(9)),
		Metadata: map[string]string{"slot": "10:00"},
	})
	d.Dispatch(Event{Action: "shop_created"})
	d.Close()

	require.Len(t, store.logs, 2)
	assert.Equal(t, "appointment_created", store.logs[0].Action)
	assert.JSONEq(t, `{"slot":"10:00"}`, store.logs[0].Metadata)
	assert.Equal(t, "{}", store.logs[1].Metadata)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	store := &memStore{block: make(chan struct{})}
	d := NewDispatcher(New(store), quiet())

	// One event is held by the blocked worker, queueSize more fill the buffer.
	for i := 0; i < queueSize+10; i++ {
		d.Dispatch(Event{Action: "x"})
	}
	close(store.block)
	d.Close()

	assert.LessOrEqual(t, len(store.logs), queueSize+1)
	assert.GreaterOrEqual(t, len(store.logs), queueSize)
}
