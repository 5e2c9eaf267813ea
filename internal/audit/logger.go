package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Store interface {
	Create(ctx context.Context, l *models.AuditLog) error
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	metaJSON := "{}"
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return l.store.Create(ctx, &models.AuditLog{
		ShopID:   ev.ShopID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	})
}
