package ledger

import (
	"gorm.io/gorm"
)

// IncomeRecorded is emitted when a new income transaction is persisted.
// It fires for new money only: edits to an existing transaction never
// re-emit it, and deletes never reverse it.
type IncomeRecorded struct {
	UserID        uint
	TransactionID uint
	Amount        float64
}

// IncomeHandler reacts to an IncomeRecorded event. Handlers run inside
// the same database transaction as the insert that produced the event,
// so a handler error rolls back the whole write.
type IncomeHandler func(tx *gorm.DB, event IncomeRecorded) error

// EventBus is a minimal in-process dispatcher. Handlers are registered
// at wiring time and the set never changes afterwards.
type EventBus struct {
	handlers []IncomeHandler
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Subscribe(handler IncomeHandler) {
	b.handlers = append(b.handlers, handler)
}

func (b *EventBus) Publish(tx *gorm.DB, event IncomeRecorded) error {
	for _, handler := range b.handlers {
		if err := handler(tx, event); err != nil {
			return err
		}
	}
	return nil
}
