// Package events delivers domain events to in-process subscribers and
// forwards them to external publishers.
package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
)

// DefaultBuffer is the per-subscriber channel capacity
const DefaultBuffer = 16

// Broker fans DepositCreated events out to subscribers of the event's
// invoice. Publishing never blocks: a subscriber whose buffer is full misses
// the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*subscription]struct{}
	buffer int
}

type subscription struct {
	ch   chan domain.DepositCreated
	once sync.Once
}

// NewBroker creates a Broker with the given per-subscriber buffer size.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker{
		subs:   make(map[uuid.UUID]map[*subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers for events of one invoice. The returned function
// unsubscribes and closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe(invoiceID uuid.UUID) (<-chan domain.DepositCreated, func()) {
	sub := &subscription{ch: make(chan domain.DepositCreated, b.buffer)}

	b.mu.Lock()
	if b.subs[invoiceID] == nil {
		b.subs[invoiceID] = make(map[*subscription]struct{})
	}
	b.subs[invoiceID][sub] = struct{}{}
	b.mu.Unlock()

	return sub.ch, func() {
		sub.once.Do(func() {
			b.mu.Lock()
			delete(b.subs[invoiceID], sub)
			if len(b.subs[invoiceID]) == 0 {
				delete(b.subs, invoiceID)
			}
			b.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Subscribers returns the number of live subscriptions for an invoice.
func (b *Broker) Subscribers(invoiceID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[invoiceID])
}

// PublishDepositCreated implements domain.EventPublisher
func (b *Broker) PublishDepositCreated(ctx context.Context, event domain.DepositCreated) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[event.InvoiceID] {
		select {
		case sub.ch <- event:
		default:
			logger.FromContext(ctx).Warn("Dropping deposit event for slow subscriber",
				zap.String("invoice_id", event.InvoiceID.String()),
			)
		}
	}
	return nil
}
