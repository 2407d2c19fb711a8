package events

import (
	"sync"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"go.uber.org/zap"
)

// DefaultOutboxCapacity bounds how many unpublished events are held while the broker is unreachable.
const DefaultOutboxCapacity = 10000

// Outbox queues events between a committed checkout and their publication.
type Outbox struct {
	mu       sync.Mutex
	pending  []OrderPlaced
	capacity int
	log      *zap.Logger
}

func NewOutbox(capacity int, log *zap.Logger) *Outbox {
	if capacity <= 0 {
		capacity = DefaultOutboxCapacity
	}
	return &Outbox{capacity: capacity, log: log}
}

// Enqueue records an OrderPlaced event for the order. When full, the oldest event is dropped.
func (o *Outbox) Enqueue(order domain.Order) {
	event := NewOrderPlaced(order)

	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.pending) >= o.capacity {
		dropped := o.pending[0]
		o.pending = o.pending[1:]
		o.log.Warn("outbox full, dropping oldest event",
			zap.String("event_id", dropped.EventID),
			zap.Int64("order_id", dropped.OrderID))
	}
	o.pending = append(o.pending, event)
}

// Drain removes and returns up to limit events in enqueue order.
func (o *Outbox) Drain(limit int) []OrderPlaced {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := min(limit, len(o.pending))
	if n <= 0 {
		return nil
	}
	batch := make([]OrderPlaced, n)
	copy(batch, o.pending[:n])
	o.pending = o.pending[n:]
	return batch
}

// Requeue puts unpublished events back in front of newer ones.
func (o *Outbox) Requeue(events []OrderPlaced) {
	if len(events) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	merged := make([]OrderPlaced, 0, len(events)+len(o.pending))
	merged = append(merged, events...)
	merged = append(merged, o.pending...)
	if over := len(merged) - o.capacity; over > 0 {
		merged = merged[over:]
	}
	o.pending = merged
}

func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}
