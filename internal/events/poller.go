package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBatchSize = 100
	flushTimeout     = 5 * time.Second
)

// Poller moves events from the outbox to the publisher on every tick.
type Poller struct {
	outbox    *Outbox
	publisher Publisher
	tick      time.Duration
	batchSize int
	log       *zap.Logger
}

func NewPoller(outbox *Outbox, publisher Publisher, tick time.Duration, log *zap.Logger) *Poller {
	if tick <= 0 {
		tick = time.Second
	}
	return &Poller{
		outbox:    outbox,
		publisher: publisher,
		tick:      tick,
		batchSize: DefaultBatchSize,
		log:       log,
	}
}

// Run publishes until ctx is cancelled, then makes one last bounded attempt to flush.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.publishPending(ctx)
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
			p.publishPending(flushCtx)
			cancel()
			if n := p.outbox.Len(); n > 0 {
				p.log.Warn("unpublished events left in outbox", zap.Int("count", n))
			}
			return
		}
	}
}

func (p *Poller) publishPending(ctx context.Context) {
	for {
		batch := p.outbox.Drain(p.batchSize)
		if len(batch) == 0 {
			return
		}
		for i, event := range batch {
			if err := p.publisher.Publish(ctx, event); err != nil {
				p.log.Error("failed to publish event",
					zap.String("event_id", event.EventID),
					zap.Int64("order_id", event.OrderID),
					zap.Error(err))
				p.outbox.Requeue(batch[i:])
				return
			}
		}
	}
}
