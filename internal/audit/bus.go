package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

const defaultBusBuffer = 64

// Bus decouples catalog mutations from audit durability. Publish never
// blocks and never returns an error: audit failures must not abort the
// caller's primary operation, so the consumer logs and drops them.
type Bus struct {
	events   chan domain.AuditEvent
	done     chan struct{}
	appender *Appender
	logger   *slog.Logger
	timeout  time.Duration
}

func NewBus(appender *Appender, logger *slog.Logger, buffer int) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = defaultBusBuffer
	}
	b := &Bus{
		events:   make(chan domain.AuditEvent, buffer),
		done:     make(chan struct{}),
		appender: appender,
		logger:   logger,
		timeout:  10 * time.Second,
	}
	go b.consume()
	return b
}

// Publish hands the event to the consumer. When the buffer is full the
// event is dropped, not queued: availability of the primary action beats
// audit durability.
func (b *Bus) Publish(event domain.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	select {
	case b.events <- event:
	default:
		b.logger.Warn("audit bus full, event dropped",
			"action", string(event.Action),
			"object", event.Object,
		)
	}
}

// Close drains buffered events and stops the consumer.
func (b *Bus) Close() {
	close(b.events)
	<-b.done
}

func (b *Bus) consume() {
	defer close(b.done)
	for event := range b.events {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		if err := b.appender.Append(ctx, event); err != nil {
			b.logger.Warn("audit append failed",
				"action", string(event.Action),
				"object", event.Object,
				"error", err,
			)
		}
		cancel()
	}
}
