// Package audit owns the shared, multi-tenant, append-only trail: one
// immutable timestamp-named document per event. Nothing in the module ever
// mutates or deletes an event document.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/podvault-labs/podcatalog/internal/codec"
	"github.com/podvault-labs/podcatalog/internal/domain"
	"github.com/podvault-labs/podcatalog/internal/platform/docstore"
	"github.com/podvault-labs/podcatalog/internal/resolver"
)

// Appender writes events to the shared audit container.
type Appender struct {
	store     docstore.Store
	container string
}

func NewAppender(store docstore.Store, container string) (*Appender, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	normalized, err := resolver.AuditContainer(container)
	if err != nil {
		return nil, err
	}
	return &Appender{store: store, container: normalized}, nil
}

// Append writes the event once. The write is never retried; callers that
// need fire-and-forget semantics publish through the Bus instead of
// calling this directly.
func (a *Appender) Append(ctx context.Context, event domain.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if err := event.Validate(); err != nil {
		return err
	}
	uri, err := resolver.AuditDocumentFor(a.container, event.CreatedAt)
	if err != nil {
		return err
	}
	doc := docstore.Document{
		URI:         uri,
		ContentType: codec.ContentType,
		Body:        codec.EncodeAuditEvent(event),
	}
	if err := a.store.Put(ctx, doc); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
