package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/podvault-labs/podcatalog/internal/codec"
	"github.com/podvault-labs/podcatalog/internal/domain"
	"github.com/podvault-labs/podcatalog/internal/platform/docstore"
	"github.com/podvault-labs/podcatalog/internal/resolver"
)

// Reader reads the trail back chronologically.
type Reader struct {
	store     docstore.Store
	container string
}

func NewReader(store docstore.Store, container string) (*Reader, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	normalized, err := resolver.AuditContainer(container)
	if err != nil {
		return nil, err
	}
	return &Reader{store: store, container: normalized}, nil
}

// ReadAll returns every decodable event, newest first, plus the number of
// documents skipped because they were missing fields or failed to parse.
// A partially written entry never aborts the read.
func (r *Reader) ReadAll(ctx context.Context) ([]domain.AuditEvent, int, error) {
	uris, err := r.store.ListContainer(ctx, r.container)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit container: %w", err)
	}
	var events []domain.AuditEvent
	skipped := 0
	for _, uri := range uris {
		doc, err := r.store.Get(ctx, uri)
		if err != nil {
			skipped++
			continue
		}
		event, err := codec.DecodeAuditEvent(doc.Body)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, event)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, skipped, nil
}
