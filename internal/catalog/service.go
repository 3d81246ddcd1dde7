// Package catalog implements entity CRUD over the flat document store:
// one logical entity is one document holding the header plus all of its
// members and metadata as co-located sub-records. Every operation is a
// single read or a read-modify-write of that document; concurrent writers
// race last-write-wins because the backing store has no transactions, and
// no operation is retried.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/podvault-labs/podcatalog/internal/audit"
	"github.com/podvault-labs/podcatalog/internal/codec"
	"github.com/podvault-labs/podcatalog/internal/domain"
	"github.com/podvault-labs/podcatalog/internal/platform/docstore"
	"github.com/podvault-labs/podcatalog/internal/platform/identity"
	"github.com/podvault-labs/podcatalog/internal/resolver"
)

var (
	// ErrNotFound reports an absent entity; callers treat it as empty state.
	ErrNotFound = docstore.ErrNotFound
	// ErrForbidden reports a caller whose effective role does not permit
	// the operation. Advisory only: enforcement is the store's job.
	ErrForbidden = errors.New("forbidden")
	// ErrLastAdmin guards against orphaning an entity by removing or
	// demoting its only admin.
	ErrLastAdmin = errors.New("entity must keep at least one admin")
	// ErrMemberExists rejects adding a webid that is already a member.
	ErrMemberExists = errors.New("webid is already a member")
)

// Service is the catalog store. It holds only its collaborators; there is
// no process-wide state.
type Service struct {
	store  docstore.Store
	ids    identity.Resolver
	bus    *audit.Bus
	logger *slog.Logger
	// pod overrides the addressed tenant; empty means the caller's own.
	pod string
}

// New constructs a Service. The bus may be nil when no audit trail is
// configured; mutations then skip publishing.
func New(store docstore.Store, ids identity.Resolver, bus *audit.Bus, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if ids == nil {
		return nil, errors.New("identity resolver is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, ids: ids, bus: bus, logger: logger}, nil
}

// ForPod returns a view of the service addressing another tenant's pod,
// used to open entities whose canonical documents live outside the
// caller's own storage. Role gating still applies to the caller.
func (s *Service) ForPod(webID string) *Service {
	view := *s
	view.pod = webID
	return &view
}

// tenantAndCaller resolves the pod being addressed and the identity
// performing the call. They coincide unless the service is a ForPod view.
func (s *Service) tenantAndCaller(ctx context.Context) (string, string, error) {
	caller, err := s.ids.CurrentIdentity(ctx)
	if err != nil {
		return "", "", err
	}
	tenant := s.pod
	if tenant == "" {
		tenant = caller
	}
	return tenant, caller, nil
}

func (s *Service) publish(event domain.AuditEvent) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event)
}

// newEntityID builds a tenant-local id: UTC timestamp plus a random
// suffix, sortable by creation time.
func newEntityID(now time.Time) string {
	suffix, _, _ := strings.Cut(uuid.NewString(), "-")
	return now.UTC().Format("20060102T150405") + "-" + suffix
}

func (s *Service) loadDataSpace(ctx context.Context, tenant, id string) (domain.DataSpace, string, error) {
	uri, err := resolver.DocumentFor(tenant, domain.KindDataSpace, id)
	if err != nil {
		return domain.DataSpace{}, "", err
	}
	doc, err := s.store.Get(ctx, uri)
	if err != nil {
		return domain.DataSpace{}, "", err
	}
	ds, err := codec.DecodeDataSpace(doc.Body, id)
	if err != nil {
		if errors.Is(err, codec.ErrMalformedDocument) {
			return domain.DataSpace{}, "", ErrNotFound
		}
		return domain.DataSpace{}, "", err
	}
	return ds, uri, nil
}

func (s *Service) saveDataSpace(ctx context.Context, uri string, ds domain.DataSpace) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	doc := docstore.Document{URI: uri, ContentType: codec.ContentType, Body: codec.EncodeDataSpace(ds)}
	if err := s.store.Put(ctx, doc); err != nil {
		return fmt.Errorf("write data space %s: %w", ds.ID, err)
	}
	return nil
}

func (s *Service) loadAsset(ctx context.Context, tenant, id string) (domain.Asset, string, error) {
	uri, err := resolver.DocumentFor(tenant, domain.KindAsset, id)
	if err != nil {
		return domain.Asset{}, "", err
	}
	doc, err := s.store.Get(ctx, uri)
	if err != nil {
		return domain.Asset{}, "", err
	}
	a, err := codec.DecodeAsset(doc.Body, id)
	if err != nil {
		if errors.Is(err, codec.ErrMalformedDocument) {
			return domain.Asset{}, "", ErrNotFound
		}
		return domain.Asset{}, "", err
	}
	return a, uri, nil
}

func (s *Service) saveAsset(ctx context.Context, uri string, a domain.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	doc := docstore.Document{URI: uri, ContentType: codec.ContentType, Body: codec.EncodeAsset(a)}
	if err := s.store.Put(ctx, doc); err != nil {
		return fmt.Errorf("write asset %s: %w", a.ID, err)
	}
	return nil
}
