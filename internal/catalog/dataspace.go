package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/podvault-labs/podcatalog/internal/access"
	"github.com/podvault-labs/podcatalog/internal/codec"
	"github.com/podvault-labs/podcatalog/internal/domain"
	"github.com/podvault-labs/podcatalog/internal/resolver"
)

type CreateDataSpaceInput struct {
	Title       string
	Description string
	Purpose     string
	Access      domain.AccessMode
	Tags        []string
	Category    string
}

// CreateDataSpace writes a new data space into the caller's pod. The
// caller becomes the single initial admin member.
func (s *Service) CreateDataSpace(ctx context.Context, input CreateDataSpaceInput) (domain.DataSpace, error) {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.DataSpace{}, err
	}
	now := time.Now().UTC()
	id := newEntityID(now)
	container, err := resolver.ContainerFor(tenant, domain.KindDataSpace)
	if err != nil {
		return domain.DataSpace{}, err
	}
	uri, err := resolver.DocumentFor(tenant, domain.KindDataSpace, id)
	if err != nil {
		return domain.DataSpace{}, err
	}
	ds := domain.DataSpace{
		ID:              id,
		Title:           input.Title,
		Description:     input.Description,
		Purpose:         input.Purpose,
		Access:          input.Access,
		StorageLocation: container,
		CreatedBy:       caller,
		CreatedAt:       now,
		Active:          true,
		Tags:            input.Tags,
		Category:        input.Category,
		Members: []domain.Member{{
			ID:       uuid.NewString(),
			EntityID: id,
			WebID:    caller,
			Role:     domain.RoleAdmin,
			JoinedAt: now,
		}},
	}
	if err := s.saveDataSpace(ctx, uri, ds); err != nil {
		return domain.DataSpace{}, err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionCreate, Object: uri, Target: container})
	return ds, nil
}

// GetDataSpace returns the data space even when it is inactive; listing is
// where soft-deleted entities disappear.
func (s *Service) GetDataSpace(ctx context.Context, id string) (domain.DataSpace, error) {
	tenant, _, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.DataSpace{}, err
	}
	ds, _, err := s.loadDataSpace(ctx, tenant, id)
	return ds, err
}

type UpdateDataSpaceFields struct {
	Title       *string
	Description *string
	Purpose     *string
	Access      *domain.AccessMode
	Tags        *[]string
	Category    *string
}

// UpdateDataSpace is a read-modify-write of the whole document; a
// concurrent writer's changes can be overwritten (last write wins).
func (s *Service) UpdateDataSpace(ctx context.Context, id string, fields UpdateDataSpaceFields) (domain.DataSpace, error) {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.DataSpace{}, err
	}
	ds, uri, err := s.loadDataSpace(ctx, tenant, id)
	if err != nil {
		return domain.DataSpace{}, err
	}
	if !access.CanWrite(ds.Members, caller) {
		return domain.DataSpace{}, ErrForbidden
	}
	if fields.Title != nil {
		ds.Title = *fields.Title
	}
	if fields.Description != nil {
		ds.Description = *fields.Description
	}
	if fields.Purpose != nil {
		ds.Purpose = *fields.Purpose
	}
	if fields.Access != nil {
		ds.Access = *fields.Access
	}
	if fields.Tags != nil {
		ds.Tags = *fields.Tags
	}
	if fields.Category != nil {
		ds.Category = *fields.Category
	}
	if err := s.saveDataSpace(ctx, uri, ds); err != nil {
		return domain.DataSpace{}, err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionUpdate, Object: uri})
	return ds, nil
}

// ListDataSpaces enumerates the caller's data space container and returns
// the active entities. Documents that fail to decode are skipped. When the
// container yields no document following the naming convention but does
// hold children, every child is tried raw. That is a degraded mode for
// containers with stale indexing, not the primary path.
func (s *Service) ListDataSpaces(ctx context.Context) ([]domain.DataSpace, error) {
	tenant, _, err := s.tenantAndCaller(ctx)
	if err != nil {
		return nil, err
	}
	container, err := resolver.ContainerFor(tenant, domain.KindDataSpace)
	if err != nil {
		return nil, err
	}
	uris, err := s.store.ListContainer(ctx, container)
	if err != nil {
		return nil, err
	}
	candidates := filterEntityDocuments(uris)
	strict := true
	if len(candidates) == 0 && len(uris) > 0 {
		s.logger.Warn("container listing degraded to raw scan", "container", container)
		candidates = uris
		strict = false
	}
	var out []domain.DataSpace
	skipped := 0
	for _, uri := range candidates {
		doc, err := s.store.Get(ctx, uri)
		if err != nil {
			skipped++
			continue
		}
		expected := ""
		if strict {
			expected = resolver.EntityID(uri)
		}
		ds, err := codec.DecodeDataSpace(doc.Body, expected)
		if err != nil {
			skipped++
			continue
		}
		if !ds.Active {
			continue
		}
		out = append(out, ds)
	}
	if skipped > 0 {
		s.logger.Warn("skipped undecodable documents", "container", container, "skipped", skipped)
	}
	return out, nil
}

// DeleteDataSpace flips the active flag. The document stays in place:
// visibility to other holders cannot be revoked by deleting the creator's
// copy, so entities are only ever marked inactive.
func (s *Service) DeleteDataSpace(ctx context.Context, id string) error {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return err
	}
	ds, uri, err := s.loadDataSpace(ctx, tenant, id)
	if err != nil {
		return err
	}
	if !access.CanAdminister(ds.Members, caller) {
		return ErrForbidden
	}
	ds.Active = false
	if err := s.saveDataSpace(ctx, uri, ds); err != nil {
		return err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionDelete, Object: uri})
	return nil
}

func filterEntityDocuments(uris []string) []string {
	var out []string
	for _, uri := range uris {
		if resolver.IsEntityDocument(uri) {
			out = append(out, uri)
		}
	}
	return out
}
