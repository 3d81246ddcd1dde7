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

type CreateAssetInput struct {
	Title       string
	Description string
	Purpose     string
	Access      domain.AccessMode
	Tags        []string
	Category    string
}

// CreateAsset writes a new asset scoped inside the given data space. The
// caller needs write on the data space and becomes the asset's single
// initial admin; asset membership is not inherited from the data space.
func (s *Service) CreateAsset(ctx context.Context, dataSpaceID string, input CreateAssetInput) (domain.Asset, error) {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.Asset{}, err
	}
	parent, _, err := s.loadDataSpace(ctx, tenant, dataSpaceID)
	if err != nil {
		return domain.Asset{}, err
	}
	if !access.CanWrite(parent.Members, caller) {
		return domain.Asset{}, ErrForbidden
	}
	now := time.Now().UTC()
	id := newEntityID(now)
	container, err := resolver.ContainerFor(tenant, domain.KindAsset)
	if err != nil {
		return domain.Asset{}, err
	}
	uri, err := resolver.DocumentFor(tenant, domain.KindAsset, id)
	if err != nil {
		return domain.Asset{}, err
	}
	a := domain.Asset{
		ID:              id,
		BelongsTo:       dataSpaceID,
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
	if err := s.saveAsset(ctx, uri, a); err != nil {
		return domain.Asset{}, err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionCreate, Object: uri, Target: container})
	return a, nil
}

func (s *Service) GetAsset(ctx context.Context, id string) (domain.Asset, error) {
	tenant, _, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.Asset{}, err
	}
	a, _, err := s.loadAsset(ctx, tenant, id)
	return a, err
}

type UpdateAssetFields struct {
	Title       *string
	Description *string
	Purpose     *string
	Access      *domain.AccessMode
	Tags        *[]string
	Category    *string
}

// UpdateAsset is a read-modify-write of the whole document, last write
// wins.
func (s *Service) UpdateAsset(ctx context.Context, id string, fields UpdateAssetFields) (domain.Asset, error) {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.Asset{}, err
	}
	a, uri, err := s.loadAsset(ctx, tenant, id)
	if err != nil {
		return domain.Asset{}, err
	}
	if !access.CanWrite(a.Members, caller) {
		return domain.Asset{}, ErrForbidden
	}
	if fields.Title != nil {
		a.Title = *fields.Title
	}
	if fields.Description != nil {
		a.Description = *fields.Description
	}
	if fields.Purpose != nil {
		a.Purpose = *fields.Purpose
	}
	if fields.Access != nil {
		a.Access = *fields.Access
	}
	if fields.Tags != nil {
		a.Tags = *fields.Tags
	}
	if fields.Category != nil {
		a.Category = *fields.Category
	}
	if err := s.saveAsset(ctx, uri, a); err != nil {
		return domain.Asset{}, err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionUpdate, Object: uri})
	return a, nil
}

// ListAssets returns the active assets belonging to one data space. The
// asset container holds assets of every data space in the pod; filtering
// is client-side, O(n) in documents.
func (s *Service) ListAssets(ctx context.Context, dataSpaceID string) ([]domain.Asset, error) {
	tenant, _, err := s.tenantAndCaller(ctx)
	if err != nil {
		return nil, err
	}
	container, err := resolver.ContainerFor(tenant, domain.KindAsset)
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
	var out []domain.Asset
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
		a, err := codec.DecodeAsset(doc.Body, expected)
		if err != nil {
			skipped++
			continue
		}
		if !a.Active || a.BelongsTo != dataSpaceID {
			continue
		}
		out = append(out, a)
	}
	if skipped > 0 {
		s.logger.Warn("skipped undecodable documents", "container", container, "skipped", skipped)
	}
	return out, nil
}

// DeleteAsset flips the active flag, never removing the document.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return err
	}
	a, uri, err := s.loadAsset(ctx, tenant, id)
	if err != nil {
		return err
	}
	if !access.CanAdminister(a.Members, caller) {
		return ErrForbidden
	}
	a.Active = false
	if err := s.saveAsset(ctx, uri, a); err != nil {
		return err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionDelete, Object: uri})
	return nil
}
