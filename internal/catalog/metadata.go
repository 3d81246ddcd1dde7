package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/podvault-labs/podcatalog/internal/access"
	"github.com/podvault-labs/podcatalog/internal/domain"
)

// Metadata sub-records are appended and removed independently; sibling
// sub-records keep their identity because the edit rewrites the document
// with everything else unchanged. Same last-write-wins caveat as
// membership edits.

// AddMetadata appends a key/value entry to the entity's document.
func (s *Service) AddMetadata(ctx context.Context, kind domain.Kind, entityID, key string, value domain.Value) (domain.Metadata, error) {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.Metadata{}, err
	}
	md := domain.Metadata{
		ID:        uuid.NewString(),
		Key:       key,
		Value:     value,
		CreatedBy: caller,
		CreatedAt: time.Now().UTC(),
	}
	if err := md.Validate(); err != nil {
		return domain.Metadata{}, err
	}
	err = s.mutateMetadata(ctx, tenant, caller, kind, entityID, func(metadata []domain.Metadata) ([]domain.Metadata, error) {
		return append(metadata, md), nil
	})
	if err != nil {
		return domain.Metadata{}, err
	}
	return md, nil
}

// RemoveMetadata deletes one entry by id.
func (s *Service) RemoveMetadata(ctx context.Context, kind domain.Kind, entityID, metadataID string) error {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return err
	}
	return s.mutateMetadata(ctx, tenant, caller, kind, entityID, func(metadata []domain.Metadata) ([]domain.Metadata, error) {
		out, found := removeMetadataByID(metadata, metadataID)
		if !found {
			return nil, ErrNotFound
		}
		return out, nil
	})
}

type AssetRecordInput struct {
	Created            time.Time
	Modified           time.Time
	Source             string
	Chargeable         bool
	TemporalCoverage   string
	GeographicCoverage string
	Format             string
	License            string
}

// AddAssetRecord appends a structured descriptive record to an asset.
func (s *Service) AddAssetRecord(ctx context.Context, assetID string, input AssetRecordInput) (domain.AssetRecord, error) {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return domain.AssetRecord{}, err
	}
	record := domain.AssetRecord{
		ID:                 uuid.NewString(),
		Created:            input.Created,
		Modified:           input.Modified,
		Source:             input.Source,
		Chargeable:         input.Chargeable,
		TemporalCoverage:   input.TemporalCoverage,
		GeographicCoverage: input.GeographicCoverage,
		Format:             input.Format,
		License:            input.License,
		CreatedBy:          caller,
		CreatedAt:          time.Now().UTC(),
	}
	a, uri, err := s.loadAsset(ctx, tenant, assetID)
	if err != nil {
		return domain.AssetRecord{}, err
	}
	if !access.CanWrite(a.Members, caller) {
		return domain.AssetRecord{}, ErrForbidden
	}
	a.Records = append(a.Records, record)
	if err := s.saveAsset(ctx, uri, a); err != nil {
		return domain.AssetRecord{}, err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionUpdate, Object: uri})
	return record, nil
}

// RemoveAssetRecord deletes one structured record by id.
func (s *Service) RemoveAssetRecord(ctx context.Context, assetID, recordID string) error {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return err
	}
	a, uri, err := s.loadAsset(ctx, tenant, assetID)
	if err != nil {
		return err
	}
	if !access.CanWrite(a.Members, caller) {
		return ErrForbidden
	}
	found := false
	var out []domain.AssetRecord
	for _, r := range a.Records {
		if r.ID == recordID {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return ErrNotFound
	}
	a.Records = out
	if err := s.saveAsset(ctx, uri, a); err != nil {
		return err
	}
	s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionUpdate, Object: uri})
	return nil
}

// mutateMetadata applies a metadata edit to either entity kind under a
// write gate.
func (s *Service) mutateMetadata(ctx context.Context, tenant, caller string, kind domain.Kind, entityID string,
	edit func([]domain.Metadata) ([]domain.Metadata, error)) error {
	switch kind {
	case domain.KindAsset:
		a, uri, err := s.loadAsset(ctx, tenant, entityID)
		if err != nil {
			return err
		}
		if !access.CanWrite(a.Members, caller) {
			return ErrForbidden
		}
		metadata, err := edit(a.Metadata)
		if err != nil {
			return err
		}
		a.Metadata = metadata
		if err := s.saveAsset(ctx, uri, a); err != nil {
			return err
		}
		s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionUpdate, Object: uri})
		return nil
	default:
		ds, uri, err := s.loadDataSpace(ctx, tenant, entityID)
		if err != nil {
			return err
		}
		if !access.CanWrite(ds.Members, caller) {
			return ErrForbidden
		}
		metadata, err := edit(ds.Metadata)
		if err != nil {
			return err
		}
		ds.Metadata = metadata
		if err := s.saveDataSpace(ctx, uri, ds); err != nil {
			return err
		}
		s.publish(domain.AuditEvent{Actor: caller, Action: domain.ActionUpdate, Object: uri})
		return nil
	}
}

func removeMetadataByID(metadata []domain.Metadata, id string) ([]domain.Metadata, bool) {
	found := false
	var out []domain.Metadata
	for _, md := range metadata {
		if md.ID == id {
			found = true
			continue
		}
		out = append(out, md)
	}
	return out, found
}
