package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/podvault-labs/podcatalog/internal/access"
	"github.com/podvault-labs/podcatalog/internal/domain"
)

// Membership edits are read-modify-writes of the full document. Two admins
// editing concurrently race: the final state is whichever write landed
// last, never a merge.

// AddMember grants webID a role on the entity. Caller must be an admin.
func (s *Service) AddMember(ctx context.Context, kind domain.Kind, entityID, webID string, role domain.Role) (domain.Member, error) {
	if !role.Valid() {
		return domain.Member{}, fmt.Errorf("invalid role %q", role)
	}
	var added domain.Member
	err := s.mutateMembers(ctx, kind, entityID, domain.ActionPermissionChange, webID,
		func(members []domain.Member) ([]domain.Member, error) {
			for _, m := range members {
				if m.WebID == webID {
					return nil, ErrMemberExists
				}
			}
			added = domain.Member{
				ID:       uuid.NewString(),
				EntityID: entityID,
				WebID:    webID,
				Role:     role,
				JoinedAt: time.Now().UTC(),
			}
			return append(members, added), nil
		})
	if err != nil {
		return domain.Member{}, err
	}
	return added, nil
}

// RemoveMember revokes webID's membership. Removing the only remaining
// admin fails with ErrLastAdmin, even when admins remove themselves.
func (s *Service) RemoveMember(ctx context.Context, kind domain.Kind, entityID, webID string) error {
	return s.mutateMembers(ctx, kind, entityID, domain.ActionPermissionChange, webID,
		func(members []domain.Member) ([]domain.Member, error) {
			found := false
			var out []domain.Member
			admins := 0
			for _, m := range members {
				if m.WebID == webID {
					found = true
					continue
				}
				if m.Role == domain.RoleAdmin {
					admins++
				}
				out = append(out, m)
			}
			if !found {
				return nil, ErrNotFound
			}
			if admins == 0 {
				return nil, ErrLastAdmin
			}
			return out, nil
		})
}

// UpdateMemberRole changes webID's role. Demoting the only remaining admin
// fails with ErrLastAdmin.
func (s *Service) UpdateMemberRole(ctx context.Context, kind domain.Kind, entityID, webID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return s.mutateMembers(ctx, kind, entityID, domain.ActionPermissionChange, webID,
		func(members []domain.Member) ([]domain.Member, error) {
			found := false
			admins := 0
			out := make([]domain.Member, len(members))
			for i, m := range members {
				if m.WebID == webID {
					found = true
					m.Role = role
				}
				if m.Role == domain.RoleAdmin {
					admins++
				}
				out[i] = m
			}
			if !found {
				return nil, ErrNotFound
			}
			if admins == 0 {
				return nil, ErrLastAdmin
			}
			return out, nil
		})
}

// mutateMembers loads the entity of the given kind, applies the edit under
// an admin gate, writes the document back, and publishes one permission
// event naming the affected webid.
func (s *Service) mutateMembers(ctx context.Context, kind domain.Kind, entityID string, action domain.Action, target string,
	edit func([]domain.Member) ([]domain.Member, error)) error {
	tenant, caller, err := s.tenantAndCaller(ctx)
	if err != nil {
		return err
	}
	switch kind {
	case domain.KindAsset:
		a, uri, err := s.loadAsset(ctx, tenant, entityID)
		if err != nil {
			return err
		}
		if !access.CanAdminister(a.Members, caller) {
			return ErrForbidden
		}
		members, err := edit(a.Members)
		if err != nil {
			return err
		}
		a.Members = members
		if err := s.saveAsset(ctx, uri, a); err != nil {
			return err
		}
		s.publish(domain.AuditEvent{Actor: caller, Action: action, Object: uri, Target: target})
		return nil
	default:
		ds, uri, err := s.loadDataSpace(ctx, tenant, entityID)
		if err != nil {
			return err
		}
		if !access.CanAdminister(ds.Members, caller) {
			return ErrForbidden
		}
		members, err := edit(ds.Members)
		if err != nil {
			return err
		}
		ds.Members = members
		if err := s.saveDataSpace(ctx, uri, ds); err != nil {
			return err
		}
		s.publish(domain.AuditEvent{Actor: caller, Action: action, Object: uri, Target: target})
		return nil
	}
}
