// Package access projects the effective role of a caller from an entity's
// member list. The projection gates UI-facing mutations only; real
// enforcement lives in the backing store's own access rules, and nothing
// here protects a caller who writes to the document through another path.
package access

import (
	"github.com/podvault-labs/podcatalog/internal/domain"
)

// EffectiveRole returns the strongest role the caller holds, RoleNone when
// the caller is not a member.
func EffectiveRole(members []domain.Member, webID string) domain.Role {
	best := domain.RoleNone
	for _, m := range members {
		if m.WebID != webID {
			continue
		}
		if best == domain.RoleNone || m.Role.AtLeast(best) {
			best = m.Role
		}
	}
	return best
}

// CanRead reports whether the caller may view the entity.
func CanRead(members []domain.Member, webID string) bool {
	return EffectiveRole(members, webID).AtLeast(domain.RoleRead)
}

// CanWrite reports whether the caller may mutate entity fields and
// metadata.
func CanWrite(members []domain.Member, webID string) bool {
	return EffectiveRole(members, webID).AtLeast(domain.RoleWrite)
}

// CanAdminister reports whether the caller may change membership or delete
// the entity.
func CanAdminister(members []domain.Member, webID string) bool {
	return EffectiveRole(members, webID).AtLeast(domain.RoleAdmin)
}
