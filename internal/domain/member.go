package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the access level a member holds on an entity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleWrite Role = "write"
	RoleRead  Role = "read"
	// RoleNone is the projection result for a caller with no membership.
	RoleNone Role = ""
)

var roleLevels = map[Role]int{
	RoleRead:  1,
	RoleWrite: 2,
	RoleAdmin: 3,
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r grants everything required does.
func (r Role) AtLeast(required Role) bool {
	requiredLevel := roleLevels[required]
	if requiredLevel == 0 {
		return false
	}
	return roleLevels[r] >= requiredLevel
}

// Member grants a WebID a role on a single entity. Asset members are an
// independent selection, never inherited from the enclosing data space.
type Member struct {
	ID       string
	EntityID string
	WebID    string
	Role     Role
	JoinedAt time.Time
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("member id is required")
	}
	if strings.TrimSpace(m.EntityID) == "" {
		return errors.New("member entity id is required")
	}
	if strings.TrimSpace(m.WebID) == "" {
		return errors.New("member webid is required")
	}
	if !m.Role.Valid() {
		return errors.New("member role must be one of: admin, write, read")
	}
	return nil
}
