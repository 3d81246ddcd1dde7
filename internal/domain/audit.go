package domain

import (
	"errors"
	"strings"
	"time"
)

// Action classifies an audit event.
type Action string

const (
	ActionCreate           Action = "Create"
	ActionUpdate           Action = "Update"
	ActionDelete           Action = "Delete"
	ActionPermissionChange Action = "PermissionChange"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionPermissionChange:
		return true
	}
	return false
}

// AuditEvent is an immutable record of a catalog mutation. Once written to
// the shared audit container it is never updated or deleted.
type AuditEvent struct {
	Actor     string
	Action    Action
	Object    string
	Target    string
	CreatedAt time.Time
}

func (e AuditEvent) Validate() error {
	if strings.TrimSpace(e.Actor) == "" {
		return errors.New("actor is required")
	}
	if !e.Action.Valid() {
		return errors.New("action must be one of: Create, Update, Delete, PermissionChange")
	}
	if strings.TrimSpace(e.Object) == "" {
		return errors.New("object is required")
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created timestamp is required")
	}
	return nil
}
