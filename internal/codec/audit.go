package codec

import (
	"fmt"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

// Audit events use the activity vocabulary: one actor/object/target
// activity per document, typed by the action.

var actionTypes = map[domain.Action]string{
	domain.ActionCreate:           "as:Create",
	domain.ActionUpdate:           "as:Update",
	domain.ActionDelete:           "as:Delete",
	domain.ActionPermissionChange: "pc:PermissionChange",
}

// EncodeAuditEvent renders one immutable event document.
func EncodeAuditEvent(e domain.AuditEvent) []byte {
	g := &Graph{}
	g.AddIRI(subjectEvent, predType, actionTypes[e.Action])
	g.AddIRI(subjectEvent, "as:actor", e.Actor)
	g.AddIRI(subjectEvent, "as:object", e.Object)
	if e.Target != "" {
		g.AddIRI(subjectEvent, "as:target", e.Target)
	}
	g.AddTyped(subjectEvent, "as:published", formatTime(e.CreatedAt), datatypeDateTime)
	return EncodeGraph(g)
}

// DecodeAuditEvent parses one event document. Any missing required field
// is a malformed document; the audit reader skips those.
func DecodeAuditEvent(body []byte) (domain.AuditEvent, error) {
	g, _ := ParseGraph(body)
	typ, ok := g.First(subjectEvent, predType)
	if !ok {
		return domain.AuditEvent{}, fmt.Errorf("%w: missing event type", ErrMalformedDocument)
	}
	var e domain.AuditEvent
	for action, t := range actionTypes {
		if t == typ.Object {
			e.Action = action
			break
		}
	}
	if !e.Action.Valid() {
		return domain.AuditEvent{}, fmt.Errorf("%w: unknown event type %q", ErrMalformedDocument, typ.Object)
	}
	if st, ok := g.First(subjectEvent, "as:actor"); ok {
		e.Actor = st.Object
	}
	if st, ok := g.First(subjectEvent, "as:object"); ok {
		e.Object = st.Object
	}
	if st, ok := g.First(subjectEvent, "as:target"); ok {
		e.Target = st.Object
	}
	if st, ok := g.First(subjectEvent, "as:published"); ok {
		t, err := time.Parse(time.RFC3339Nano, st.Object)
		if err != nil {
			return domain.AuditEvent{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedDocument, st.Object)
		}
		e.CreatedAt = t.UTC()
	}
	if err := e.Validate(); err != nil {
		return domain.AuditEvent{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return e, nil
}
