// Package resolver derives canonical storage locations. Every function is
// a pure mapping of (tenant identity, kind, id) so independent processes
// resolve the same entity to the same document.
package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

var ErrUnresolvedIdentity = errors.New("identity could not be resolved")

const (
	catalogRoot = "podcatalog"
	// DocumentExt is the extension of every catalog document.
	DocumentExt = ".ttl"
)

// PodBase derives the pod origin from a tenant WebID.
func PodBase(tenant string) (string, error) {
	if strings.TrimSpace(tenant) == "" {
		return "", ErrUnresolvedIdentity
	}
	u, err := url.Parse(tenant)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not a resolvable webid", ErrUnresolvedIdentity, tenant)
	}
	return u.Scheme + "://" + u.Host + "/", nil
}

// ContainerFor resolves the container holding all documents of one kind in
// the tenant's pod.
func ContainerFor(tenant string, kind domain.Kind) (string, error) {
	base, err := PodBase(tenant)
	if err != nil {
		return "", err
	}
	return base + catalogRoot + "/" + kindSegment(kind) + "/", nil
}

// DocumentFor resolves the canonical document of one entity.
func DocumentFor(tenant string, kind domain.Kind, id string) (string, error) {
	container, err := ContainerFor(tenant, kind)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(id) == "" {
		return "", errors.New("entity id is required")
	}
	return container + id + DocumentExt, nil
}

// IsEntityDocument reports whether a container child follows the document
// naming convention.
func IsEntityDocument(uri string) bool {
	return strings.HasSuffix(uri, DocumentExt)
}

// EntityID extracts the id encoded in a document URI.
func EntityID(uri string) string {
	name := uri
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, DocumentExt)
}

// AuditContainer normalizes the shared audit container URI.
func AuditContainer(base string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", errors.New("audit container is required")
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base, nil
}

// AuditDocumentFor names an event document after its timestamp, with the
// filesystem-unsafe colons normalized away.
func AuditDocumentFor(container string, t time.Time) (string, error) {
	container, err := AuditContainer(container)
	if err != nil {
		return "", err
	}
	stamp := strings.ReplaceAll(t.UTC().Format(time.RFC3339Nano), ":", "-")
	return container + stamp + DocumentExt, nil
}

func kindSegment(kind domain.Kind) string {
	switch kind {
	case domain.KindAsset:
		return "assets"
	default:
		return "dataspaces"
	}
}
