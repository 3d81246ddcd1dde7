package resolver

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

const webid = "https://alice.pod.example/profile/card#me"

func TestContainerForIsDeterministic(t *testing.T) {
	a, err := ContainerFor(webid, domain.KindDataSpace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ContainerFor(webid, domain.KindDataSpace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("resolution is not deterministic: %q vs %q", a, b)
	}
	if a != "https://alice.pod.example/podcatalog/dataspaces/" {
		t.Fatalf("unexpected container: %q", a)
	}
}

func TestDocumentForSeparatesKinds(t *testing.T) {
	ds, err := DocumentFor(webid, domain.KindDataSpace, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	asset, err := DocumentFor(webid, domain.KindAsset, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds == asset {
		t.Fatalf("kinds must resolve to distinct documents: %q", ds)
	}
	if EntityID(ds) != "abc" || EntityID(asset) != "abc" {
		t.Fatalf("EntityID must invert DocumentFor")
	}
	if !IsEntityDocument(ds) {
		t.Fatalf("document uri must match the naming convention: %q", ds)
	}
}

func TestResolutionRequiresIdentity(t *testing.T) {
	if _, err := ContainerFor("", domain.KindDataSpace); !errors.Is(err, ErrUnresolvedIdentity) {
		t.Fatalf("expected ErrUnresolvedIdentity, got %v", err)
	}
	if _, err := ContainerFor("   ", domain.KindAsset); !errors.Is(err, ErrUnresolvedIdentity) {
		t.Fatalf("expected ErrUnresolvedIdentity, got %v", err)
	}
	if _, err := DocumentFor("not a webid", domain.KindAsset, "x"); !errors.Is(err, ErrUnresolvedIdentity) {
		t.Fatalf("expected ErrUnresolvedIdentity, got %v", err)
	}
}

func TestAuditDocumentNameHasNoColons(t *testing.T) {
	stamp := time.Date(2026, 7, 9, 13, 45, 30, 500000000, time.UTC)
	uri, err := AuditDocumentFor("https://audit.pod.example/shared/audit", stamp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name := uri[strings.LastIndex(uri, "/")+1:]
	if strings.Contains(name, ":") {
		t.Fatalf("audit filename must not contain colons: %q", name)
	}
	if !strings.HasSuffix(name, DocumentExt) {
		t.Fatalf("audit filename must carry the document extension: %q", name)
	}
	if !strings.HasPrefix(name, "2026-07-09T13-45-30") {
		t.Fatalf("audit filename must start with the normalized timestamp: %q", name)
	}
}

func TestAuditContainerNormalizesSlash(t *testing.T) {
	got, err := AuditContainer("https://audit.pod.example/shared/audit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://audit.pod.example/shared/audit/" {
		t.Fatalf("unexpected container: %q", got)
	}
}
