package access

import (
	"testing"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

func members() []domain.Member {
	joined := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Member{
		{ID: "m-1", EntityID: "e", WebID: "https://admin.example/#me", Role: domain.RoleAdmin, JoinedAt: joined},
		{ID: "m-2", EntityID: "e", WebID: "https://writer.example/#me", Role: domain.RoleWrite, JoinedAt: joined},
		{ID: "m-3", EntityID: "e", WebID: "https://reader.example/#me", Role: domain.RoleRead, JoinedAt: joined},
	}
}

func TestEffectiveRole(t *testing.T) {
	ms := members()
	cases := []struct {
		webID string
		want  domain.Role
	}{
		{"https://admin.example/#me", domain.RoleAdmin},
		{"https://writer.example/#me", domain.RoleWrite},
		{"https://reader.example/#me", domain.RoleRead},
		{"https://stranger.example/#me", domain.RoleNone},
	}
	for _, tc := range cases {
		if got := EffectiveRole(ms, tc.webID); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.webID, got, tc.want)
		}
	}
}

func TestEffectiveRoleKeepsStrongest(t *testing.T) {
	joined := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	ms := []domain.Member{
		{ID: "m-1", EntityID: "e", WebID: "https://dual.example/#me", Role: domain.RoleRead, JoinedAt: joined},
		{ID: "m-2", EntityID: "e", WebID: "https://dual.example/#me", Role: domain.RoleWrite, JoinedAt: joined},
	}
	if got := EffectiveRole(ms, "https://dual.example/#me"); got != domain.RoleWrite {
		t.Fatalf("duplicate membership must yield the strongest role, got %q", got)
	}
}

func TestRoleGates(t *testing.T) {
	ms := members()
	if !CanRead(ms, "https://reader.example/#me") {
		t.Fatalf("reader must be able to read")
	}
	if CanWrite(ms, "https://reader.example/#me") {
		t.Fatalf("reader must not be able to write")
	}
	if !CanWrite(ms, "https://writer.example/#me") {
		t.Fatalf("writer must be able to write")
	}
	if CanAdminister(ms, "https://writer.example/#me") {
		t.Fatalf("writer must not be able to administer")
	}
	if !CanAdminister(ms, "https://admin.example/#me") {
		t.Fatalf("admin must be able to administer")
	}
	if CanRead(ms, "https://stranger.example/#me") {
		t.Fatalf("non-member must not be able to read")
	}
}
