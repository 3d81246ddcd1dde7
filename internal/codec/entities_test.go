package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

func sampleDataSpace() domain.DataSpace {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return domain.DataSpace{
		ID:              "20260314T092653-9b1deb4d",
		Title:           "Research",
		Description:     "Shared research collection",
		Purpose:         "collaboration",
		Access:          domain.AccessPrivate,
		StorageLocation: "https://alice.pod.example/podcatalog/dataspaces/",
		CreatedBy:       "https://alice.pod.example/profile/card#me",
		CreatedAt:       created,
		Active:          true,
		Tags:            []string{"research", "2026"},
		Category:        "science",
		Members: []domain.Member{
			{
				ID:       "m-1",
				EntityID: "20260314T092653-9b1deb4d",
				WebID:    "https://alice.pod.example/profile/card#me",
				Role:     domain.RoleAdmin,
				JoinedAt: created,
			},
			{
				ID:       "m-2",
				EntityID: "20260314T092653-9b1deb4d",
				WebID:    "https://bob.pod.example/profile/card#me",
				Role:     domain.RoleWrite,
				JoinedAt: created.Add(time.Hour),
			},
		},
		Metadata: []domain.Metadata{
			{
				ID:        "md-1",
				Key:       "status",
				Value:     domain.StringValue("active"),
				CreatedBy: "https://alice.pod.example/profile/card#me",
				CreatedAt: created,
			},
			{
				ID:        "md-2",
				Key:       "sample-count",
				Value:     domain.NumberValue(1284.5),
				CreatedBy: "https://alice.pod.example/profile/card#me",
				CreatedAt: created,
			},
			{
				ID:        "md-3",
				Key:       "validated",
				Value:     domain.BooleanValue(true),
				CreatedBy: "https://alice.pod.example/profile/card#me",
				CreatedAt: created,
			},
			{
				ID:        "md-4",
				Key:       "collected",
				Value:     domain.DateValue(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)),
				CreatedBy: "https://alice.pod.example/profile/card#me",
				CreatedAt: created,
			},
			{
				ID:        "md-5",
				Key:       "homepage",
				Value:     domain.URLValue("https://research.example/project"),
				CreatedBy: "https://alice.pod.example/profile/card#me",
				CreatedAt: created,
			},
		},
	}
}

func TestDataSpaceRoundTrip(t *testing.T) {
	want := sampleDataSpace()
	got, err := DecodeDataSpace(EncodeDataSpace(want), want.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestAssetRoundTrip(t *testing.T) {
	created := time.Date(2026, 4, 2, 15, 4, 5, 0, time.UTC)
	want := domain.Asset{
		ID:              "20260402T150405-7c9e6679",
		BelongsTo:       "20260314T092653-9b1deb4d",
		Title:           "Dataset A",
		Description:     "Quarterly measurements",
		Access:          domain.AccessRestricted,
		StorageLocation: "https://alice.pod.example/podcatalog/assets/",
		CreatedBy:       "https://alice.pod.example/profile/card#me",
		CreatedAt:       created,
		Active:          true,
		Members: []domain.Member{{
			ID:       "m-1",
			EntityID: "20260402T150405-7c9e6679",
			WebID:    "https://alice.pod.example/profile/card#me",
			Role:     domain.RoleAdmin,
			JoinedAt: created,
		}},
		Records: []domain.AssetRecord{{
			ID:                 "r-1",
			Created:            time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC),
			Modified:           time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
			Source:             "https://sensors.example/feed",
			Chargeable:         true,
			TemporalCoverage:   "2025-Q4",
			GeographicCoverage: "EU",
			Format:             "text/csv",
			License:            "CC-BY-4.0",
			CreatedBy:          "https://alice.pod.example/profile/card#me",
			CreatedAt:          created,
		}},
	}
	got, err := DecodeAsset(EncodeAsset(want), want.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestDecodePreservesForeignStatements(t *testing.T) {
	ds := sampleDataSpace()
	doc := string(EncodeDataSpace(ds))
	doc += "<#it> <https://schema.example/origin> \"legacy importer\" .\n"
	doc += "<#annotation-1> rdf:type <https://schema.example/Note> .\n"

	decoded, err := DecodeDataSpace([]byte(doc), ds.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Extra) != 2 {
		t.Fatalf("expected 2 foreign statements, got %d", len(decoded.Extra))
	}

	// A second round trip must keep them.
	again, err := DecodeDataSpace(EncodeDataSpace(decoded), ds.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again.Extra) != 2 {
		t.Fatalf("foreign statements dropped on re-encode, got %d", len(again.Extra))
	}
}

func TestDecodeDataSpaceWrongID(t *testing.T) {
	ds := sampleDataSpace()
	_, err := DecodeDataSpace(EncodeDataSpace(ds), "different-id")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestDecodeDataSpaceMissingHeader(t *testing.T) {
	_, err := DecodeDataSpace([]byte("<#x> pc:title \"no header\" .\n"), "")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestDecodeSkipsDamagedLines(t *testing.T) {
	ds := sampleDataSpace()
	lines := strings.Split(string(EncodeDataSpace(ds)), "\n")
	// Truncate one member statement mid-literal.
	for i, line := range lines {
		if strings.Contains(line, "pc:webId") && strings.Contains(line, "bob") {
			lines[i] = line[:len(line)/2]
			break
		}
	}
	decoded, err := DecodeDataSpace([]byte(strings.Join(lines, "\n")), ds.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Bob's member record lost its webid and is dropped; Alice survives.
	if len(decoded.Members) != 1 {
		t.Fatalf("expected 1 surviving member, got %d", len(decoded.Members))
	}
	if decoded.Members[0].WebID != "https://alice.pod.example/profile/card#me" {
		t.Fatalf("unexpected surviving member: %s", decoded.Members[0].WebID)
	}
}

func TestDecodeLiteralEscapes(t *testing.T) {
	ds := sampleDataSpace()
	ds.Description = "line one\nline \"two\"\twith\\slash"
	got, err := DecodeDataSpace(EncodeDataSpace(ds), ds.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != ds.Description {
		t.Fatalf("escape round trip mismatch: %q", got.Description)
	}
}

func TestDecodeUnknownValueDatatypeRejected(t *testing.T) {
	ds := sampleDataSpace()
	doc := string(EncodeDataSpace(ds))
	doc += "<#meta-md-9> rdf:type pc:Metadata .\n"
	doc += "<#meta-md-9> pc:key \"weird\" .\n"
	doc += "<#meta-md-9> pc:value \"blob\"^^<https://schema.example/Binary> .\n"

	decoded, err := DecodeDataSpace([]byte(doc), ds.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, md := range decoded.Metadata {
		if md.ID == "md-9" {
			t.Fatalf("metadata with unknown datatype should be dropped")
		}
	}
}
