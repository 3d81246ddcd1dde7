package docstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	doc := Document{URI: "https://pod.example/c/a.ttl", ContentType: "text/turtle", Body: []byte("x")}
	if err := s.Put(context.Background(), doc); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(context.Background(), doc.URI)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	// Returned bodies are copies, not aliases of the stored buffer.
	got.Body[0] = 'y'
	again, err := s.Get(context.Background(), doc.URI)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Body[0] != 'x' {
		t.Fatalf("stored body was mutated through a returned copy")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "https://pod.example/none.ttl"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), "https://pod.example/none.ttl"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListsDirectChildrenOnly(t *testing.T) {
	s := NewMemoryStore()
	for _, uri := range []string{
		"https://pod.example/c/a.ttl",
		"https://pod.example/c/b.ttl",
		"https://pod.example/c/nested/d.ttl",
		"https://pod.example/other/e.ttl",
	} {
		if err := s.Put(context.Background(), Document{URI: uri, Body: []byte("x")}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	uris, err := s.ListContainer(context.Background(), "https://pod.example/c")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"https://pod.example/c/a.ttl", "https://pod.example/c/b.ttl"}
	if !reflect.DeepEqual(uris, want) {
		t.Fatalf("unexpected listing: %#v", uris)
	}
}
