package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests and the demo wiring.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]Document{}}
}

func (s *MemoryStore) Get(ctx context.Context, uri string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, ErrNotFound
	}
	body := make([]byte, len(doc.Body))
	copy(body, doc.Body)
	doc.Body = body
	return doc, nil
}

func (s *MemoryStore) Put(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	body := make([]byte, len(doc.Body))
	copy(body, doc.Body)
	doc.Body = body
	s.docs[doc.URI] = doc
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[uri]; !ok {
		return ErrNotFound
	}
	delete(s.docs, uri)
	return nil
}

func (s *MemoryStore) ListContainer(ctx context.Context, containerURI string) ([]string, error) {
	prefix := containerURI
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var uris []string
	for uri := range s.docs {
		if !strings.HasPrefix(uri, prefix) {
			continue
		}
		// Direct children only, containers are not nested transparently.
		if strings.Contains(strings.TrimPrefix(uri, prefix), "/") {
			continue
		}
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris, nil
}
