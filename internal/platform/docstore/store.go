// Package docstore abstracts the flat document store the catalog is built
// on: one addressable document per entity, grouped into enumerable
// containers, with no query engine and no transactions.
package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Document is the atomic storage unit.
type Document struct {
	URI         string
	ContentType string
	Body        []byte
}

// Store is the capability boundary to the backing document store. Writes
// are last-write-wins; implementations expose no compare-and-swap.
type Store interface {
	Get(ctx context.Context, uri string) (Document, error)
	Put(ctx context.Context, doc Document) error
	Delete(ctx context.Context, uri string) error
	// ListContainer returns the URIs of all documents directly inside the
	// container, in unspecified order.
	ListContainer(ctx context.Context, containerURI string) ([]string, error)
}
