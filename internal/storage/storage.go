package storage

import (
	"context"
	"time"
)

// ObjectStore abstracts where borrower images live. Handlers only ever see a
// key and a resolvable URL, so the backend can be swapped without touching
// the ledger code.
type ObjectStore interface {
	// Upload stores the object and returns its public URL, or "" when the
	// bucket is private and ResolveURL must presign instead.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	// ResolveURL turns a stored key into a retrievable URL.
	ResolveURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
