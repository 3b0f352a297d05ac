// Package kvstore abstracts the persistent string key-value store both
// record stores write through. The store is injected, never a process-wide
// singleton, so the sync layer is testable against an in-memory fake.
package kvstore

import "context"

// Store is the minimal contract the record adapters need. A missing key is
// not an error: Get reports it through the found flag.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}
