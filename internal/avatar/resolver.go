package avatar

import (
	"context"
	"strings"
	"time"

	"github.com/pathwise/pathwise/internal/storage"
	"github.com/pathwise/pathwise/pkg/logger"
)

// Resolver turns a stored resource reference into a URL the browser can
// fetch. With an object store configured it presigns a GET; otherwise, or
// on any presign failure, the raw reference is returned unchanged.
type Resolver struct {
	store  *storage.MinIOStorage
	expiry time.Duration
}

func NewResolver(store *storage.MinIOStorage, expiry time.Duration) *Resolver {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &Resolver{store: store, expiry: expiry}
}

// Resolve never fails: the fallback is the reference itself.
func (r *Resolver) Resolve(ctx context.Context, ref string) string {
	if ref == "" || r == nil || r.store == nil {
		return ref
	}
	// already an absolute URL, nothing to presign
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	u, err := r.store.PresignedURL(ctx, ref, r.expiry)
	if err != nil {
		logger.Warnf("avatar presign failed for %q: %v", ref, err)
		return ref
	}
	return u
}
