package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pathwise/pathwise/internal/kvstore"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/pkg/metrics"
)

const trashKey = "trash:avatars"

// Trash is the deferred-deletion list for replaced avatar references.
// Entries are only ever appended; nothing in the sync layer deletes the
// underlying objects. Operators drain the list out of band.
type Trash struct {
	kv kvstore.Store
}

func NewTrash(kv kvstore.Store) *Trash {
	return &Trash{kv: kv}
}

// Add queues one resource reference for later cleanup.
func (t *Trash) Add(ctx context.Context, ref string) error {
	refs, err := t.Pending(ctx)
	if err != nil {
		return err
	}
	b, err := json.Marshal(append(refs, ref))
	if err != nil {
		return fmt.Errorf("%w: encode trash list: %v", models.ErrStorage, err)
	}
	if err := t.kv.Set(ctx, trashKey, string(b)); err != nil {
		return fmt.Errorf("%w: write trash list: %v", models.ErrStorage, err)
	}
	metrics.TrashedAvatars.Inc()
	return nil
}

// Pending returns the references queued so far.
func (t *Trash) Pending(ctx context.Context) ([]string, error) {
	raw, found, err := t.kv.Get(ctx, trashKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read trash list: %v", models.ErrStorage, err)
	}
	if !found || raw == "" {
		return nil, nil
	}
	var refs []string
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return nil, fmt.Errorf("%w: decode trash list: %v", models.ErrStorage, err)
	}
	return refs, nil
}
