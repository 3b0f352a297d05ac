// Package profile implements the detailed record store: one full profile
// document per user, addressed by a key derived from the display name.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pathwise/pathwise/internal/kvstore"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/pkg/logger"
)

const keyPrefix = "profile:"

// Key derives the storage key for a display name: lowercased, characters
// outside [a-z0-9] dropped. Distinct names can collide; Save rejects a
// collision instead of overwriting the other account.
func Key(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return keyPrefix + b.String()
}

// Store is the detail-record adapter over the key-value store.
type Store struct {
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the profile stored for the given display name, or nil when
// no record exists. A miss is not an error.
func (s *Store) Load(ctx context.Context, name string) (*models.UserProfile, error) {
	raw, found, err := s.kv.Get(ctx, Key(name))
	if err != nil {
		return nil, fmt.Errorf("%w: load profile: %v", models.ErrStorage, err)
	}
	if !found {
		return nil, nil
	}
	var p models.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", models.ErrStorage, err)
	}
	return &p, nil
}

// Save writes rec under the key derived from name, full overwrite. When
// prevName maps to a different key the old record is deleted first: a
// rename is a destructive move, not a copy, so a failed write of the new
// key loses the old record (known window, kept from the original design).
// A record already present under the target key that belongs to a
// different email is a collision and the write is rejected.
func (s *Store) Save(ctx context.Context, name string, rec models.UserProfile, prevName string) (bool, error) {
	newKey := Key(name)

	existingRaw, found, err := s.kv.Get(ctx, newKey)
	if err != nil {
		return false, fmt.Errorf("%w: probe profile key: %v", models.ErrStorage, err)
	}
	if found {
		var existing models.UserProfile
		if err := json.Unmarshal([]byte(existingRaw), &existing); err == nil {
			if existing.Email != "" && !strings.EqualFold(existing.Email, rec.Email) {
				logger.Warnf("profile key %q already owned by %q, rejecting write for %q", newKey, existing.Email, rec.Email)
				return false, fmt.Errorf("%w: %q and %q share key %q", models.ErrIdentityCollision, existing.FullName, name, newKey)
			}
		}
	}

	if prevName != "" {
		if oldKey := Key(prevName); oldKey != newKey {
			if err := s.kv.Del(ctx, oldKey); err != nil {
				return false, fmt.Errorf("%w: drop renamed profile: %v", models.ErrStorage, err)
			}
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("%w: encode profile: %v", models.ErrStorage, err)
	}
	if err := s.kv.Set(ctx, newKey, string(b)); err != nil {
		return false, fmt.Errorf("%w: write profile: %v", models.ErrStorage, err)
	}
	return true, nil
}
