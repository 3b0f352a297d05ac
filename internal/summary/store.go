// Package summary implements the tabular master store: one flattened row
// per user, merged at read time from an immutable baseline dataset and the
// locally-accumulated rows held in the key-value store.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pathwise/pathwise/internal/kvstore"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/pkg/logger"
)

// localKey is the single KV key holding the JSON array of local rows.
const localKey = "summary:rows"

// AvatarAssigner supplies a resource reference for rows that have none.
// Assignment happens at read time only; the stored row is untouched.
type AvatarAssigner interface {
	Assign(gender string) string
}

// Store is the master-table adapter. Reads never fail the caller: on any
// underlying fault the result degrades toward the local layer, then toward
// an empty list.
type Store struct {
	kv       kvstore.Store
	baseline BaselineSource
	avatars  AvatarAssigner
}

// NewStore creates the adapter. baseline and avatars may be nil; a nil
// baseline means the local layer is the whole table.
func NewStore(kv kvstore.Store, baseline BaselineSource, avatars AvatarAssigner) *Store {
	return &Store{kv: kv, baseline: baseline, avatars: avatars}
}

// local returns the locally-accumulated rows. A decode fault is logged and
// reported so writers do not clobber rows they could not read.
func (s *Store) local(ctx context.Context) ([]models.UserSummary, error) {
	raw, found, err := s.kv.Get(ctx, localKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read local rows: %v", models.ErrStorage, err)
	}
	if !found || raw == "" {
		return nil, nil
	}
	rows, err := models.DecodeSummaryList([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode local rows: %v", models.ErrStorage, err)
	}
	return rows, nil
}

func (s *Store) saveLocal(ctx context.Context, rows []models.UserSummary) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: encode local rows: %v", models.ErrStorage, err)
	}
	if err := s.kv.Set(ctx, localKey, string(b)); err != nil {
		return fmt.Errorf("%w: write local rows: %v", models.ErrStorage, err)
	}
	return nil
}

// ReadAll merges baseline and local rows, baseline-first, and fills in a
// read-time avatar for rows that have none. The assigned reference is a
// presentation convenience only; it is never written back.
func (s *Store) ReadAll(ctx context.Context) []models.UserSummary {
	out := s.merged(ctx)
	if s.avatars != nil {
		for i := range out {
			if out[i].ProfilePicture == "" {
				out[i].ProfilePicture = s.avatars.Assign(out[i].Gender)
			}
		}
	}
	return out
}

// merged is the undecorated merge of baseline and local rows, baseline-
// first. Rows present in both layers keep the baseline position and email
// identity but take every other field from the local row. On baseline
// failure the local layer is the whole result; on total failure the result
// is empty, never an error.
func (s *Store) merged(ctx context.Context) []models.UserSummary {
	var base []models.UserSummary
	if s.baseline != nil {
		rows, err := s.baseline.Load(ctx)
		if err != nil {
			logger.Warnf("baseline load failed, serving local rows only: %v", err)
		} else {
			base = rows
		}
	}
	local, err := s.local(ctx)
	if err != nil {
		logger.Errorf("local summary rows unavailable: %v", err)
	}

	byEmail := make(map[string]models.UserSummary, len(local))
	used := make(map[string]bool, len(local))
	for _, row := range local {
		byEmail[strings.ToLower(row.Email)] = row
	}

	out := make([]models.UserSummary, 0, len(base)+len(local))
	for _, row := range base {
		key := strings.ToLower(row.Email)
		if loc, ok := byEmail[key]; ok {
			// local mutations win; identity stays with the baseline row
			loc.Email = row.Email
			out = append(out, loc)
			used[key] = true
			continue
		}
		out = append(out, row)
	}
	for _, row := range local {
		if !used[strings.ToLower(row.Email)] {
			out = append(out, row)
		}
	}
	return out
}

// FindByEmail returns the row with the given email, case-insensitive, or
// nil when no row matches.
func (s *Store) FindByEmail(ctx context.Context, email string) *models.UserSummary {
	for _, row := range s.ReadAll(ctx) {
		if strings.EqualFold(row.Email, email) {
			r := row
			return &r
		}
	}
	return nil
}

// FindStoredByEmail is FindByEmail without the read-time avatar fill-in:
// the returned row is exactly what the layers hold. Writers that compare
// against stored state must use this, or a row with no picture would look
// like it owns the shared catalog reference assigned at read time.
func (s *Store) FindStoredByEmail(ctx context.Context, email string) *models.UserSummary {
	for _, row := range s.merged(ctx) {
		if strings.EqualFold(row.Email, email) {
			r := row
			return &r
		}
	}
	return nil
}

// FindByName returns the row with the given display name, case-insensitive,
// or nil when no row matches.
func (s *Store) FindByName(ctx context.Context, name string) *models.UserSummary {
	for _, row := range s.ReadAll(ctx) {
		if strings.EqualFold(row.FullName, name) {
			r := row
			return &r
		}
	}
	return nil
}

// Append adds one row to the local layer. The caller must have verified
// non-existence; no dedup happens here.
func (s *Store) Append(ctx context.Context, rec models.UserSummary) error {
	rows, err := s.local(ctx)
	if err != nil {
		return err
	}
	return s.saveLocal(ctx, append(rows, rec))
}

// ReplaceWhere overwrites the first row matching pred with rec, full-row.
// A baseline row not yet shadowed locally is replaced by appending rec to
// the local layer, which overrides it on the next merge. Returns false
// when nothing matched.
func (s *Store) ReplaceWhere(ctx context.Context, pred func(models.UserSummary) bool, rec models.UserSummary) (bool, error) {
	rows, err := s.local(ctx)
	if err != nil {
		return false, err
	}
	for i := range rows {
		if pred(rows[i]) {
			rows[i] = rec
			return true, s.saveLocal(ctx, rows)
		}
	}
	if s.baseline != nil {
		base, err := s.baseline.Load(ctx)
		if err == nil {
			for _, row := range base {
				if pred(row) {
					return true, s.saveLocal(ctx, append(rows, rec))
				}
			}
		}
	}
	return false, nil
}
