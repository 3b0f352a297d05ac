// Package sync implements the dual-record synchronization engine: the
// single entry point that keeps the detail store and the summary table
// consistent for every user mutation.
package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/profile"
	"github.com/pathwise/pathwise/internal/summary"
	"github.com/pathwise/pathwise/pkg/logger"
	"github.com/pathwise/pathwise/pkg/metrics"
)

// Options carries the prior identity of the record being synced. PrevName
// triggers key migration in the detail store; PrevAvatar lets the engine
// queue the replaced resource reference for deferred cleanup.
type Options struct {
	PrevName   string
	PrevAvatar string
}

// Result reports each half of the dual write separately. The detail write
// is sequenced strictly before the summary write; a summary failure after
// a successful detail write leaves SummaryErr set, is not rolled back, and
// does not fail the operation.
type Result struct {
	DetailSaved  bool
	SummarySaved bool
	Renamed      bool
	SummaryErr   error
}

// Existence is the read-only probe result used as a signup-uniqueness gate
// by the caller. The engine itself does not enforce uniqueness.
type Existence struct {
	Exists  bool `json:"exists"`
	ByName  bool `json:"by_name"`
	ByEmail bool `json:"by_email"`
}

// Engine coordinates the two stores. It is stateless between calls; the
// single-writer execution model is assumed, there is no record locking.
type Engine struct {
	profiles  *profile.Store
	summaries *summary.Store
	trash     *Trash
}

func NewEngine(profiles *profile.Store, summaries *summary.Store, trash *Trash) *Engine {
	return &Engine{profiles: profiles, summaries: summaries, trash: trash}
}

// SyncUser performs the coordinated dual write for one complete payload.
// Full overwrite semantics: every optional field is defaulted and the
// whole detail record is replaced; callers wanting a merge must
// read-modify-write. Returns an error only when nothing usable was
// written (validation, collision, detail-store fault).
func (e *Engine) SyncUser(ctx context.Context, payload models.UserProfile, opts Options) (*Result, error) {
	metrics.SyncTotal.Inc()

	if strings.TrimSpace(payload.FullName) == "" || strings.TrimSpace(payload.Email) == "" {
		metrics.SyncFailures.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: full name and email address are required", models.ErrValidation)
	}
	payload = payload.Normalize()

	res := &Result{}
	renaming := opts.PrevName != "" && profile.Key(opts.PrevName) != profile.Key(payload.FullName)

	ok, err := e.profiles.Save(ctx, payload.FullName, payload, opts.PrevName)
	if err != nil || !ok {
		metrics.SyncFailures.WithLabelValues("detail").Inc()
		logger.Errorf("detail write failed for %q: %v", payload.Email, err)
		return nil, err
	}
	res.DetailSaved = true
	if renaming {
		res.Renamed = true
		metrics.RenamesTotal.Inc()
	}

	row := payload.Flatten()
	// undecorated lookup: the trash fallback below must only ever see an
	// avatar the row actually stores, not one assigned at read time
	existing := e.summaries.FindStoredByEmail(ctx, payload.Email)
	if existing != nil {
		oldAvatar := opts.PrevAvatar
		if oldAvatar == "" {
			oldAvatar = existing.ProfilePicture
		}
		if oldAvatar != "" && row.ProfilePicture != "" && oldAvatar != row.ProfilePicture {
			if err := e.trash.Add(ctx, oldAvatar); err != nil {
				logger.Warnf("could not queue avatar %q for cleanup: %v", oldAvatar, err)
			}
		}
		email := existing.Email
		replaced, err := e.summaries.ReplaceWhere(ctx, func(r models.UserSummary) bool {
			return strings.EqualFold(r.Email, email)
		}, row)
		if err != nil || !replaced {
			if err == nil {
				err = fmt.Errorf("%w: summary row vanished during sync", models.ErrStorage)
			}
			metrics.SyncFailures.WithLabelValues("summary").Inc()
			logger.Errorf("summary replace failed for %q: %v", payload.Email, err)
			res.SummaryErr = err
			return res, nil
		}
	} else {
		if err := e.summaries.Append(ctx, row); err != nil {
			metrics.SyncFailures.WithLabelValues("summary").Inc()
			logger.Errorf("summary append failed for %q: %v", payload.Email, err)
			res.SummaryErr = err
			return res, nil
		}
	}
	res.SummarySaved = true
	return res, nil
}

// CheckExists probes both identity axes without writing anything.
func (e *Engine) CheckExists(ctx context.Context, name, email string) Existence {
	ex := Existence{
		ByName:  e.summaries.FindByName(ctx, name) != nil,
		ByEmail: e.summaries.FindByEmail(ctx, email) != nil,
	}
	ex.Exists = ex.ByName || ex.ByEmail
	return ex
}

// PendingDeletions exposes the deferred avatar cleanup queue.
func (e *Engine) PendingDeletions(ctx context.Context) ([]string, error) {
	return e.trash.Pending(ctx)
}
