package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/pathwise/pathwise/internal/models"
)

// Service wraps repository operations with business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Create stores a new session holding the merged user view and returns its token.
func (s *Service) Create(ctx context.Context, view models.SessionView, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	now := time.Now().UTC()
	sess := &Session{
		Token:     token,
		View:      view,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the session if the token is valid and not expired.
func (s *Service) Validate(ctx context.Context, token string) (*Session, error) {
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		// cleanup expired session
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, nil
	}
	return sess, nil
}

// Refresh replaces the stored view for an existing session, keeping its
// token and expiry. Used after a profile sync so the session reflects the
// written state.
func (s *Service) Refresh(ctx context.Context, token string, view models.SessionView) error {
	sess, err := s.Validate(ctx, token)
	if err != nil || sess == nil {
		return err
	}
	sess.View = view
	return s.repo.Create(ctx, sess)
}

// Destroy removes the session. Destroying an absent token is not an error.
func (s *Service) Destroy(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}
