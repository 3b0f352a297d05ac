// Package auth owns credential validation, account creation and the
// shaping of session state. All user-record writes go through the sync
// engine; the single sanctioned bypass is the admin bootstrap, which has
// no detail record and writes the summary table directly.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pathwise/pathwise/internal/avatar"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/profile"
	"github.com/pathwise/pathwise/internal/sessions"
	"github.com/pathwise/pathwise/internal/summary"
	syncengine "github.com/pathwise/pathwise/internal/sync"
	"github.com/pathwise/pathwise/internal/tokens"
	"github.com/pathwise/pathwise/pkg/logger"
)

var (
	// ErrAccountExists is shown verbatim on a duplicate signup attempt.
	ErrAccountExists = errors.New("Account already exists. Please log in instead.")

	// ErrInvalidCredentials is shown verbatim on a failed login.
	ErrInvalidCredentials = errors.New("Invalid email or password.")
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterRequest is the signup payload constructed by the UI.
type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email_address" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
	Gender          string `json:"gender"`
	Country         string `json:"country"`
	Year            string `json:"year"`
}

// LoginResult carries the new session token, the signed access JWT and the
// merged view handed to the UI.
type LoginResult struct {
	SessionToken string
	AccessToken  string
	View         models.SessionView
}

// Service wires the engine and stores into the account lifecycle.
type Service struct {
	engine    *syncengine.Engine
	summaries *summary.Store
	profiles  *profile.Store
	sessions  *sessions.Service
	avatars   *avatar.Assigner
	resolver  *avatar.Resolver
	jwtSecret string
	ttl       time.Duration
}

func NewService(engine *syncengine.Engine, summaries *summary.Store, profiles *profile.Store,
	sess *sessions.Service, avatars *avatar.Assigner, resolver *avatar.Resolver,
	jwtSecret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		engine:    engine,
		summaries: summaries,
		profiles:  profiles,
		sessions:  sess,
		avatars:   avatars,
		resolver:  resolver,
		jwtSecret: jwtSecret,
		ttl:       ttl,
	}
}

func (s *Service) validateSignup(req RegisterRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full name is required", models.ErrValidation)
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: email address is malformed", models.ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrValidation, minPasswordLen)
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return fmt.Errorf("%w: passwords do not match", models.ErrValidation)
	}
	return nil
}

// Register gates on CheckExists, builds the initial full payload and syncs
// it through the engine, then opens a session. The uniqueness gate lives
// here, not in the engine.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, err
	}
	if ex := s.engine.CheckExists(ctx, req.FullName, req.Email); ex.Exists {
		return nil, ErrAccountExists
	}

	payload := models.UserProfile{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Gender:         req.Gender,
		Country:        req.Country,
		Year:           req.Year,
		ProfilePicture: s.avatars.Assign(req.Gender),
	}.Normalize()

	res, err := s.engine.SyncUser(ctx, payload, syncengine.Options{})
	if err != nil {
		return nil, err
	}
	if res.SummaryErr != nil {
		// account is usable (detail record exists); next sync repairs the row
		logger.Warnf("signup summary write failed for %q: %v", req.Email, res.SummaryErr)
	}
	return s.openSession(ctx, payload)
}

// Login validates credentials against the summary table, merges in the
// detail record and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	row := s.summaries.FindByEmail(ctx, email)
	if row == nil || row.Password != password {
		return nil, ErrInvalidCredentials
	}

	p, err := s.profiles.Load(ctx, row.FullName)
	if err != nil {
		logger.Errorf("detail load failed for %q: %v", row.FullName, err)
	}
	if p == nil {
		// no detail record (admin, or summary-only layers): shape one
		p = &models.UserProfile{
			FullName:       row.FullName,
			Email:          row.Email,
			Password:       row.Password,
			Gender:         row.Gender,
			Country:        row.Country,
			Year:           row.Year,
			ProfilePicture: row.ProfilePicture,
			Bio:            row.Bio,
		}
	}
	return s.openSession(ctx, p.Normalize())
}

// Logout destroys the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Destroy(ctx, sessionToken)
}

// BootstrapAdmin seeds the admin row when absent. It writes the summary
// table directly because the admin owns no detail record.
func (s *Service) BootstrapAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if s.summaries.FindByEmail(ctx, email) != nil {
		return nil
	}
	logger.Infof("bootstrapping admin account %q", email)
	return s.summaries.Append(ctx, models.UserSummary{
		FullName: name,
		Email:    email,
		Password: password,
	})
}

func (s *Service) openSession(ctx context.Context, p models.UserProfile) (*LoginResult, error) {
	view := models.ViewOf(p)
	view.AvatarURL = s.resolver.Resolve(ctx, p.ProfilePicture)

	token, err := s.sessions.Create(ctx, view, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	access, err := tokens.GenerateAccessToken(s.jwtSecret, token, view.Email, view.FullName, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("mint access token: %w", err)
	}
	return &LoginResult{SessionToken: token, AccessToken: access, View: view}, nil
}
