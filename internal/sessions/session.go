package sessions

import (
	"time"

	"github.com/pathwise/pathwise/internal/models"
)

// Session is the ephemeral state of one authenticated user: an opaque
// token plus the merged view of their records. It exists from login or
// registration until logout or expiry.
type Session struct {
	Token     string             `json:"token"`
	View      models.SessionView `json:"view"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}
