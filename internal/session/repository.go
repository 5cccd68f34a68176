package session

import (
	"context"

	"rfp-console/internal/entity"
)

// Reasons carried by a Change.
const (
	ReasonLogin        = "login"
	ReasonLogout       = "logout"
	ReasonUnauthorized = "unauthorized"
	ReasonExpired      = "expired"
	ReasonRemote       = "remote"
)

// Change announces that the active session was replaced or removed.
// Session is nil after a clear and never carries the remembered password.
type Change struct {
	Session *entity.Session `json:"session"`
	Reason  string          `json:"reason"`
	Origin  string          `json:"origin"`
}

// Repository is the session capability handed to every handler.
type Repository interface {
	Get(ctx context.Context) (*entity.Session, error)
	Set(ctx context.Context, s entity.Session) error
	Clear(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan Change, error)
	Token() string
}
