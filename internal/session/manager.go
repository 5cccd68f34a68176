package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"rfp-console/internal/entity"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TopicSessionChanged = "session.changed"
	logModule           = "Session"
)

type storedSession struct {
	Email          string      `json:"email"`
	Token          string      `json:"token"`
	Role           entity.Role `json:"role"`
	UserID         int         `json:"user_id"`
	Remember       bool        `json:"remember"`
	SealedPassword string      `json:"sealed_password,omitempty"`
}

// Manager keeps the session in a KVRepository and broadcasts every change on
// an in-process watermill topic.
type Manager struct {
	kv     contract.KVRepository
	sealer *Sealer
	pubSub *gochannel.GoChannel
	logger logger.ILogger
	origin string
	now    func() time.Time

	mu     sync.RWMutex
	cached *entity.Session
	loaded bool
}

var _ Repository = (*Manager)(nil)

func NewManager(kv contract.KVRepository, sealer *Sealer, pubSub *gochannel.GoChannel, log logger.ILogger) *Manager {
	if pubSub == nil {
		pubSub = gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	}
	return &Manager{
		kv:     kv,
		sealer: sealer,
		pubSub: pubSub,
		logger: log,
		origin: uuid.NewString(),
		now:    time.Now,
	}
}

// Origin identifies this process in published changes.
func (m *Manager) Origin() string {
	return m.origin
}

// Get reads the stored session. An expired token clears the session.
func (m *Manager) Get(ctx context.Context) (*entity.Session, error) {
	raw, found, err := m.kv.Get(ctx, contract.KeySession)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !found {
		m.cache(nil)
		return nil, nil
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		m.logger.Warn(logModule, "Discarding unreadable session", map[string]interface{}{"error": err.Error()})
		return nil, m.clear(ctx, ReasonExpired, m.origin)
	}

	if expired(stored.Token, m.now()) {
		m.logger.Info(logModule, "Session token expired", map[string]interface{}{"email": stored.Email})
		return nil, m.clear(ctx, ReasonExpired, m.origin)
	}

	s := &entity.Session{
		Email:    stored.Email,
		Token:    stored.Token,
		Role:     stored.Role,
		UserID:   stored.UserID,
		Remember: stored.Remember,
	}
	if stored.SealedPassword != "" && m.sealer != nil {
		if plain, err := m.sealer.Open(stored.SealedPassword); err == nil {
			s.RememberedPassword = plain
		} else {
			m.logger.Warn(logModule, "Remembered password could not be unsealed", nil)
		}
	}

	m.cache(s)
	return s, nil
}

func (m *Manager) Set(ctx context.Context, s entity.Session) error {
	return m.set(ctx, s, ReasonLogin, m.origin)
}

func (m *Manager) Clear(ctx context.Context) error {
	return m.clear(ctx, ReasonLogout, m.origin)
}

// ClearWithReason removes the session and tags the broadcast with reason.
func (m *Manager) ClearWithReason(ctx context.Context, reason string) error {
	return m.clear(ctx, reason, m.origin)
}

// Apply stores a change received from another process without re-tagging
// its origin.
func (m *Manager) Apply(ctx context.Context, c Change) error {
	if c.Session == nil {
		return m.clear(ctx, ReasonRemote, c.Origin)
	}
	s := *c.Session
	// Keep a locally remembered password if the same user is re-applied.
	if current := m.current(); current != nil && current.Email == s.Email {
		s.RememberedPassword = current.RememberedPassword
	}
	return m.set(ctx, s, ReasonRemote, c.Origin)
}

func (m *Manager) set(ctx context.Context, s entity.Session, reason, origin string) error {
	stored := storedSession{
		Email:    s.Email,
		Token:    s.Token,
		Role:     s.Role,
		UserID:   s.UserID,
		Remember: s.Remember,
	}
	if s.Remember && s.RememberedPassword != "" && m.sealer != nil {
		sealed, err := m.sealer.Seal(s.RememberedPassword)
		if err != nil {
			return err
		}
		stored.SealedPassword = sealed
	}
	if !s.Remember {
		s.RememberedPassword = ""
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := m.kv.Set(ctx, contract.KeySession, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	m.cache(&s)
	m.publish(Change{Session: s.Public(), Reason: reason, Origin: origin})
	return nil
}

func (m *Manager) clear(ctx context.Context, reason, origin string) error {
	if err := m.kv.Delete(ctx, contract.KeySession); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.cache(nil)
	m.publish(Change{Reason: reason, Origin: origin})
	return nil
}

// Subscribe streams changes until ctx is done.
func (m *Manager) Subscribe(ctx context.Context) (<-chan Change, error) {
	messages, err := m.pubSub.Subscribe(ctx, TopicSessionChanged)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", TopicSessionChanged, err)
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			var c Change
			if err := json.Unmarshal(msg.Payload, &c); err != nil {
				m.logger.Error(logModule, "Invalid session change payload", map[string]interface{}{"error": err.Error()})
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Token returns the bearer token of the active session, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	loaded := m.loaded
	cached := m.cached
	m.mu.RUnlock()

	if !loaded {
		s, err := m.Get(context.Background())
		if err != nil || s == nil {
			return ""
		}
		return s.Token
	}
	if cached == nil {
		return ""
	}
	return cached.Token
}

func (m *Manager) current() *entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cached
}

func (m *Manager) cache(s *entity.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = s
	m.loaded = true
}

func (m *Manager) publish(c Change) {
	payload, err := json.Marshal(c)
	if err != nil {
		m.logger.Error(logModule, "Failed to marshal session change", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := m.pubSub.Publish(TopicSessionChanged, message.NewMessage(uuid.NewString(), payload)); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Error(logModule, "Failed to publish session change", map[string]interface{}{"error": err.Error()})
	}
}

// expired reports whether token is a JWT whose exp claim is in the past.
// The signature is not checked; only the backend can do that.
func expired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
