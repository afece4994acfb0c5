package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"expensetracker/internal/currency"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/events"
	"expensetracker/internal/logger"
	"expensetracker/internal/store"
)

// Auth backend session-change events.
const (
	EventSignedIn       = "SIGNED_IN"
	EventSignedOut      = "SIGNED_OUT"
	EventUserDeleted    = "USER_DELETED"
	EventTokenRefreshed = "TOKEN_REFRESHED"
)

// AuthEvent is a session-change notification from the auth backend.
type AuthEvent struct {
	Event  string `json:"event" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithPublisher sets the publisher handed to every store.
func WithPublisher(p events.Publisher) Option {
	return func(m *Manager) {
		if p != nil {
			m.publisher = p
		}
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithDefaultCurrency sets the display currency of new sessions. Unknown
// codes are ignored.
func WithDefaultCurrency(code string) Option {
	return func(m *Manager) {
		code = strings.ToUpper(strings.TrimSpace(code))
		if currency.IsKnown(code) {
			m.defaultCurrency = code
		}
	}
}

// Manager tracks open sessions by user id.
type Manager struct {
	remote          store.Remote
	publisher       events.Publisher
	log             *zap.SugaredLogger
	defaultCurrency string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a Manager whose stores persist through remote.
func NewManager(remote store.Remote, opts ...Option) *Manager {
	m := &Manager{
		remote:          remote,
		publisher:       events.Nop{},
		defaultCurrency: currency.DefaultDisplay,
		sessions:        make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Named("session")
	}
	return m
}

// Open signs userID in. A new session fetches the user's data wholesale; an
// already open session is returned once its own fetch has finished. A failed
// fetch still leaves the session open with whatever state could be loaded,
// and the error is returned alongside it.
func (m *Manager) Open(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		if err := s.waitLoaded(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	inbox := &Inbox{}
	s := &Session{
		UserID:   userID,
		Inbox:    inbox,
		OpenedAt: time.Now().UTC(),
		ready:    make(chan struct{}),
		display:  m.defaultCurrency,
		Store: store.New(userID, m.remote, inbox,
			store.WithPublisher(m.publisher),
			store.WithLogger(m.log.Named("store")),
		),
	}
	m.sessions[userID] = s
	m.mu.Unlock()

	m.log.Infow("Session opened", "user_id", userID)
	m.publish(ctx, events.SessionOpened, userID)

	defer close(s.ready)
	if err := s.Store.Load(ctx); err != nil {
		m.log.Warnw("Session opened with incomplete data", "user_id", userID, "error", err)
		return s, err
	}
	return s, nil
}

// Ensure returns the user's session, opening it if needed. A session still
// being signed in is returned once its fetch finishes. Load failures are
// logged by the store and do not fail the call.
func (m *Manager) Ensure(ctx context.Context, userID string) (*Session, error) {
	if s, err := m.Get(userID); err == nil {
		if err := s.waitLoaded(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := m.Open(ctx, userID)
	if s == nil {
		return nil, err
	}
	return s, nil
}

// Get returns the open session for userID without waiting for its sign-in
// fetch.
func (m *Manager) Get(userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

// Close signs userID out and discards the session state.
func (m *Manager) Close(ctx context.Context, userID string) error {
	m.mu.Lock()
	_, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if !ok {
		return apperrors.ErrSessionNotFound
	}

	m.log.Infow("Session closed", "user_id", userID)
	m.publish(ctx, events.SessionClosed, userID)
	return nil
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// HandleAuthEvent applies a session-change notification. Sign-in opens a
// session, sign-out and account deletion close it, token refreshes and
// unknown events are ignored.
func (m *Manager) HandleAuthEvent(ctx context.Context, e AuthEvent) error {
	switch e.Event {
	case EventSignedIn:
		if _, err := m.Open(ctx, e.UserID); errors.Is(err, apperrors.ErrUnauthorized) {
			return err
		}
		return nil
	case EventSignedOut, EventUserDeleted:
		if err := m.Close(ctx, e.UserID); err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
			return err
		}
		return nil
	default:
		m.log.Debugw("Ignoring auth event", "event", e.Event, "user_id", e.UserID)
		return nil
	}
}

func (m *Manager) publish(ctx context.Context, eventType, userID string) {
	if err := m.publisher.Publish(ctx, events.New(eventType, userID, "", nil)); err != nil {
		m.log.Warnw("Failed to publish event", "event", eventType, "error", err)
	}
}
