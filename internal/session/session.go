// Package session owns the per-user application state that lives between
// sign-in and sign-out: the transaction store, the selected display currency
// and the inbox of user-visible notifications.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"expensetracker/internal/currency"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/store"
)

// Session is one signed-in user's state.
type Session struct {
	UserID   string
	Store    *store.Store
	Inbox    *Inbox
	OpenedAt time.Time

	// ready is closed once the sign-in fetch has finished.
	ready chan struct{}

	mu      sync.RWMutex
	display string
}

// waitLoaded blocks until the sign-in fetch has finished or ctx is done.
func (s *Session) waitLoaded(ctx context.Context) error {
	if s.ready == nil {
		return nil
	}
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DisplayCurrency returns the currency totals are shown in.
func (s *Session) DisplayCurrency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// SetDisplayCurrency changes the display currency to a known code.
func (s *Session) SetDisplayCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currency.IsKnown(code) {
		return apperrors.WithMessage(apperrors.ErrUnknownCurrency, "unknown currency code: "+code)
	}
	s.mu.Lock()
	s.display = code
	s.mu.Unlock()
	return nil
}

// inboxCapacity bounds pending notifications; the oldest are dropped first.
const inboxCapacity = 50

// Inbox collects notifications until the client drains them.
type Inbox struct {
	mu    sync.Mutex
	items []store.Notification
}

// Notify implements store.Notifier.
func (in *Inbox) Notify(n store.Notification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.items = append(in.items, n)
	if len(in.items) > inboxCapacity {
		in.items = in.items[len(in.items)-inboxCapacity:]
	}
}

// Drain returns pending notifications, oldest first, and clears the inbox.
func (in *Inbox) Drain() []store.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.items
	in.items = nil
	if out == nil {
		out = []store.Notification{}
	}
	return out
}

// Len returns the number of pending notifications.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.items)
}
