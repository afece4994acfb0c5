// Package store holds a signed-in user's transactions and categories in
// memory and applies mutations optimistically against the remote data
// service, reconciling by a wholesale refetch when the remote call fails.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/events"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/uuid"
)

// Remote is the persistence collaborator. Every call is scoped to userID.
type Remote interface {
	ListExpenses(ctx context.Context, userID string) ([]ledger.Transaction, error)
	InsertExpense(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error)
	UpdateExpense(ctx context.Context, userID, id string, d ledger.Draft) (*ledger.Transaction, error)
	DeleteExpense(ctx context.Context, userID, id string) error
	ListCategories(ctx context.Context, userID string) ([]string, error)
	InsertCategory(ctx context.Context, userID, name string) error
}

// Notification is a user-visible message about a failed operation.
type Notification struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Notify(n Notification)
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher sets the publisher for change events.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the in-memory source of truth for one user's session. The list is
// replaced wholesale on every change and the lock is never held across a
// remote call, so concurrent mutations interleave with last-write-wins.
type Store struct {
	userID    string
	remote    Remote
	notifier  Notifier
	publisher events.Publisher
	log       *zap.SugaredLogger

	mu           sync.RWMutex
	transactions []ledger.Transaction
	categories   []string
}

// New creates an empty store for userID. Call Load to fetch its data.
func New(userID string, remote Remote, notifier Notifier, opts ...Option) *Store {
	s := &Store{
		userID:    userID,
		remote:    remote,
		notifier:  notifier,
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("store")
	}
	s.log = s.log.With("user_id", userID)
	return s
}

// UserID returns the owning user.
func (s *Store) UserID() string { return s.userID }

// Transactions returns a copy of the current list, newest first.
func (s *Store) Transactions() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Categories returns the default categories followed by the user's own.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.MergeCategories(ledger.DefaultCategories, s.categories)
}

// Load fetches transactions and categories concurrently. Each result is
// applied as soon as it arrives; a failed fetch is logged, leaves that part
// of the state as it was and is returned.
func (s *Store) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return s.Reload(ctx)
	})
	g.Go(func() error {
		names, err := s.remote.ListCategories(ctx, s.userID)
		if err != nil {
			s.log.Errorw("Failed to fetch categories", "error", err)
			return remoteError(err)
		}
		s.mu.Lock()
		s.categories = ledger.MergeCategories(nil, names)
		s.mu.Unlock()
		return nil
	})
	return g.Wait()
}

// Reload refetches the transaction list wholesale. On failure the list keeps
// its last-known state.
func (s *Store) Reload(ctx context.Context) error {
	list, err := s.remote.ListExpenses(ctx, s.userID)
	if err != nil {
		s.log.Errorw("Failed to fetch transactions", "error", err)
		return remoteError(err)
	}
	ledger.SortByDateDesc(list)
	s.mu.Lock()
	s.transactions = list
	s.mu.Unlock()
	return nil
}

// Create validates d, adds it under a temporary id at its date position and
// inserts it remotely. On success the temporary entry is replaced by the stored row.
func (s *Store) Create(ctx context.Context, d ledger.Draft) (ledger.Transaction, error) {
	if err := prepare(&d); err != nil {
		return ledger.Transaction{}, err
	}

	tempID := uuid.NewTemporary()
	optimistic := d.Transaction(tempID, s.userID)
	s.replace(func(list []ledger.Transaction) []ledger.Transaction {
		return append([]ledger.Transaction{optimistic}, list...)
	})

	saved, err := s.remote.InsertExpense(ctx, s.userID, d)
	if err != nil {
		return ledger.Transaction{}, s.reconcile(ctx, "add", err, func(list []ledger.Transaction) []ledger.Transaction {
			return without(list, tempID)
		})
	}

	s.replace(func(list []ledger.Transaction) []ledger.Transaction {
		if i := indexOf(list, tempID); i >= 0 {
			out := clone(list)
			out[i] = *saved
			return out
		}
		if indexOf(list, saved.ID) >= 0 {
			return list
		}
		return append([]ledger.Transaction{*saved}, list...)
	})
	s.publish(ctx, events.TransactionCreated, saved.ID, saved)
	return *saved, nil
}

// Update replaces every editable field of the transaction id.
func (s *Store) Update(ctx context.Context, id string, d ledger.Draft) (ledger.Transaction, error) {
	if uuid.IsTemporary(id) {
		return ledger.Transaction{}, apperrors.ErrTransactionPending
	}
	if err := prepare(&d); err != nil {
		return ledger.Transaction{}, err
	}

	updated := d.Transaction(id, s.userID)
	var previous ledger.Transaction
	found := false
	s.replace(func(list []ledger.Transaction) []ledger.Transaction {
		i := indexOf(list, id)
		if i < 0 {
			return list
		}
		previous, found = list[i], true
		out := clone(list)
		out[i] = updated
		return out
	})
	if !found {
		return ledger.Transaction{}, apperrors.ErrTransactionNotFound
	}

	if _, err := s.remote.UpdateExpense(ctx, s.userID, id, d); err != nil {
		return ledger.Transaction{}, s.reconcile(ctx, "update", err, func(list []ledger.Transaction) []ledger.Transaction {
			if i := indexOf(list, id); i >= 0 {
				out := clone(list)
				out[i] = previous
				return out
			}
			return list
		})
	}

	s.publish(ctx, events.TransactionUpdated, id, updated)
	return updated, nil
}

// Delete removes the transaction id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if uuid.IsTemporary(id) {
		return apperrors.ErrTransactionPending
	}

	var removed ledger.Transaction
	pos := -1
	s.replace(func(list []ledger.Transaction) []ledger.Transaction {
		pos = indexOf(list, id)
		if pos < 0 {
			return list
		}
		removed = list[pos]
		return without(list, id)
	})
	if pos < 0 {
		return apperrors.ErrTransactionNotFound
	}

	if err := s.remote.DeleteExpense(ctx, s.userID, id); err != nil {
		return s.reconcile(ctx, "delete", err, func(list []ledger.Transaction) []ledger.Transaction {
			if indexOf(list, id) >= 0 {
				return list
			}
			out := make([]ledger.Transaction, 0, len(list)+1)
			if pos > len(list) {
				pos = len(list)
			}
			out = append(out, list[:pos]...)
			out = append(out, removed)
			return append(out, list[pos:]...)
		})
	}

	s.publish(ctx, events.TransactionDeleted, id, nil)
	return nil
}

// AddCategory adds a custom category. Names already in the set are a no-op.
// A remote failure removes the name again and is logged, without a
// user-visible notification.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, ledger.ErrMissingCategory.Error())
	}

	s.mu.Lock()
	for _, existing := range ledger.MergeCategories(ledger.DefaultCategories, s.categories) {
		if existing == name {
			s.mu.Unlock()
			return nil
		}
	}
	s.categories = append(clone(s.categories), name)
	s.mu.Unlock()

	if err := s.remote.InsertCategory(ctx, s.userID, name); err != nil {
		s.log.Errorw("Failed to add category", "category", name, "error", err)
		s.mu.Lock()
		kept := make([]string, 0, len(s.categories))
		for _, c := range s.categories {
			if c != name {
				kept = append(kept, c)
			}
		}
		s.categories = kept
		s.mu.Unlock()
		return remoteError(err)
	}

	s.publish(ctx, events.CategoryCreated, name, nil)
	return nil
}

// reconcile discards an optimistic change after a failed remote call. The
// authoritative list is refetched; if that fails too, rollback undoes the
// change locally. Exactly one notification is recorded.
func (s *Store) reconcile(ctx context.Context, op string, cause error, rollback func([]ledger.Transaction) []ledger.Transaction) error {
	s.log.Errorw("Remote mutation failed", "operation", op, "error", cause)

	if err := s.Reload(context.WithoutCancel(ctx)); err != nil {
		s.replace(rollback)
	}

	if s.notifier != nil {
		s.notifier.Notify(Notification{
			ID:        uuid.New(),
			Level:     "error",
			Message:   fmt.Sprintf("Failed to %s transaction. Please try again.", op),
			CreatedAt: time.Now().UTC(),
		})
	}
	return remoteError(cause)
}

// replace swaps in the list returned by fn, kept newest first. Entries with
// equal dates keep fn's order, so a new entry leads its day.
func (s *Store) replace(fn func([]ledger.Transaction) []ledger.Transaction) {
	s.mu.Lock()
	list := fn(s.transactions)
	ledger.SortByDateDesc(list)
	s.transactions = list
	s.mu.Unlock()
}

func (s *Store) publish(ctx context.Context, eventType, entityID string, payload any) {
	if err := s.publisher.Publish(ctx, events.New(eventType, s.userID, entityID, payload)); err != nil {
		s.log.Warnw("Failed to publish event", "event", eventType, "error", err)
	}
}

// prepare applies defaults and validates d, mapping failures to AppErrors.
func prepare(d *ledger.Draft) error {
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		if errors.Is(err, ledger.ErrUnknownCurrency) {
			return apperrors.WithMessage(apperrors.ErrUnknownCurrency, err.Error())
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// remoteError passes AppErrors through and wraps anything else.
func remoteError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrRemoteUnavailable, err)
}

func indexOf(list []ledger.Transaction, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func without(list []ledger.Transaction, id string) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(list))
	for _, tx := range list {
		if tx.ID != id {
			out = append(out, tx)
		}
	}
	return out
}

func clone[T any](list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	return out
}
