package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"expensetracker/internal/events"
	"expensetracker/internal/ledger"
	"expensetracker/internal/store"
	"expensetracker/internal/testutil"
)

type mockRemote struct {
	listExpensesFn  func(ctx context.Context, userID string) ([]ledger.Transaction, error)
	insertExpenseFn func(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error)
}

func (m *mockRemote) ListExpenses(ctx context.Context, userID string) ([]ledger.Transaction, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(ctx, userID)
	}
	return []ledger.Transaction{{ID: "t1", UserID: userID, Amount: decimal.NewFromInt(5), Currency: "USD", Category: "Food", Type: ledger.Debit, Date: ledger.NewDate(2024, 6, 1)}}, nil
}

func (m *mockRemote) InsertExpense(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error) {
	if m.insertExpenseFn != nil {
		return m.insertExpenseFn(ctx, userID, d)
	}
	tx := d.Transaction("new", userID)
	return &tx, nil
}

func (m *mockRemote) UpdateExpense(_ context.Context, userID, id string, d ledger.Draft) (*ledger.Transaction, error) {
	tx := d.Transaction(id, userID)
	return &tx, nil
}

func (m *mockRemote) DeleteExpense(context.Context, string, string) error { return nil }

func (m *mockRemote) ListCategories(context.Context, string) ([]string, error) {
	return []string{"Travel"}, nil
}

func (m *mockRemote) InsertCategory(context.Context, string, string) error { return nil }

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	p.types = append(p.types, e.Type)
	p.mu.Unlock()
	return nil
}

func newTestManager(remote store.Remote, opts ...Option) *Manager {
	opts = append([]Option{WithLogger(zap.NewNop().Sugar())}, opts...)
	return NewManager(remote, opts...)
}

func TestManagerOpen(t *testing.T) {
	t.Run("loads_user_data", func(t *testing.T) {
		m := newTestManager(&mockRemote{})

		s, err := m.Open(context.Background(), "user-1")
		testutil.AssertNoError(t, err)

		if len(s.Store.Transactions()) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(s.Store.Transactions()))
		}
		cats := s.Store.Categories()
		if cats[len(cats)-1] != "Travel" {
			t.Errorf("expected custom category loaded, got %v", cats)
		}
		if s.DisplayCurrency() != "OMR" {
			t.Errorf("expected OMR display currency, got %s", s.DisplayCurrency())
		}
	})

	t.Run("is_idempotent", func(t *testing.T) {
		m := newTestManager(&mockRemote{})
		first, _ := m.Open(context.Background(), "user-1")
		second, _ := m.Open(context.Background(), "user-1")
		if first != second {
			t.Error("expected the same session for repeated sign-in")
		}
		if m.Count() != 1 {
			t.Errorf("expected 1 session, got %d", m.Count())
		}
	})

	t.Run("load_failure_keeps_session_open", func(t *testing.T) {
		remote := &mockRemote{listExpensesFn: func(context.Context, string) ([]ledger.Transaction, error) {
			return nil, errors.New("down")
		}}
		m := newTestManager(remote)

		s, err := m.Open(context.Background(), "user-1")
		testutil.AssertAppError(t, err, "REMOTE_UNAVAILABLE")
		if s == nil {
			t.Fatal("expected a session despite the load failure")
		}
		if len(s.Store.Transactions()) != 0 {
			t.Errorf("expected empty list, got %d", len(s.Store.Transactions()))
		}

		ensured, err := m.Ensure(context.Background(), "user-1")
		testutil.AssertNoError(t, err)
		if ensured != s {
			t.Error("expected Ensure to return the open session")
		}
	})

	t.Run("concurrent_requests_wait_for_first_load", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		remote := &mockRemote{listExpensesFn: func(_ context.Context, userID string) ([]ledger.Transaction, error) {
			close(started)
			<-release
			return []ledger.Transaction{{ID: "t1", UserID: userID, Amount: decimal.NewFromInt(5), Currency: "USD", Category: "Food", Type: ledger.Debit, Date: ledger.NewDate(2024, 6, 1)}}, nil
		}}
		m := newTestManager(remote)

		go func() { _, _ = m.Open(context.Background(), "user-1") }()
		<-started

		ensured := make(chan *Session, 1)
		go func() {
			s, _ := m.Ensure(context.Background(), "user-1")
			ensured <- s
		}()
		select {
		case <-ensured:
			t.Fatal("Ensure returned before the sign-in fetch finished")
		case <-time.After(20 * time.Millisecond):
		}

		close(release)
		s := <-ensured
		if s == nil || len(s.Store.Transactions()) != 1 {
			t.Fatalf("expected loaded session, got %+v", s)
		}
	})

	t.Run("waiting_honours_context", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		defer close(release)
		remote := &mockRemote{listExpensesFn: func(context.Context, string) ([]ledger.Transaction, error) {
			close(started)
			<-release
			return nil, nil
		}}
		m := newTestManager(remote)

		go func() { _, _ = m.Open(context.Background(), "user-1") }()
		<-started

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := m.Ensure(ctx, "user-1"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("empty_user_id", func(t *testing.T) {
		m := newTestManager(&mockRemote{})
		_, err := m.Open(context.Background(), "")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("default_currency_option", func(t *testing.T) {
		m := newTestManager(&mockRemote{}, WithDefaultCurrency("egp"))
		s, _ := m.Open(context.Background(), "user-1")
		if s.DisplayCurrency() != "EGP" {
			t.Errorf("expected EGP, got %s", s.DisplayCurrency())
		}
	})
}

func TestManagerClose(t *testing.T) {
	pub := &recordingPublisher{}
	m := newTestManager(&mockRemote{}, WithPublisher(pub))

	_, _ = m.Open(context.Background(), "user-1")
	testutil.AssertNoError(t, m.Close(context.Background(), "user-1"))

	_, err := m.Get("user-1")
	testutil.AssertAppError(t, err, "SESSION_NOT_FOUND")
	testutil.AssertAppError(t, m.Close(context.Background(), "user-1"), "SESSION_NOT_FOUND")

	if len(pub.types) != 2 || pub.types[0] != events.SessionOpened || pub.types[1] != events.SessionClosed {
		t.Errorf("expected opened then closed events, got %v", pub.types)
	}
}

func TestHandleAuthEvent(t *testing.T) {
	m := newTestManager(&mockRemote{})
	ctx := context.Background()

	testutil.AssertNoError(t, m.HandleAuthEvent(ctx, AuthEvent{Event: EventSignedIn, UserID: "user-1"}))
	if _, err := m.Get("user-1"); err != nil {
		t.Fatalf("expected session after SIGNED_IN: %v", err)
	}

	testutil.AssertNoError(t, m.HandleAuthEvent(ctx, AuthEvent{Event: EventTokenRefreshed, UserID: "user-1"}))
	if m.Count() != 1 {
		t.Errorf("TOKEN_REFRESHED should not change sessions, got %d", m.Count())
	}

	testutil.AssertNoError(t, m.HandleAuthEvent(ctx, AuthEvent{Event: EventSignedOut, UserID: "user-1"}))
	if m.Count() != 0 {
		t.Errorf("expected no sessions after SIGNED_OUT, got %d", m.Count())
	}

	testutil.AssertNoError(t, m.HandleAuthEvent(ctx, AuthEvent{Event: EventUserDeleted, UserID: "user-1"}))
	testutil.AssertAppError(t, m.HandleAuthEvent(ctx, AuthEvent{Event: EventSignedIn}), "UNAUTHORIZED")
}

func TestSessionState(t *testing.T) {
	t.Run("display_currency", func(t *testing.T) {
		s := &Session{display: "OMR"}
		testutil.AssertNoError(t, s.SetDisplayCurrency("usd"))
		if s.DisplayCurrency() != "USD" {
			t.Errorf("expected USD, got %s", s.DisplayCurrency())
		}
		testutil.AssertAppError(t, s.SetDisplayCurrency("JPY"), "UNKNOWN_CURRENCY")
		if s.DisplayCurrency() != "USD" {
			t.Errorf("expected USD to be kept, got %s", s.DisplayCurrency())
		}
	})

	t.Run("failed_mutation_lands_in_inbox_once", func(t *testing.T) {
		remote := &mockRemote{insertExpenseFn: func(context.Context, string, ledger.Draft) (*ledger.Transaction, error) {
			return nil, errors.New("down")
		}}
		m := newTestManager(remote)
		s, _ := m.Open(context.Background(), "user-1")

		_, err := s.Store.Create(context.Background(), ledger.Draft{
			Amount:   decimal.NewFromInt(3),
			Category: "Food",
			Date:     ledger.NewDate(2024, 6, 2),
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if s.Inbox.Len() != 1 {
			t.Fatalf("expected 1 pending notification, got %d", s.Inbox.Len())
		}
		drained := s.Inbox.Drain()
		if len(drained) != 1 || drained[0].Level != "error" {
			t.Errorf("unexpected notifications %+v", drained)
		}
		if len(s.Inbox.Drain()) != 0 {
			t.Error("expected inbox to be empty after drain")
		}
	})

	t.Run("inbox_is_bounded", func(t *testing.T) {
		in := &Inbox{}
		for i := 0; i < inboxCapacity+5; i++ {
			in.Notify(store.Notification{Message: "x"})
		}
		if in.Len() != inboxCapacity {
			t.Errorf("expected %d, got %d", inboxCapacity, in.Len())
		}
	})
}
