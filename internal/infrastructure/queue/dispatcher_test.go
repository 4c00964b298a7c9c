package queue

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
)

type syncMailer struct {
	mu   sync.Mutex
	sent []ports.MailMessage
	done chan struct{}
}

func newSyncMailer(expected int) *syncMailer {
	return &syncMailer{done: make(chan struct{}, expected)}
}

func (m *syncMailer) Send(_ context.Context, msg ports.MailMessage) (*ports.Delivery, error) {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return &ports.Delivery{}, nil
}

func (m *syncMailer) messages() []ports.MailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.MailMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemDedup() *memDedup {
	return &memDedup{seen: make(map[string]bool)}
}

func (d *memDedup) IsDuplicate(_ context.Context, expenseID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[expenseID], nil
}

func (d *memDedup) Mark(_ context.Context, expenseID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[expenseID] = true
	return nil
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for delivery")
	}
}

func testRecord(id string) ports.ExpenseRecord {
	return ports.ExpenseRecord{
		Expense: domain.Expense{
			ID: id, Title: "Taxi", Amount: 450, Category: domain.CategoryTravel,
		},
		Requester: &ports.RequesterInfo{Username: "alice"},
	}
}

func TestDispatcher_DeliversNotification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := newSyncMailer(1)
	d := NewDispatcher(2, mailer, newMemDedup(), "managers@co.com", zerolog.Nop())
	d.Start(ctx)

	d.ExpenseCreated(testRecord("exp-1"))
	waitFor(t, mailer.done)

	sent := mailer.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	msg := sent[0]
	if msg.To != "managers@co.com" {
		t.Fatalf("unexpected recipient: %s", msg.To)
	}
	if msg.Subject != "New Expense Request" {
		t.Fatalf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "alice") || !strings.Contains(msg.HTML, "₹450") {
		t.Fatalf("body missing expense details: %s", msg.HTML)
	}
}

func TestDispatcher_SkipsDuplicates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := newSyncMailer(2)
	dedup := newMemDedup()
	d := NewDispatcher(1, mailer, dedup, "managers@co.com", zerolog.Nop())
	d.Start(ctx)

	d.ExpenseCreated(testRecord("exp-1"))
	waitFor(t, mailer.done)

	// Same expense again plus a fresh one; only the fresh one is delivered.
	d.ExpenseCreated(testRecord("exp-1"))
	d.ExpenseCreated(testRecord("exp-2"))
	waitFor(t, mailer.done)

	if got := len(mailer.messages()); got != 2 {
		t.Fatalf("expected 2 deliveries, got %d", got)
	}
}

func TestDispatcher_DisabledWithoutAddress(t *testing.T) {
	mailer := newSyncMailer(1)
	d := NewDispatcher(1, mailer, newMemDedup(), "", zerolog.Nop())
	// No Start: with an empty address ExpenseCreated must drop the job
	// instead of blocking on a worker channel.
	d.ExpenseCreated(testRecord("exp-1"))

	if got := len(mailer.messages()); got != 0 {
		t.Fatalf("disabled dispatcher delivered %d messages", got)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newSyncMailer(0), newMemDedup(), "managers@co.com", zerolog.Nop())

	for _, id := range []string{"exp-1", "exp-2", "abc", ""} {
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard index out of range: %d", first)
		}
		if second := d.shardIndex(id); second != first {
			t.Fatalf("shard index not deterministic for %q: %d vs %d", id, first, second)
		}
	}
}
