// Package queue delivers asynchronous new-expense notifications to the
// configured manager address, off the request path.
package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"html"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/corpspend/expense-api/internal/api/metrics"
	"github.com/corpspend/expense-api/internal/core/ports"
	"github.com/corpspend/expense-api/internal/report"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// DedupChecker abstracts the notification idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, expenseID string) (bool, error)
	Mark(ctx context.Context, expenseID string) error
}

// Dispatcher routes notification jobs to a fixed set of workers using
// consistent hashing on the expense id, so retries for the same expense are
// always handled by the same worker.
type Dispatcher struct {
	workers    []chan ports.ExpenseRecord
	mailer     ports.Mailer
	dedup      DedupChecker
	notifyAddr string
	log        zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. An empty notifyAddr disables
// delivery: jobs are accepted and dropped.
func NewDispatcher(numWorkers int, mailer ports.Mailer, dedup DedupChecker, notifyAddr string, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan ports.ExpenseRecord, numWorkers),
		mailer:     mailer,
		dedup:      dedup,
		notifyAddr: notifyAddr,
		log:        log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ExpenseRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// ExpenseCreated enqueues a notification job for a freshly created expense.
// It implements service.CreationNotifier and never blocks the caller beyond
// channel buffer capacity.
func (d *Dispatcher) ExpenseCreated(record ports.ExpenseRecord) {
	if d.notifyAddr == "" {
		return
	}
	idx := d.shardIndex(record.ID)
	d.workers[idx] <- record
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an expense id deterministically to a worker index.
func (d *Dispatcher) shardIndex(expenseID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(expenseID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ExpenseRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			d.notify(ctx, record)
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) notify(ctx context.Context, record ports.ExpenseRecord) {
	isDup, err := d.dedup.IsDuplicate(ctx, record.ID)
	if err != nil {
		d.log.Warn().Err(err).Str("expense_id", record.ID).Msg("dedup check failed, notifying anyway")
	} else if isDup {
		metrics.NotificationsSentTotal.WithLabelValues("duplicate").Inc()
		d.log.Debug().Str("expense_id", record.ID).Msg("duplicate notification skipped")
		return
	}

	if markErr := d.dedup.Mark(ctx, record.ID); markErr != nil {
		d.log.Warn().Err(markErr).Str("expense_id", record.ID).Msg("failed to set dedup key")
	}

	requester := "A user"
	if record.Requester != nil && record.Requester.Username != "" {
		requester = record.Requester.Username
	}
	body := fmt.Sprintf(
		"<p><strong>%s</strong> has requested ₹%s for <strong>%s</strong> (%s).</p><p>Log in to CorpSpend to review the request.</p>",
		html.EscapeString(requester),
		report.FormatAmount(record.Amount),
		html.EscapeString(record.Title),
		html.EscapeString(string(record.Category)),
	)

	_, err = d.mailer.Send(ctx, ports.MailMessage{
		To:      d.notifyAddr,
		Subject: "New Expense Request",
		HTML:    body,
	})
	if err != nil {
		metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).Str("expense_id", record.ID).Msg("notification delivery failed")
		return
	}

	metrics.NotificationsSentTotal.WithLabelValues("ok").Inc()
	d.log.Info().Str("expense_id", record.ID).Str("recipient", d.notifyAddr).Msg("expense notification sent")
}
