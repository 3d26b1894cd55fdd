// Package payment hands a payment token to an external payment widget and
// reduces the widget's callbacks to a single terminal outcome.
package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/pohonku/pohonku/internal/client/models"
)

var ErrPaymentFailed = errors.New("payment failed")

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePending Outcome = "pending"
	OutcomeError   Outcome = "error"
	OutcomeClosed  Outcome = "closed"
)

// Terminal reports whether o ends a payment attempt. Pending does not.
func (o Outcome) Terminal() bool {
	return o == OutcomeSuccess || o == OutcomeError || o == OutcomeClosed
}

type Event struct {
	Outcome Outcome
	OrderID string
	Status  string
	Err     error
}

// Callbacks mirrors the hooks of a hosted payment widget. Any of them may be
// nil.
type Callbacks struct {
	OnSuccess func(Event)
	OnPending func(Event)
	OnError   func(Event)
	OnClose   func(Event)
}

func (cb Callbacks) dispatch(ev Event) {
	var fn func(Event)
	switch ev.Outcome {
	case OutcomeSuccess:
		fn = cb.OnSuccess
	case OutcomePending:
		fn = cb.OnPending
	case OutcomeError:
		fn = cb.OnError
	case OutcomeClosed:
		fn = cb.OnClose
	}
	if fn != nil {
		fn(ev)
	}
}

// Request is what a widget needs to start a payment.
type Request struct {
	OrderID string
	Token   models.PaymentToken
}

// Widget runs one payment. Pay may return before or after the outcome is
// reported through cb; it must eventually report exactly one terminal
// outcome unless it returns an error.
type Widget interface {
	Pay(ctx context.Context, req Request, cb Callbacks) error
}

// Tracker guards a set of callbacks so that only the first terminal outcome
// is forwarded. Pending events are forwarded until then.
type Tracker struct {
	cb    Callbacks
	once  sync.Once
	mu    sync.Mutex
	done  chan struct{}
	final Event
}

func NewTracker(cb Callbacks) *Tracker {
	return &Tracker{cb: cb, done: make(chan struct{})}
}

// Report records ev. It returns false when ev was ignored because a
// terminal outcome had already been reported.
func (t *Tracker) Report(ev Event) bool {
	if !ev.Outcome.Terminal() {
		select {
		case <-t.done:
			return false
		default:
		}
		t.cb.dispatch(ev)
		return true
	}

	accepted := false
	t.once.Do(func() {
		accepted = true
		t.mu.Lock()
		t.final = ev
		t.mu.Unlock()
		t.cb.dispatch(ev)
		close(t.done)
	})
	return accepted
}

// Callbacks returns widget callbacks that report into t.
func (t *Tracker) Callbacks() Callbacks {
	report := func(o Outcome) func(Event) {
		return func(ev Event) {
			ev.Outcome = o
			t.Report(ev)
		}
	}
	return Callbacks{
		OnSuccess: report(OutcomeSuccess),
		OnPending: report(OutcomePending),
		OnError:   report(OutcomeError),
		OnClose:   report(OutcomeClosed),
	}
}

func (t *Tracker) Done() <-chan struct{} { return t.done }

// Wait blocks until a terminal outcome has been reported and its callback
// has returned. If ctx ends first the attempt is reported as closed.
func (t *Tracker) Wait(ctx context.Context) Event {
	select {
	case <-t.done:
	case <-ctx.Done():
		t.Report(Event{Outcome: OutcomeClosed, Err: ctx.Err()})
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.final
}

// Run starts req on w and waits for its terminal outcome. A widget error is
// reported as OutcomeError.
func Run(ctx context.Context, w Widget, req Request, cb Callbacks) Event {
	t := NewTracker(cb)
	if err := w.Pay(ctx, req, t.Callbacks()); err != nil {
		t.Report(Event{Outcome: OutcomeError, OrderID: req.OrderID, Err: err})
	}
	return t.Wait(ctx)
}
