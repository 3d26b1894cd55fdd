package payment

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pohonku/pohonku/internal/client/models"
)

type eventLog struct {
	mu     sync.Mutex
	events []Outcome
}

func (l *eventLog) callbacks() Callbacks {
	add := func(ev Event) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.events = append(l.events, ev.Outcome)
	}
	return Callbacks{OnSuccess: add, OnPending: add, OnError: add, OnClose: add}
}

func (l *eventLog) all() []Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Outcome(nil), l.events...)
}

/*************
 * Tracker
 *************/

func TestTracker_FirstTerminalWins(t *testing.T) {
	var log eventLog
	tr := NewTracker(log.callbacks())
	cb := tr.Callbacks()

	cb.OnPending(Event{})
	cb.OnPending(Event{})
	cb.OnSuccess(Event{OrderID: "ord-1"})
	cb.OnError(Event{})
	cb.OnClose(Event{})
	cb.OnPending(Event{})

	assert.Equal(t, []Outcome{OutcomePending, OutcomePending, OutcomeSuccess}, log.all())

	ev := tr.Wait(context.Background())
	assert.Equal(t, OutcomeSuccess, ev.Outcome)
	assert.Equal(t, "ord-1", ev.OrderID)
}

func TestTracker_ConcurrentTerminals(t *testing.T) {
	var log eventLog
	tr := NewTracker(log.callbacks())
	cb := tr.Callbacks()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); cb.OnError(Event{}) }()
		go func() { defer wg.Done(); cb.OnClose(Event{}) }()
	}
	wg.Wait()

	assert.Len(t, log.all(), 1)
}

func TestTracker_WaitContextEndsAsClosed(t *testing.T) {
	var log eventLog
	tr := NewTracker(log.callbacks())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ev := tr.Wait(ctx)
	assert.Equal(t, OutcomeClosed, ev.Outcome)
	assert.ErrorIs(t, ev.Err, context.DeadlineExceeded)
	assert.Equal(t, []Outcome{OutcomeClosed}, log.all())

	assert.False(t, tr.Report(Event{Outcome: OutcomeSuccess}))
}

/*************
 * Run
 *************/

type fakeWidget struct {
	err   error
	fire  []Outcome
	async bool
}

func (w *fakeWidget) Pay(ctx context.Context, req Request, cb Callbacks) error {
	if w.err != nil {
		return w.err
	}
	send := func() {
		for _, o := range w.fire {
			cb.dispatch(Event{Outcome: o, OrderID: req.OrderID})
		}
	}
	if w.async {
		go send()
		return nil
	}
	send()
	return nil
}

func TestRun(t *testing.T) {
	req := Request{OrderID: "ord-1", Token: models.PaymentToken{SnapToken: "snap"}}

	t.Run("sync success", func(t *testing.T) {
		var log eventLog
		ev := Run(context.Background(), &fakeWidget{fire: []Outcome{OutcomePending, OutcomeSuccess, OutcomeClosed}}, req, log.callbacks())
		assert.Equal(t, OutcomeSuccess, ev.Outcome)
		assert.Equal(t, []Outcome{OutcomePending, OutcomeSuccess}, log.all())
	})

	t.Run("async close", func(t *testing.T) {
		var log eventLog
		ev := Run(context.Background(), &fakeWidget{async: true, fire: []Outcome{OutcomeClosed, OutcomeError}}, req, log.callbacks())
		assert.Equal(t, OutcomeClosed, ev.Outcome)
	})

	t.Run("widget error", func(t *testing.T) {
		boom := errors.New("snap unavailable")
		var log eventLog
		ev := Run(context.Background(), &fakeWidget{err: boom}, req, log.callbacks())
		assert.Equal(t, OutcomeError, ev.Outcome)
		assert.ErrorIs(t, ev.Err, boom)
		assert.Equal(t, []Outcome{OutcomeError}, log.all())
	})
}

/*************
 * SnapRedirect
 *************/

type fakeOrders struct {
	mu       sync.Mutex
	statuses []string
	errs     []error
	calls    int
}

func (f *fakeOrders) GetOrder(ctx context.Context, id string) (*models.Envelope[models.Order], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	status := models.PaymentPending
	if i < len(f.statuses) {
		status = f.statuses[i]
	}
	return &models.Envelope[models.Order]{Success: true, Data: models.Order{ID: id, PaymentStatus: status}}, nil
}

func TestSnapRedirect_PollsUntilPaid(t *testing.T) {
	var out bytes.Buffer
	var log eventLog
	w := &SnapRedirect{
		ClientKey: "SB-Mid-client-abc",
		Orders:    &fakeOrders{statuses: []string{"PENDING", "PENDING", "PAID"}},
		Interval:  time.Millisecond,
		Out:       &out,
	}

	var opened string
	w.Open = func(u string) error { opened = u; return nil }

	ev := Run(context.Background(), w, Request{OrderID: "ord-1", Token: models.PaymentToken{SnapToken: "tok"}}, log.callbacks())

	assert.Equal(t, OutcomeSuccess, ev.Outcome)
	assert.Equal(t, models.PaymentPaid, ev.Status)
	assert.Equal(t, []Outcome{OutcomePending, OutcomeSuccess}, log.all())
	assert.Equal(t, "https://app.sandbox.midtrans.com/snap/v2/vtweb/tok", opened)
	assert.Contains(t, out.String(), opened)
}

func TestSnapRedirect_FailedStatus(t *testing.T) {
	w := &SnapRedirect{Orders: &fakeOrders{statuses: []string{"expired"}}, Interval: time.Millisecond}

	ev := Run(context.Background(), w, Request{OrderID: "ord-1", Token: models.PaymentToken{SnapToken: "tok"}}, Callbacks{})
	assert.Equal(t, OutcomeError, ev.Outcome)
	assert.ErrorIs(t, ev.Err, ErrPaymentFailed)
}

func TestSnapRedirect_RepeatedStatusErrors(t *testing.T) {
	boom := errors.New("HTTP 502: Bad Gateway")
	w := &SnapRedirect{Orders: &fakeOrders{errs: []error{boom, boom, boom}}, Interval: time.Millisecond}

	ev := Run(context.Background(), w, Request{OrderID: "ord-1", Token: models.PaymentToken{SnapToken: "tok"}}, Callbacks{})
	assert.Equal(t, OutcomeError, ev.Outcome)
	assert.ErrorIs(t, ev.Err, boom)
}

func TestSnapRedirect_CancelIsClosed(t *testing.T) {
	w := &SnapRedirect{Orders: &fakeOrders{}, Interval: time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ev := Run(ctx, w, Request{OrderID: "ord-1", Token: models.PaymentToken{SnapToken: "tok"}}, Callbacks{})
	assert.Equal(t, OutcomeClosed, ev.Outcome)
}

func TestSnapRedirect_BadRequest(t *testing.T) {
	w := &SnapRedirect{Orders: &fakeOrders{}}
	require.Error(t, w.Pay(context.Background(), Request{}, Callbacks{}))

	w = &SnapRedirect{}
	require.Error(t, w.Pay(context.Background(), Request{Token: models.PaymentToken{SnapToken: "x"}}, Callbacks{}))
}

func TestSnapHost(t *testing.T) {
	assert.Equal(t, SnapSandboxURL, SnapHost("SB-Mid-client-1"))
	assert.Equal(t, SnapSandboxURL, SnapHost(""))
	assert.Equal(t, SnapProductionURL, SnapHost("Mid-client-1"))

	w := &SnapRedirect{BaseURL: "http://snap.local/"}
	assert.Equal(t, "http://snap.local/snap/v2/vtweb/t", w.RedirectURL("t"))
}
