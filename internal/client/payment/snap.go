package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/logging"
)

const (
	SnapSandboxURL    = "https://app.sandbox.midtrans.com"
	SnapProductionURL = "https://app.midtrans.com"

	maxStatusErrors = 3
)

// OrderSource reads the current state of an order.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string) (*models.Envelope[models.Order], error)
}

// SnapRedirect is a Widget for terminals: it prints the hosted Snap payment
// page for the user to open and then polls the order until its payment
// status settles. Cancelling ctx reports the attempt as closed.
type SnapRedirect struct {
	// BaseURL of the Snap host. Empty selects sandbox or production from
	// the client key.
	BaseURL   string
	ClientKey string
	Orders    OrderSource
	Interval  time.Duration
	Out       io.Writer
	Log       logging.Logger

	// Open, when set, is given the payment URL, e.g. to launch a browser.
	Open func(url string) error
}

// SnapHost picks the Snap host for a Midtrans client key. Sandbox keys carry
// the "SB-" prefix.
func SnapHost(clientKey string) string {
	if strings.HasPrefix(clientKey, "SB-") || clientKey == "" {
		return SnapSandboxURL
	}
	return SnapProductionURL
}

func (s *SnapRedirect) RedirectURL(token string) string {
	base := s.BaseURL
	if base == "" {
		base = SnapHost(s.ClientKey)
	}
	return strings.TrimRight(base, "/") + "/snap/v2/vtweb/" + token
}

func (s *SnapRedirect) Pay(ctx context.Context, req Request, cb Callbacks) error {
	if req.Token.SnapToken == "" {
		return errors.New("snap: empty payment token")
	}
	if s.Orders == nil {
		return errors.New("snap: no order source")
	}

	log := s.Log
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("order_id", req.OrderID, "transaction_id", req.Token.TransactionID)

	link := s.RedirectURL(req.Token.SnapToken)
	if s.Out != nil {
		fmt.Fprintf(s.Out, "Complete the payment at:\n  %s\n", link)
	}
	if s.Open != nil {
		if err := s.Open(link); err != nil {
			log.Warn(ctx, "could not open payment page", "error", err)
		}
	}

	interval := s.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastStatus := ""
	failures := 0
	for {
		select {
		case <-ctx.Done():
			cb.dispatch(Event{Outcome: OutcomeClosed, OrderID: req.OrderID, Status: lastStatus, Err: ctx.Err()})
			return nil
		case <-ticker.C:
		}

		env, err := s.Orders.GetOrder(ctx, req.OrderID)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			failures++
			log.Warn(ctx, "order status check failed", "attempt", failures, "error", err)
			if failures >= maxStatusErrors {
				cb.dispatch(Event{Outcome: OutcomeError, OrderID: req.OrderID, Status: lastStatus, Err: err})
				return nil
			}
			continue
		}
		failures = 0

		status := strings.ToUpper(env.Data.PaymentStatus)
		outcome := outcomeFor(status)
		if outcome == OutcomePending && status == lastStatus {
			continue
		}
		lastStatus = status

		ev := Event{Outcome: outcome, OrderID: req.OrderID, Status: status}
		if outcome == OutcomeError {
			ev.Err = fmt.Errorf("%w: %s", ErrPaymentFailed, status)
		}
		cb.dispatch(ev)
		if outcome.Terminal() {
			return nil
		}
	}
}

func outcomeFor(status string) Outcome {
	switch status {
	case models.PaymentPaid, models.PaymentSettlement, "SUCCESS", "CAPTURE":
		return OutcomeSuccess
	case models.PaymentFailed, models.PaymentExpired, models.PaymentCancelled, "DENY", "CANCEL", "EXPIRE", "FAILURE":
		return OutcomeError
	default:
		return OutcomePending
	}
}
