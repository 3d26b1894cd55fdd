package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/client/payment"
	"github.com/pohonku/pohonku/internal/client/services"
)

// getSimpleText is an indirection used to facilitate testing.
var getSimpleText = GetSimpleText

// Adopt runs the checkout for one species: confirm the species, ask for the
// tag name, create the order and its payment, then hand the token to the
// payment widget and report the outcome.
func (a *App) Adopt(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("adopt <speciesId>")
	}
	speciesID := args[0]

	if _, err := a.authService.Authorize(ctx); err != nil {
		if errors.Is(err, services.ErrNoSession) {
			// come back here after login
			if _, lerr := a.authService.LoginURL(ctx, "/adopt/"+speciesID); lerr != nil {
				a.log.Warn(ctx, "save login redirect", "error", lerr)
			}
		}
		return err
	}

	sp, err := a.catalogService.Get(ctx, speciesID)
	if err != nil {
		return err
	}
	a.printf("Adopting %s (%s) for %s\n", sp.Name, sp.LatinName, rupiah(sp.BasePrice))

	name, err := getSimpleText(a.reader, "Name on the tree tag (max 100 characters)", a.out)
	if err != nil {
		return err
	}

	checkout, err := a.adoptionService.Checkout(ctx, models.CreateOrderRequest{SpeciesID: sp.ID, NameOnTag: name})
	if err != nil {
		return err
	}
	ref := checkout.Order.OrderNumber
	if ref == "" {
		ref = checkout.Order.Key()
	}
	a.printf("Order %s created.\n", ref)

	ev, err := a.pay(ctx, checkout)
	if err != nil {
		return err
	}
	a.reportPayment(ev, checkout.Order.Key())
	return nil
}

// pay waits for the payment outcome until it is final, the payment timeout
// passes or the user presses Enter. The last two end as OutcomeClosed.
func (a *App) pay(ctx context.Context, checkout *services.Checkout) (payment.Event, error) {
	var cancel context.CancelFunc
	if a.config.PaymentTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, a.config.PaymentTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	a.println("Press Enter to stop waiting.")

	var (
		ev   payment.Event
		err  error
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		ev, err = a.adoptionService.Pay(ctx, a.widget, checkout, payment.Callbacks{
			OnPending: func(p payment.Event) {
				if p.Status != "" {
					a.printf("Waiting for payment (%s)...\n", strings.ToLower(p.Status))
				}
			},
		})
	}()

	if _, entered := a.reader.awaitLine(done); entered {
		a.log.Info(ctx, "stopped waiting for payment", "order_id", checkout.Order.Key())
		cancel()
	}
	<-done
	return ev, err
}

func (a *App) reportPayment(ev payment.Event, orderID string) {
	switch ev.Outcome {
	case payment.OutcomeSuccess:
		a.println("Payment successful! Your tree will appear in `dashboard`.")
	case payment.OutcomeError:
		msg := "Payment failed."
		if ev.Err != nil {
			msg = "Payment failed: " + renderError(ev.Err)
		}
		a.println(msg)
	default:
		a.printf("Payment window closed. Check later with `order %s`.\n", orderID)
	}
}

// Order shows the payment status of an order.
func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("order <orderId>")
	}
	o, err := a.adoptionService.OrderStatus(ctx, args[0])
	if err != nil {
		return err
	}
	status := o.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	ref := o.OrderNumber
	if ref == "" {
		ref = o.Key()
	}
	a.printf("Order %s: %s", ref, status)
	if o.TotalAmount > 0 {
		a.printf(" (%s)", rupiah(o.TotalAmount))
	}
	a.println()
	return nil
}
