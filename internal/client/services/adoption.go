package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/client/payment"
	"github.com/pohonku/pohonku/internal/logging"
	"github.com/pohonku/pohonku/internal/validate"
)

// Checkout is the result of a successful checkout: the created order and the
// token to hand to the payment widget.
type Checkout struct {
	Order models.Order
	Token models.PaymentToken
}

// AdoptionService places adoption orders and runs their payment.
type AdoptionService interface {
	// Checkout validates req, creates the order, then requests its payment
	// token. Invalid input fails with *validate.ValidationError before any
	// request is sent.
	Checkout(ctx context.Context, req models.CreateOrderRequest) (*Checkout, error)
	// Pay runs one payment attempt on w and returns its single terminal
	// event. Only one attempt runs at a time; a second call while one is in
	// progress fails with ErrPaymentBusy.
	Pay(ctx context.Context, w payment.Widget, c *Checkout, cb payment.Callbacks) (payment.Event, error)
	OrderStatus(ctx context.Context, orderID string) (*models.Order, error)
	Busy() bool
}

type adoptionService struct {
	*guard
	api      OrdersAPI
	validate *validate.Validator
	busy     atomic.Bool
}

func NewAdoptionService(api OrdersAPI, store SessionStore, log logging.Logger) AdoptionService {
	return &adoptionService{guard: newGuard(store, log), api: api, validate: validate.New()}
}

func (s *adoptionService) Checkout(ctx context.Context, req models.CreateOrderRequest) (*Checkout, error) {
	req = req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", s.check(ctx, err))
	}

	key := order.Data.Key()
	if key == "" {
		return nil, fmt.Errorf("create order: response has no order id")
	}
	s.log.Info(ctx, "order created", "order_id", key, "species_id", req.SpeciesID)

	token, err := s.api.CreatePayment(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", s.check(ctx, err))
	}
	if token.Data.SnapToken == "" {
		return nil, fmt.Errorf("create payment: response has no payment token")
	}

	return &Checkout{Order: order.Data, Token: token.Data}, nil
}

func (s *adoptionService) Pay(ctx context.Context, w payment.Widget, c *Checkout, cb payment.Callbacks) (payment.Event, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return payment.Event{}, ErrPaymentBusy
	}
	defer s.busy.Store(false)

	ctx, err := s.authorize(ctx)
	if err != nil {
		return payment.Event{}, err
	}

	req := payment.Request{OrderID: c.Order.Key(), Token: c.Token}
	ev := payment.Run(ctx, w, req, cb)
	s.log.Info(ctx, "payment finished", "order_id", req.OrderID, "outcome", string(ev.Outcome), "status", ev.Status)
	return ev, nil
}

func (s *adoptionService) OrderStatus(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	env, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, s.check(ctx, err)
	}
	return &env.Data, nil
}

func (s *adoptionService) Busy() bool { return s.busy.Load() }
