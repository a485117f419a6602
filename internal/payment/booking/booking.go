// Package booking turns a ticket order into a signed payment request.
package booking

import (
	"errors"
	"fmt"
	"log/slog"

	"eventTicketing/internal/models"
	"eventTicketing/internal/store/events"

	"github.com/shopspring/decimal"
)

// MaxPerOrder caps the tickets of one order, as the storefront offers at most ten.
const MaxPerOrder = 10

var (
	ErrEventUnavailable = errors.New("event is not available for booking")
	ErrTooManyTickets   = fmt.Errorf("at most %d tickets per order", MaxPerOrder)
)

type EventGetter interface {
	GetByID(id string) (models.Event, bool)
}

type RequestBuilder interface {
	PrepareRequest(amount decimal.Decimal, productCode string) (models.PaymentRequest, error)
}

type Service struct {
	log     *slog.Logger
	events  EventGetter
	builder RequestBuilder
}

func New(log *slog.Logger, events EventGetter, builder RequestBuilder) *Service {
	return &Service{
		log:     log,
		events:  events,
		builder: builder,
	}
}

func ProductCode(eventID string) string {
	return "EVENT-" + eventID
}

// Prepare prices quantity tickets of an active event and signs the request.
// Nothing is reserved: availability is only checked, never decremented.
func (s *Service) Prepare(eventID string, quantity int) (models.PaymentRequest, error) {
	const op = "payment.booking.Prepare"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", eventID),
		slog.Int("quantity", quantity),
	)

	if quantity < 1 {
		return models.PaymentRequest{}, fmt.Errorf("%s: %w", op, events.ErrInvalidQuantity)
	}
	if quantity > MaxPerOrder {
		return models.PaymentRequest{}, fmt.Errorf("%s: %w", op, ErrTooManyTickets)
	}

	event, ok := s.events.GetByID(eventID)
	if !ok {
		return models.PaymentRequest{}, fmt.Errorf("%s: %w", op, events.ErrEventNotFound)
	}

	if event.Status != models.StatusActive {
		return models.PaymentRequest{}, fmt.Errorf("%s: %w", op, ErrEventUnavailable)
	}

	if quantity > event.AvailableTickets() {
		return models.PaymentRequest{}, fmt.Errorf("%s: %w", op, events.ErrInsufficientTickets)
	}

	amount := event.Price.Mul(decimal.NewFromInt(int64(quantity)))

	req, err := s.builder.PrepareRequest(amount, ProductCode(event.ID))
	if err != nil {
		return models.PaymentRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("payment request prepared",
		slog.String("transaction_uuid", req.TransactionUUID),
		slog.String("total_amount", req.TotalAmount.String()),
	)

	return req, nil
}
