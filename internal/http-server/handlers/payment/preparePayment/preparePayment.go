package preparePayment

import (
	"errors"
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/models"
	"eventTicketing/internal/payment/booking"
	"eventTicketing/internal/payment/esewa"
	"eventTicketing/internal/store/events"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	EventID  string `json:"event_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type Form struct {
	Action string        `json:"action"`
	Method string        `json:"method"`
	Target string        `json:"target"`
	Fields []esewa.Field `json:"fields"`
}

type PaymentResponse struct {
	response.Response
	Payment models.PaymentRequest `json:"payment"`
	Form    Form                  `json:"form"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentPreparer
type PaymentPreparer interface {
	Prepare(eventID string, quantity int) (models.PaymentRequest, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FormDescriber
type FormDescriber interface {
	FormAction() string
	FormFields(req models.PaymentRequest) []esewa.Field
}

// New returns the signed request and the form a client must post to the
// gateway itself.
func New(log *slog.Logger, preparer PaymentPreparer, form FormDescriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.preparePayment.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		payment, err := preparer.Prepare(req.EventID, req.Quantity)
		if err != nil {
			log.Error("failed to prepare payment", sl.Err(err))

			switch {
			case errors.Is(err, events.ErrInvalidQuantity), errors.Is(err, booking.ErrTooManyTickets):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid quantity"))
			case errors.Is(err, events.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, booking.ErrEventUnavailable):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is not available for booking"))
			case errors.Is(err, events.ErrInsufficientTickets):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("not enough tickets available"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to prepare payment"))
			}
			return
		}

		log.Info("payment prepared", slog.String("transaction_uuid", payment.TransactionUUID))

		render.JSON(w, r, PaymentResponse{
			Response: response.OK(),
			Payment:  payment,
			Form: Form{
				Action: form.FormAction(),
				Method: http.MethodPost,
				Target: "_blank",
				Fields: form.FormFields(payment),
			},
		})
	}
}
