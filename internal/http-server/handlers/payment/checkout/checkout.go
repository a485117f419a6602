package checkout

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/models"
	"eventTicketing/internal/payment/booking"
	"eventTicketing/internal/store/events"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentPreparer
type PaymentPreparer interface {
	Prepare(eventID string, quantity int) (models.PaymentRequest, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FormSubmitter
type FormSubmitter interface {
	Submit(w io.Writer, req models.PaymentRequest) models.PaymentResponse
}

// New answers a booking form post with the auto-submitting gateway form.
// The quantity form value defaults to 1.
func New(log *slog.Logger, preparer PaymentPreparer, submitter FormSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.checkout.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		quantity := 1
		if raw := r.FormValue("quantity"); raw != "" {
			q, err := strconv.Atoi(raw)
			if err != nil {
				log.Error("invalid quantity format", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid quantity format"))
				return
			}
			quantity = q
		}

		req, err := preparer.Prepare(eventID, quantity)
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

		// The form is buffered so a failed render never leaves HTML ahead of the JSON error.
		var page bytes.Buffer

		result := submitter.Submit(&page, req)
		if result.Status != models.PaymentSuccess {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(result.Message))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := page.WriteTo(w); err != nil {
			log.Error("failed to write checkout form", sl.Err(err))
			return
		}

		log.Info("checkout form sent", slog.String("transaction_uuid", req.TransactionUUID))
	}
}
