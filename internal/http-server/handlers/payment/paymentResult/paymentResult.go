package paymentResult

import (
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/models"
	"eventTicketing/internal/payment/esewa"

	"github.com/go-chi/render"
)

const failureMessage = "Unfortunately, your payment could not be processed. " +
	"Please try again or contact support if the problem persists."

// NewSuccess handles the gateway's success redirect. The payload comes
// either as the base64 "data" parameter or as plain query parameters, and
// is trusted as-is.
func NewSuccess(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.paymentResult.NewSuccess"

		log := log.With(slog.String("op", op))

		query := r.URL.Query()

		fields := map[string]string{
			"status":           query.Get("status"),
			"transaction_uuid": query.Get("transaction_uuid"),
		}

		if data := query.Get("data"); data != "" {
			decoded, err := esewa.DecodeCallback(data)
			if err != nil {
				log.Error("failed to decode callback data", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid callback data"))
				return
			}
			fields = decoded
		}

		result := esewa.VerifyPayment(fields)

		// TODO: call events.Store.RecordSale here once the callback is
		// verified against the gateway status API.
		log.Info("payment result received",
			slog.String("status", string(result.Status)),
			slog.String("transaction_uuid", fields["transaction_uuid"]),
		)

		render.JSON(w, r, result)
	}
}

// NewFailure echoes the transaction id from transaction_uuid or transactionId.
func NewFailure(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.paymentResult.NewFailure"

		log := log.With(slog.String("op", op))

		query := r.URL.Query()

		txID := query.Get("transaction_uuid")
		if txID == "" {
			txID = query.Get("transactionId")
		}

		log.Info("payment failed", slog.String("transaction_uuid", txID))

		render.JSON(w, r, models.PaymentResponse{
			Status:        models.PaymentFailure,
			TransactionID: txID,
			Message:       failureMessage,
		})
	}
}
