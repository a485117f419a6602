package paymentStatus

import (
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/payment/esewa"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// New reports the status of a transaction. The gateway is never asked; every
// id is reported as verified.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.paymentStatus.New"

		log := log.With(slog.String("op", op))

		txID := chi.URLParam(r, "transactionId")
		if txID == "" {
			log.Error("transaction id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("transaction id is required"))
			return
		}

		log.Info("payment status requested", slog.String("transaction_uuid", txID))

		render.JSON(w, r, esewa.PaymentStatus(txID))
	}
}
