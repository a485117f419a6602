package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/lib/validate"
	"eventTicketing/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// editable is the merged event as the edit form would submit it.
type editable struct {
	Title       string          `validate:"required"`
	Date        string          `validate:"required"`
	Time        string          `validate:"required"`
	Price       decimal.Decimal `validate:"gte=0"`
	MaxTickets  int             `validate:"gt=0"`
	SoldTickets int             `validate:"gte=0"`
	Status      models.Status   `validate:"oneof=active inactive sold_out"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	GetByID(id string) (models.Event, bool)
	Update(ctx context.Context, id string, patch models.EventPatch) error
}

var requestValidator = validate.New()

// New merges a partial update into an event. The merged event is validated
// before anything is written. An unknown id is not an error: the store is
// still asked to update and the response carries no event.
func New(log *slog.Logger, updater EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.updateEvent.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var patch models.EventPatch

		err := render.DecodeJSON(r.Body, &patch)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		current, found := updater.GetByID(eventID)
		if found {
			merged := patch.Apply(current)

			if err = requestValidator.Struct(editable{
				Title:       merged.Title,
				Date:        merged.Date,
				Time:        merged.Time,
				Price:       merged.Price,
				MaxTickets:  merged.MaxTickets,
				SoldTickets: merged.SoldTickets,
				Status:      merged.Status,
			}); err != nil {
				var validateErr validator.ValidationErrors
				errors.As(err, &validateErr)

				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if err = updater.Update(r.Context(), eventID, patch); err != nil {
			log.Error("failed to update event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update event"))
			return
		}

		if !found {
			log.Info("update for unknown event ignored")
			render.JSON(w, r, EventResponse{Response: response.OK()})
			return
		}

		updated, ok := updater.GetByID(eventID)
		if !ok {
			render.JSON(w, r, EventResponse{Response: response.OK()})
			return
		}

		log.Info("event updated")

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    &updated,
		})
	}
}
