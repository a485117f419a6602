package getAllEvents

import (
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/models"

	"github.com/go-chi/render"
)

const filterAll = "all"

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	GetAll() []models.Event
}

// New lists events in storage order. An optional ?status= narrows the list
// to one status; "all" or an empty value returns everything.
func New(log *slog.Logger, eventsGetter EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(slog.String("op", op))

		filter := r.URL.Query().Get("status")
		if filter != "" && filter != filterAll && !models.Status(filter).Valid() {
			log.Error("invalid status filter", slog.String("status", filter))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid status filter"))
			return
		}

		events := eventsGetter.GetAll()

		if filter != "" && filter != filterAll {
			filtered := make([]models.Event, 0, len(events))
			for _, e := range events {
				if e.Status == models.Status(filter) {
					filtered = append(filtered, e)
				}
			}
			events = filtered
		}

		log.Info("events retrieved successfully", slog.Int("count", len(events)))

		responseOK(w, r, events)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event) {
	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   events,
	})
}
