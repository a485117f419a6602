package streamEvents

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/models"
	"eventTicketing/internal/store/events"

	"github.com/go-chi/render"
)

const (
	eventName     = "snapshot"
	bufferSize    = 8
	keepAliveTick = 15 * time.Second
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsSubscriber
type EventsSubscriber interface {
	Subscribe(fn events.Subscriber) func()
}

// New streams the collection as server-sent events. The first frame is the
// current snapshot, then one frame per mutation. A slow client only ever
// sees the latest snapshots; older queued ones are dropped.
func New(log *slog.Logger, subscriber EventsSubscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.streamEvents.New"

		log := log.With(
			slog.String("op", op),
			slog.String("remote_addr", r.RemoteAddr),
		)

		rc := http.NewResponseController(w)
		// The server write timeout would otherwise cut the stream.
		_ = rc.SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		if err := rc.Flush(); err != nil {
			log.Error("streaming unsupported", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("streaming unsupported"))
			return
		}

		queue := make(chan []models.Event, bufferSize)

		unsubscribe := subscriber.Subscribe(func(list []models.Event) {
			for {
				select {
				case queue <- list:
					return
				default:
				}

				select {
				case <-queue:
				default:
				}
			}
		})
		defer unsubscribe()

		log.Info("event stream opened")

		ticker := time.NewTicker(keepAliveTick)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				log.Info("event stream closed")
				return
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				_ = rc.Flush()
			case list := <-queue:
				if err := writeFrame(w, list); err != nil {
					log.Error("failed to write frame", sl.Err(err))
					return
				}
				_ = rc.Flush()
			}
		}
	}
}

func writeFrame(w http.ResponseWriter, list []models.Event) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventName, data)
	return err
}
