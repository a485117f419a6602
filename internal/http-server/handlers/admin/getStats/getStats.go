package getStats

import (
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/models"

	"github.com/go-chi/render"
)

type StatsResponse struct {
	response.Response
	Stats models.Stats `json:"stats"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatsGetter
type StatsGetter interface {
	Stats() models.Stats
}

func New(log *slog.Logger, getter StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.getStats.New"

		log := log.With(slog.String("op", op))

		stats := getter.Stats()

		log.Info("stats computed",
			slog.Int("total_events", stats.TotalEvents),
			slog.Int("tickets_sold", stats.TotalTicketsSold),
		)

		render.JSON(w, r, StatsResponse{
			Response: response.OK(),
			Stats:    stats,
		})
	}
}
