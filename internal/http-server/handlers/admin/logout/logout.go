package logout

import (
	"context"
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionCloser
type SessionCloser interface {
	Logout(ctx context.Context) error
}

func New(log *slog.Logger, closer SessionCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.logout.New"

		log := log.With(slog.String("op", op))

		if err := closer.Logout(r.Context()); err != nil {
			log.Error("failed to log out", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log out"))
			return
		}

		log.Info("admin logged out")

		render.JSON(w, r, response.OK())
	}
}
