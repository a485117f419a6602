package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventTicketing/internal/lib/api/response"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/lib/validate"
	"eventTicketing/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date" validate:"required"`
	Time        string          `json:"time" validate:"required"`
	Venue       string          `json:"venue"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Image       string          `json:"image,omitempty"`
	MaxTickets  int             `json:"maxTickets" validate:"gt=0"`
	Category    string          `json:"category"`
	Status      models.Status   `json:"status" validate:"omitempty,oneof=active inactive sold_out"`
}

type EventResponse struct {
	response.Response
	Event models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	Add(ctx context.Context, event models.Event) error
}

var requestValidator = validate.New()

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("title", req.Title))

		if err = requestValidator.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		event := models.Event{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date,
			Time:        req.Time,
			Venue:       req.Venue,
			Price:       req.Price,
			Image:       req.Image,
			MaxTickets:  req.MaxTickets,
			Category:    req.Category,
			Status:      req.Status,
		}
		if event.Status == "" {
			event.Status = models.StatusActive
		}

		if err = creator.Add(r.Context(), event); err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.String("id", event.ID))

		responseOK(w, r, event)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event models.Event) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    event,
	})
}
