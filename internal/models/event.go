package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and amounts travel as JSON numbers, matching the seed dataset.
	decimal.MarshalJSONWithoutQuotes = true
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusSoldOut  Status = "sold_out"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSoldOut:
		return true
	}
	return false
}

// Event is a ticketed occurrence. SoldTickets <= MaxTickets is expected
// but only RecordSale enforces it.
type Event struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Venue       string          `json:"venue"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	MaxTickets  int             `json:"maxTickets"`
	SoldTickets int             `json:"soldTickets"`
	Category    string          `json:"category"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (e Event) AvailableTickets() int {
	return e.MaxTickets - e.SoldTickets
}

// EventPatch carries the fields of a partial update. Nil fields are left as they are.
type EventPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Time        *string          `json:"time,omitempty"`
	Venue       *string          `json:"venue,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	MaxTickets  *int             `json:"maxTickets,omitempty"`
	SoldTickets *int             `json:"soldTickets,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Status      *Status          `json:"status,omitempty"`
}

func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.MaxTickets != nil {
		e.MaxTickets = *p.MaxTickets
	}
	if p.SoldTickets != nil {
		e.SoldTickets = *p.SoldTickets
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	return e
}

// Stats are the admin dashboard aggregates.
type Stats struct {
	TotalEvents      int             `json:"totalEvents"`
	ActiveEvents     int             `json:"activeEvents"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalTicketsSold int             `json:"totalTicketsSold"`
	TotalCapacity    int             `json:"totalCapacity"`
	OccupancyRate    float64         `json:"occupancyRate"`
}
