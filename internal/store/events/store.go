// Package events is the authoritative in-process collection of events.
//
// Every mutation rewrites the whole collection into a single storage slot
// and then notifies subscribers. Two processes sharing one slot overwrite
// each other's snapshots; there is no merge and no cross-process
// notification.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"eventTicketing/internal/models"
	"eventTicketing/internal/storage"

	"github.com/shopspring/decimal"
)

const DefaultKey = "events"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Slot
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Subscriber receives its own copy of the collection. It may read, mutate
// or subscribe to the store; a mutation made from inside a Subscriber is
// delivered after the current call returns.
type Subscriber func(events []models.Event)

// MutationObserver is told about every attempted mutation and its outcome.
type MutationObserver interface {
	ObserveMutation(op string, err error)
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed replaces the bundled seed dataset used when the slot is empty.
func WithSeed(events []models.Event) Option {
	return func(s *Store) { s.seed = events }
}

func WithMutationObserver(o MutationObserver) Option {
	return func(s *Store) { s.observer = o }
}

type Store struct {
	slot     Slot
	key      string
	now      func() time.Time
	seed     []models.Event
	observer MutationObserver

	mu     sync.RWMutex
	events []models.Event
	subs   []*subscriber
}

// New loads the collection from the slot. An empty slot is filled with the
// seed dataset right away. Undecodable slot contents are returned as an error.
func New(ctx context.Context, slot Slot, opts ...Option) (*Store, error) {
	const op = "store.events.New"

	s := &Store{
		slot: slot,
		key:  DefaultKey,
		now:  func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	raw, err := slot.Get(ctx, s.key)
	switch {
	case err == nil:
		s.events, err = decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	case errors.Is(err, storage.ErrNotFound):
		if s.seed == nil {
			if s.seed, err = DefaultSeed(); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		s.events = clone(s.seed)
		if err = s.persist(ctx, s.events); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	default:
		return nil, fmt.Errorf("%s: load: %w", op, err)
	}

	return s, nil
}

// GetAll returns a copy of the collection in storage order.
func (s *Store) GetAll() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.events)
}

func (s *Store) GetByID(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}

	return models.Event{}, false
}

// Add stamps createdAt and updatedAt and appends the event. Ids are not
// checked for collisions.
func (s *Store) Add(ctx context.Context, event models.Event) error {
	return s.mutate(ctx, "add", func(current []models.Event) ([]models.Event, error) {
		now := s.now()
		event.CreatedAt = now
		event.UpdatedAt = now

		next := make([]models.Event, 0, len(current)+1)
		next = append(next, current...)

		return append(next, event), nil
	})
}

// Update merges patch into the event with the given id. An unknown id leaves
// the collection as it is but still persists and notifies.
func (s *Store) Update(ctx context.Context, id string, patch models.EventPatch) error {
	return s.mutate(ctx, "update", func(current []models.Event) ([]models.Event, error) {
		next := clone(current)

		for i := range next {
			if next[i].ID == id {
				next[i] = patch.Apply(next[i])
				next[i].UpdatedAt = s.now()
			}
		}

		return next, nil
	})
}

// Remove drops the event with the given id. Like Update, an unknown id still
// persists and notifies.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove", func(current []models.Event) ([]models.Event, error) {
		next := make([]models.Event, 0, len(current))

		for _, e := range current {
			if e.ID != id {
				next = append(next, e)
			}
		}

		return next, nil
	})
}

// RecordSale adds quantity to the sold tickets of an event and marks it sold
// out once capacity is reached. Overselling is rejected.
func (s *Store) RecordSale(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("store.events.record_sale: %w", ErrInvalidQuantity)
	}

	return s.mutate(ctx, "record_sale", func(current []models.Event) ([]models.Event, error) {
		next := clone(current)

		for i := range next {
			if next[i].ID != id {
				continue
			}

			if next[i].SoldTickets+quantity > next[i].MaxTickets {
				return nil, ErrInsufficientTickets
			}

			next[i].SoldTickets += quantity
			if next[i].SoldTickets == next[i].MaxTickets {
				next[i].Status = models.StatusSoldOut
			}
			next[i].UpdatedAt = s.now()

			return next, nil
		}

		return nil, ErrEventNotFound
	})
}

// Subscribe registers fn and calls it with the current collection before
// returning. After that fn gets one call per completed mutation, in mutation
// order, until the returned func is called. The returned func is safe to
// call more than once, including from inside fn.
func (s *Store) Subscribe(fn Subscriber) func() {
	sub := newSubscriber(fn)

	s.mu.Lock()
	sub.push(clone(s.events))
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	sub.drain()
	<-sub.replayed

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			for i, other := range s.subs {
				if other == sub {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					break
				}
			}
			s.mu.Unlock()

			sub.close()
		})
	}
}

// TotalSales is the sum of soldTickets * price over all events.
func (s *Store) TotalSales() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, e := range s.events {
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.SoldTickets))))
	}

	return total
}

func (s *Store) TotalTicketsSold() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, e := range s.events {
		total += e.SoldTickets
	}

	return total
}

// Stats computes the dashboard aggregates on demand.
func (s *Store) Stats() models.Stats {
	return ComputeStats(s.GetAll())
}

func ComputeStats(events []models.Event) models.Stats {
	stats := models.Stats{
		TotalEvents: len(events),
		TotalSales:  decimal.Zero,
	}

	for _, e := range events {
		if e.Status == models.StatusActive {
			stats.ActiveEvents++
		}
		stats.TotalSales = stats.TotalSales.Add(e.Price.Mul(decimal.NewFromInt(int64(e.SoldTickets))))
		stats.TotalTicketsSold += e.SoldTickets
		stats.TotalCapacity += e.MaxTickets
	}

	if stats.TotalCapacity > 0 {
		stats.OccupancyRate = float64(stats.TotalTicketsSold) / float64(stats.TotalCapacity) * 100
	}

	return stats
}

func (s *Store) mutate(ctx context.Context, op string, fn func(current []models.Event) ([]models.Event, error)) error {
	s.mu.Lock()

	next, err := fn(s.events)
	if err == nil {
		err = s.persist(ctx, next)
	}
	if err != nil {
		s.mu.Unlock()
		s.observe(op, err)
		return fmt.Errorf("store.events.%s: %w", op, err)
	}

	s.events = next
	subs := make([]*subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.push(clone(next))
	}
	s.mu.Unlock()

	s.observe(op, nil)

	for _, sub := range subs {
		sub.drain()
	}

	return nil
}

func (s *Store) persist(ctx context.Context, events []models.Event) error {
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	if err = s.slot.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("persist events: %w", err)
	}

	return nil
}

func (s *Store) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveMutation(op, err)
	}
}

// subscriber queues snapshots for one Subscriber. Snapshots are pushed with
// Store.mu held, so each queue is in mutation order.
type subscriber struct {
	fn       Subscriber
	replayed chan struct{}
	first    sync.Once

	mu       sync.Mutex
	queue    [][]models.Event
	draining bool
	closed   bool
}

func newSubscriber(fn Subscriber) *subscriber {
	return &subscriber{fn: fn, replayed: make(chan struct{})}
}

func (sub *subscriber) push(snapshot []models.Event) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if !sub.closed {
		sub.queue = append(sub.queue, snapshot)
	}
}

// drain calls fn for every queued snapshot. Only one drain runs per
// subscriber at a time; a drain started while another is running, whether
// on another goroutine or from inside fn, returns at once and the running
// drain delivers its snapshot.
func (sub *subscriber) drain() {
	sub.mu.Lock()
	if sub.draining {
		sub.mu.Unlock()
		return
	}
	sub.draining = true

	for len(sub.queue) > 0 && !sub.closed {
		next := sub.queue[0]
		sub.queue[0] = nil
		sub.queue = sub.queue[1:]
		sub.mu.Unlock()

		sub.fn(next)
		sub.first.Do(func() { close(sub.replayed) })

		sub.mu.Lock()
	}

	sub.draining = false
	sub.mu.Unlock()
}

func (sub *subscriber) close() {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	sub.closed = true
	sub.queue = nil
}

func clone(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	copy(out, events)
	return out
}
