// Package kafka publishes event store snapshots to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventTicketing/internal/config"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/models"

	"github.com/segmentio/kafka-go"
)

const (
	MessageKey = "events"

	defaultBuffer = 16
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewWriter(cfg *config.Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
}

type Option func(*Publisher)

func WithBuffer(size int) Option {
	return func(p *Publisher) { p.queue = make(chan kafka.Message, size) }
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// Publisher queues snapshots from a store subscription and writes them from
// a single goroutine started with Run. A full queue drops the snapshot.
type Publisher struct {
	log    *slog.Logger
	writer Writer
	now    func() time.Time

	mu     sync.Mutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

func New(log *slog.Logger, w Writer, opts ...Option) *Publisher {
	p := &Publisher{
		log:    log.With(slog.String("component", "broker/kafka")),
		writer: w,
		now:    time.Now,
		queue:  make(chan kafka.Message, defaultBuffer),
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Publish never blocks, so it is safe to pass to events.Store.Subscribe.
func (p *Publisher) Publish(events []models.Event) {
	const op = "broker.kafka.Publish"

	value, err := json.Marshal(events)
	if err != nil {
		p.log.Error("failed to marshal snapshot", slog.String("op", op), sl.Err(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(MessageKey),
		Value: value,
		Time:  p.now(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	select {
	case p.queue <- msg:
	default:
		p.log.Warn("snapshot queue full, dropping snapshot",
			slog.String("op", op),
			slog.Int("events", len(events)),
		)
	}
}

// Run writes queued snapshots until ctx is done or Close drains the queue.
func (p *Publisher) Run(ctx context.Context) {
	const op = "broker.kafka.Run"

	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-p.queue:
			if !ok {
				return
			}

			if err := p.writer.WriteMessages(ctx, msg); err != nil {
				p.log.Error("failed to write snapshot", slog.String("op", op), sl.Err(err))
				continue
			}

			p.log.Debug("snapshot published", slog.Int("bytes", len(msg.Value)))
		}
	}
}

// Close stops accepting snapshots, waits for Run to drain the queue or for
// ctx to expire, then closes the writer. Run must have been started.
func (p *Publisher) Close(ctx context.Context) error {
	const op = "broker.kafka.Close"

	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
	case <-ctx.Done():
		p.log.Warn("snapshot queue not drained", slog.String("op", op), sl.Err(ctx.Err()))
	}

	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
