package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange — topic-exchange для событий фрейма.
const DefaultExchange = "frame.events"

// amqpMessage — тело публикуемого сообщения.
type amqpMessage struct {
	ID         string         `json:"id"`
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

// AMQP — Tracker, публикующий события в topic-exchange (routing key frame.<event>).
// Пустой URL — публикация выключена, Capture ничего не делает.
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	enabled  bool
	log      *slog.Logger
}

func NewAMQP(url, exchange string, lg *slog.Logger) (*AMQP, error) {
	const op = "analytics.NewAMQP"

	if lg == nil {
		lg = slog.Default()
	}

	if exchange == "" {
		exchange = DefaultExchange
	}

	if url == "" {
		lg.Warn("analytics_amqp_disabled", slog.String("reason", "empty url"))
		return &AMQP{exchange: exchange, log: lg}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: channel: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: exchange declare: %w", op, err)
	}

	lg.Info("analytics_amqp_ready", slog.String("exchange", exchange))

	return &AMQP{conn: conn, ch: ch, exchange: exchange, enabled: true, log: lg}, nil
}

// RoutingKey — ключ маршрутизации для события.
func RoutingKey(event string) string { return "frame." + event }

func (a *AMQP) Capture(ctx context.Context, e Event) error {
	const op = "analytics.AMQP.Capture"

	if err := validate(&e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !a.enabled {
		return nil
	}

	body, err := json.Marshal(amqpMessage{
		ID:         uuid.NewString(),
		Event:      e.Name,
		DistinctID: e.DistinctID,
		Properties: e.Properties,
		Timestamp:  e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	// amqp.Channel не рассчитан на конкурентные публикации.
	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.ch.PublishWithContext(ctx,
		a.exchange,         // exchange
		RoutingKey(e.Name), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.Timestamp,
			Body:         body,
			Headers: amqp.Table{
				"event_type":  e.Name,
				"distinct_id": e.DistinctID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: publish: %w", op, err)
	}

	return nil
}

func (a *AMQP) Close() error {
	if !a.enabled {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ch.Close(); err != nil {
		a.log.Warn("analytics_amqp_channel_close_failed", slog.String("err", err.Error()))
	}

	if err := a.conn.Close(); err != nil {
		return fmt.Errorf("analytics.AMQP.Close: %w", err)
	}

	return nil
}
