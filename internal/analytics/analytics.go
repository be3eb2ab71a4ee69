// analytics — доставка событий взаимодействия с фреймом во внешние системы
// (PostHog или AMQP-exchange). Ошибки доставки не должны влиять на ответ,
// поэтому вызывающий код только логирует их.
package analytics

import (
	"context"
	"errors"
	"time"
)

// Имена событий.
const (
	EventSearch   = "search"
	EventViewMine = "view_mine"
	EventView     = "view"
	EventIdentify = "identify"
)

// ErrNoDistinctID — событие без идентификатора зрителя не отправляется.
var ErrNoDistinctID = errors.New("analytics: empty distinct id")

// Event — одно событие. DistinctID — fid зрителя строкой.
type Event struct {
	Name       string
	DistinctID string
	Properties map[string]any
	Timestamp  time.Time
}

// Tracker — приёмник событий. Реализации безопасны для конкурентного использования.
type Tracker interface {
	Capture(ctx context.Context, e Event) error
	Close() error
}

// Noop — выключенная аналитика.
type Noop struct{}

func (Noop) Capture(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

func validate(e *Event) error {
	if e.Name == "" {
		return errors.New("analytics: empty event name")
	}

	if e.DistinctID == "" {
		return ErrNoDistinctID
	}

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	return nil
}
