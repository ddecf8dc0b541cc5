// Package logging provides the structured diagnostic event pipeline: an
// Event type, a Publisher interface threaded through the engine, and a
// buffered Router fanning events out to named sinks.
package logging

import (
	"context"
	"time"
)

type EventType string

// Event types emitted by the engine.
const (
	EventOperation  EventType = "calcdex.operation"
	EventPreset     EventType = "calcdex.preset"
	EventBridge     EventType = "calcdex.bridge"
	EventSystem     EventType = "calcdex.system"
)

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// EntityKind classifies the actor an event concerns.
type EntityKind string

const (
	EntityKindUnknown EntityKind = "unknown"
	EntityKindBattle  EntityKind = "battle"
	EntityKindPlayer  EntityKind = "player"
	EntityKindPokemon EntityKind = "pokemon"
)

// EntityRef points at the entity an event concerns.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Event is one structured diagnostic record.
type Event struct {
	Type     EventType      `json:"type"`
	Time     time.Time      `json:"time"`
	BattleID string         `json:"battleId,omitempty"`
	Actor    EntityRef      `json:"actor"`
	Severity Severity       `json:"severity"`
	Op       string         `json:"op,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Duration time.Duration  `json:"duration,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Publisher accepts events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a publisher that drops everything.
func NopPublisher() Publisher {
	return nopPublisher{}
}

type fieldPublisher struct {
	next   Publisher
	fields map[string]any
}

func (p *fieldPublisher) Publish(ctx context.Context, event Event) {
	if p.next == nil {
		return
	}
	if len(p.fields) > 0 {
		event = cloneForFields(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(p.fields))
		}
		for k, v := range p.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	p.next.Publish(ctx, event)
}

func cloneForFields(event Event) Event {
	cloned := event
	if event.Extra != nil {
		copied := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			copied[k] = v
		}
		cloned.Extra = copied
	}
	return cloned
}

// WithFields wraps a publisher so every event carries the given extra fields
// unless the event already sets them.
func WithFields(p Publisher, fields map[string]any) Publisher {
	if p == nil {
		return NopPublisher()
	}
	if len(fields) == 0 {
		return p
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &fieldPublisher{next: p, fields: copied}
}
