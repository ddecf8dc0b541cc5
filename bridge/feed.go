package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"calcdex/logging"
)

const (
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// FrameHandler consumes one inbound snapshot frame. Errors are diagnostic
// only; the feed keeps reading.
type FrameHandler func(ctx context.Context, frame SnapshotFrame) error

// Feed maintains a websocket connection to the simulator snapshot endpoint
// and dispatches decoded frames. Disconnects trigger reconnection with
// exponential backoff.
type Feed struct {
	url       string
	handler   FrameHandler
	publisher logging.Publisher
	dialer    *websocket.Dialer
}

// NewFeed wires a feed for the given endpoint.
func NewFeed(url string, handler FrameHandler, publisher logging.Publisher) *Feed {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Feed{
		url:       url,
		handler:   handler,
		publisher: publisher,
		dialer:    websocket.DefaultDialer,
	}
}

// Run blocks until the context is cancelled, reconnecting on failure.
func (f *Feed) Run(ctx context.Context) error {
	backoff := reconnectMin
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
		if err != nil {
			f.publish(ctx, logging.SeverityWarn, "dial failed", err.Error())
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			backoff = nextBackoff(backoff)
			continue
		}

		f.publish(ctx, logging.SeverityInfo, "feed connected", "")
		backoff = reconnectMin
		err = f.readLoop(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.publish(ctx, logging.SeverityWarn, "feed disconnected", err.Error())
		if !sleepCtx(ctx, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff)
	}
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var frame SnapshotFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			f.publish(ctx, logging.SeverityWarn, "bad frame", err.Error())
			continue
		}
		if f.handler == nil {
			continue
		}
		if err := f.handler(ctx, frame); err != nil {
			f.publish(ctx, logging.SeverityWarn, "frame handler failed", err.Error())
		}
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > reconnectMax {
		return reconnectMax
	}
	return next
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (f *Feed) publish(ctx context.Context, severity logging.Severity, reason, detail string) {
	event := logging.Event{
		Type:     logging.EventBridge,
		Time:     time.Now(),
		Severity: severity,
		Reason:   reason,
	}
	if detail != "" {
		event.Extra = map[string]any{"detail": detail}
	}
	f.publisher.Publish(ctx, event)
}
