// Package live maintains a websocket subscription to the platform's live
// stream status feed. Incoming events are republished to console subscribers
// and stale the live cache family so the next read reflects the update.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Feed subscribes to the live status websocket and fans events out.
type Feed struct {
	url    string
	cache  *query.Cache
	logger *log.Logger
	dialer *websocket.Dialer

	mu   sync.Mutex
	subs map[chan models.LiveEvent]struct{}
}

// NewFeed builds a feed for the given websocket URL.
func NewFeed(url string, cache *query.Cache, logger *log.Logger) *Feed {
	return &Feed{
		url:    url,
		cache:  cache,
		logger: logger,
		dialer: websocket.DefaultDialer,
		subs:   make(map[chan models.LiveEvent]struct{}),
	}
}

// Subscribe returns a buffered event channel and a cancel function. Events
// are dropped for subscribers that fall behind rather than blocking the feed.
func (f *Feed) Subscribe() (<-chan models.LiveEvent, func()) {
	ch := make(chan models.LiveEvent, 16)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, ch)
		f.mu.Unlock()
	}

	return ch, cancel
}

// Run connects and consumes events until ctx is cancelled. Connection drops
// trigger reconnects with exponential backoff capped at thirty seconds; a
// successful read resets the backoff.
func (f *Feed) Run(ctx context.Context) error {
	backoff := initialBackoff

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
		if err != nil {
			f.logger.Warn("live feed dial failed", "url", f.url, "backoff", backoff, "error", err)

			if !sleep(ctx, backoff) {
				return ctx.Err()
			}

			backoff = nextBackoff(backoff)
			continue
		}

		f.logger.Info("live feed connected", "url", f.url)
		backoff = initialBackoff

		err = f.consume(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		f.logger.Warn("live feed disconnected", "error", err)

		if !sleep(ctx, backoff) {
			return ctx.Err()
		}

		backoff = nextBackoff(backoff)
	}
}

// consume reads events until the connection breaks or ctx is cancelled.
func (f *Feed) consume(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.SetReadDeadline(time.Now())
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return ctx.Err()
			}

			return err
		}

		var event models.LiveEvent
		if err := json.Unmarshal(data, &event); err != nil {
			f.logger.Warn("discarding malformed live event", "error", err)
			continue
		}

		f.publish(ctx, event)
	}
}

func (f *Feed) publish(ctx context.Context, event models.LiveEvent) {
	if err := f.cache.Invalidate(ctx, query.ResourceLive); err != nil {
		f.logger.Warn("failed to invalidate live cache", "error", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subs {
		select {
		case ch <- event:
		default:
			f.logger.Debug("dropping live event for slow subscriber", "stream", event.StreamID)
		}
	}
}

// sleep waits for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}

	return next
}
