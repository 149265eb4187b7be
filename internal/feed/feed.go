// Package feed subscribes to the primary engine's result stream over
// WebSocket. Each message is one JSON-encoded envelope of trade, primary
// result and market snapshot.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/observability"
)

// Config configures feed client behavior.
type Config struct {
	// Endpoint is the ws:// or wss:// URL of the primary result stream.
	Endpoint string
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// HandshakeTimeout bounds the WebSocket dial.
	HandshakeTimeout time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// Buffer is the envelope channel capacity; absorbs bursts while a
	// batch is being evaluated.
	Buffer int
}

// DefaultConfig returns default feed configuration.
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint:          endpoint,
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		ReadTimeout:       60 * time.Second,
		Buffer:            100,
	}
}

// Client consumes the primary engine's result stream.
type Client struct {
	config Config
}

// NewClient creates a feed client. No connection is made until Subscribe.
func NewClient(config Config) *Client {
	if config.Buffer <= 0 {
		config.Buffer = 100
	}
	return &Client{config: config}
}

// Subscribe dials the endpoint and returns a channel of envelopes.
// The channel is closed when the context is cancelled. Read errors trigger
// reconnection with exponential backoff; malformed messages are logged and
// skipped, never fatal.
func (c *Client) Subscribe(ctx context.Context) (<-chan *domain.PrimaryEnvelope, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("feed dial %s: %w", c.config.Endpoint, err)
	}

	out := make(chan *domain.PrimaryEnvelope, c.config.Buffer)

	go func() {
		defer close(out)
		c.readLoop(ctx, conn, out)
	}()

	return out, nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.HandshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, c.config.Endpoint, nil)
	return conn, err
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- *domain.PrimaryEnvelope) {
	// The watcher closes whichever connection is current so a cancelled
	// context unblocks ReadMessage even after a reconnect.
	var mu sync.Mutex
	current := conn
	setCurrent := func(next *websocket.Conn) {
		mu.Lock()
		current = next
		mu.Unlock()
	}
	closeCurrent := func() {
		mu.Lock()
		current.Close()
		mu.Unlock()
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		closeCurrent()
	}()

	reconnectDelay := c.config.ReconnectDelay

	for {
		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			log.Printf("[feed] read error, reconnecting in %v: %v", reconnectDelay, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}

			// Exponential backoff until the dial sticks
			reconnectDelay *= 2
			if reconnectDelay > c.config.MaxReconnectDelay {
				reconnectDelay = c.config.MaxReconnectDelay
			}

			observability.RecordFeedReconnect()
			next, dialErr := c.dial(ctx)
			if dialErr != nil {
				log.Printf("[feed] reconnect failed: %v", dialErr)
				continue
			}
			conn.Close()
			conn = next
			setCurrent(next)
			continue
		}

		reconnectDelay = c.config.ReconnectDelay

		var env domain.PrimaryEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("[feed] skipping malformed message: %v", err)
			observability.RecordFeedSkip()
			continue
		}
		if env.Trade == nil || env.Primary == nil || env.Market == nil {
			log.Printf("[feed] skipping incomplete envelope (trade=%v primary=%v market=%v)",
				env.Trade != nil, env.Primary != nil, env.Market != nil)
			observability.RecordFeedSkip()
			continue
		}
		observability.RecordFeedEnvelope()

		select {
		case out <- &env:
		case <-ctx.Done():
			return
		}
	}
}

// Collect drains the subscription until the channel closes or max envelopes
// arrive, whichever comes first. Used by batch-mode consumers that want one
// portfolio snapshot rather than a long-lived stream.
func Collect(ctx context.Context, ch <-chan *domain.PrimaryEnvelope, max int) []*domain.PrimaryEnvelope {
	var batch []*domain.PrimaryEnvelope
	for {
		select {
		case env, ok := <-ch:
			if !ok {
				return batch
			}
			batch = append(batch, env)
			if max > 0 && len(batch) >= max {
				return batch
			}
		case <-ctx.Done():
			return batch
		}
	}
}
