// The read pump feeds inbound frames into the lifecycle manager and the
// write pump drains the session's send queue back onto the wire.
// Separating read/write avoids head-of-line blocking when a client is slow.

package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"relay-chat/contract"
	"relay-chat/domain"
	errs "relay-chat/errors"
)

// Client is one live websocket connection. It implements
// contract.EventSink: events are encoded into envelopes and queued on a
// bounded channel the write pump drains in order.
type Client struct {
	id        string
	conn      *websocket.Conn
	log       *slog.Logger
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(id string, conn *websocket.Conn, bufferSize int, log *slog.Logger) *Client {
	return &Client{
		id:   id,
		conn: conn,
		log:  log,
		send: make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

// Consume queues one event for delivery. It never blocks: a full queue
// drops the event so one slow client cannot stall a broadcast.
func (c *Client) Consume(e domain.Event) error {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", e.Name, err)
	}
	frame, err := json.Marshal(domain.Envelope{Event: e.Name, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", e.Name, err)
	}

	select {
	case <-c.done:
		return fmt.Errorf("%w: %s", errs.ErrSessionClosed, c.id)
	default:
	}
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return fmt.Errorf("%w: %s", errs.ErrSessionClosed, c.id)
	default:
		return fmt.Errorf("%w: %s", errs.ErrSendQueueFull, c.id)
	}
}

func (c *Client) readPump(lifecycle contract.ILifecycle, readLimit int64) {
	defer func() {
		lifecycle.Disconnect(c.id)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read failed", "session", c.id, "error", err)
			}
			break
		}
		lifecycle.Inbound(c.id, raw)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case frame := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-c.done:
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// close signals both pumps without closing the send channel, so a
// delivery racing a disconnect can never panic on a closed channel.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
