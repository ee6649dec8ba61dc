package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 64
)

// Client is a single websocket connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	username string
	log      zerolog.Logger

	// send carries broadcasts and is closed by the hub when the client is
	// dropped. replies carries answers to this client's own events.
	send    chan []byte
	replies chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, username string) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		hub:      hub,
		conn:     conn,
		username: username,
		log:      hub.log.With().Str("username", username).Logger(),
		send:     make(chan []byte, sendBufSize),
		replies:  make(chan []byte, sendBufSize),
	}
}

// ReadPump reads client events until the connection fails or ctx ends.
func (c *Client) ReadPump(ctx context.Context) {
	defer c.hub.remove(c)

	for {
		var event Event
		if err := wsjson.Read(ctx, c.conn, &event); err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				c.log.Debug().Err(err).Msg("read failed")
			}
			return
		}
		c.handleEvent(&event)
	}
}

// WritePump drains send to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if !c.write(message) {
				return
			}

		case message := <-c.replies:
			if !c.write(message) {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				c.log.Debug().Err(err).Msg("ping failed")
				return
			}
		}
	}
}

func (c *Client) write(message []byte) bool {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if err := c.conn.Write(ctx, websocket.MessageText, message); err != nil {
		c.log.Debug().Err(err).Msg("write failed")
		return false
	}
	return true
}

func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypePing:
		c.reply(EventTypePong, nil)
	default:
		c.reply(EventTypeError, ErrorPayload{Code: "UNKNOWN_EVENT", Message: "unknown event type: " + event.Type})
	}
}

// reply queues an event for this client only, dropping it if the buffer is
// full.
func (c *Client) reply(eventType string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.replies <- data:
	default:
	}
}
