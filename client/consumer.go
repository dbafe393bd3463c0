package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core/bus"
	"github.com/gbswdev/snackbar/core/cheer"
	"github.com/gbswdev/snackbar/core/order"
)

// Handlers receives decoded events from the socket channel. Nil handlers are
// skipped; unknown event names are ignored.
type Handlers struct {
	OnNewOrder     func(order.Order)
	OnOrderUpdated func(order.Order)
	OnNewCheer     func(cheer.Cheer)
	OnChatMessage  func(bus.ChatMessage)
}

// Consumer holds one live-update subscription. Run drives the read loop;
// SendChat may be called from any goroutine.
type Consumer struct {
	conn     *websocket.Conn
	handlers Handlers

	mu sync.Mutex // serializes writes
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Dial connects to the server's /ws endpoint (ws:// or wss:// URL).
func Dial(ctx context.Context, url string, h Handlers) (*Consumer, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "dialing socket")
	}
	return &Consumer{conn: conn, handlers: h}, nil
}

// Run reads events until the connection drops or Close is called. It returns
// nil on a normal closure.
func (c *Consumer) Run() error {
	for {
		var env envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		c.dispatch(env)
	}
}

func (c *Consumer) dispatch(env envelope) {
	switch env.Event {
	case "newOrder":
		if c.handlers.OnNewOrder == nil {
			return
		}
		var ord order.Order
		if err := json.Unmarshal(env.Data, &ord); err == nil {
			c.handlers.OnNewOrder(ord)
		}
	case "orderUpdated":
		if c.handlers.OnOrderUpdated == nil {
			return
		}
		var ord order.Order
		if err := json.Unmarshal(env.Data, &ord); err == nil {
			c.handlers.OnOrderUpdated(ord)
		}
	case "newCheer":
		if c.handlers.OnNewCheer == nil {
			return
		}
		var ch cheer.Cheer
		if err := json.Unmarshal(env.Data, &ch); err == nil {
			c.handlers.OnNewCheer(ch)
		}
	case "chatMessage":
		if c.handlers.OnChatMessage == nil {
			return
		}
		var msg bus.ChatMessage
		if err := json.Unmarshal(env.Data, &msg); err == nil {
			c.handlers.OnChatMessage(msg)
		}
	}
}

// SendChat emits a chat message; the server rebroadcasts it to every
// connected client, this one included.
func (c *Consumer) SendChat(msg bus.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshalling chat message")
	}
	return c.conn.WriteJSON(envelope{Event: msg.EventName(), Data: data})
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	return c.conn.Close()
}
