package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core"
	"github.com/gbswdev/snackbar/core/bus"
)

var chatEventName = bus.ChatMessage{}.EventName()

type (
	// Envelope is the socket wire format, both directions.
	Envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}

	outEnvelope struct {
		Event string      `json:"event"`
		Data  interface{} `json:"data"`
	}

	socketAPI struct {
		broker   *bus.Broker
		logger   core.Logger
		upgrader websocket.Upgrader
	}
)

// registerSocketAPI mounts the live-update channel. Every connection gets the
// full broadcast stream; clients filter by role/ownership on their side.
func registerSocketAPI(e *echo.Echo, broker *bus.Broker, logger core.Logger) {
	api := &socketAPI{
		broker: broker,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	e.GET("/ws", api.handle)
}

func (api *socketAPI) handle(ctx echo.Context) error {
	conn, err := api.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "upgrading connection")
	}

	id := uuid.New().String()
	sub := api.broker.Subscribe()
	api.logger.Debug("socket connected", map[string]interface{}{"socket": id})

	go api.writePump(conn, sub)
	api.readPump(conn, sub)

	api.logger.Debug("socket disconnected", map[string]interface{}{"socket": id})
	return nil
}

// writePump forwards bus events to the connection until the subscription is
// closed or a write fails. It is the connection's only writer.
func (api *socketAPI) writePump(conn *websocket.Conn, sub *bus.Subscription) {
	for evt := range sub.C {
		if err := conn.WriteJSON(outEnvelope{Event: evt.EventName(), Data: evt.EventData()}); err != nil {
			break
		}
	}
	_ = conn.Close()
}

// readPump relays client chat messages back onto the bus and tears the
// connection down on the first read error.
func (api *socketAPI) readPump(conn *websocket.Conn, sub *bus.Subscription) {
	defer func() {
		sub.Close()
		_ = conn.Close()
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		if env.Event != chatEventName {
			continue
		}
		var msg bus.ChatMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			continue
		}
		api.broker.Publish(msg)
	}
}
