package panel

import (
	"encoding/json"
	"net/http"
	"sync"

	"pet-playground/internal/platform/logger"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsConn) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// WSHandler expone el canal de comandos por websocket: entra {command, ...},
// sale {command, text} por cada mensaje de respuesta.
func WSHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", map[string]any{"error": err.Error()})
			return
		}
		client := &wsConn{conn: conn}
		defer func() { _ = conn.Close() }()

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var cmd Command
			if err := json.Unmarshal(payload, &cmd); err != nil {
				_ = client.writeJSON(errorMsg("invalid json"))
				continue
			}

			for _, m := range svc.Handle(r.Context(), cmd) {
				if err := client.writeJSON(m); err != nil {
					log.Warn("ws write failed", map[string]any{"error": err.Error()})
					return
				}
			}
		}
	}
}
