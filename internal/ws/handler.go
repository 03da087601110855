package ws

import (
	"net/http"

	"github.com/coder/websocket"
	log "github.com/sirupsen/logrus"
)

// Handler upgrades HTTP connections and runs them as hub clients.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // browser front-end runs on its own origin
		})
		if err != nil {
			log.Errorf("websocket accept failed: %v", err)
			return
		}

		NewClient(hub, conn).Run(r.Context())
	}
}
