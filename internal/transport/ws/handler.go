package ws

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vedran77/chirp/internal/service"
	"nhooyr.io/websocket"
)

// ServeWS upgrades GET /ws?token= to a live feed connection. Browsers cannot
// set headers on websocket requests, so the token travels in the query.
func ServeWS(hub *Hub, users service.TokenResolver, allowedOrigins []string) http.HandlerFunc {
	opts := &websocket.AcceptOptions{}
	for _, o := range allowedOrigins {
		if o == "*" {
			opts.InsecureSkipVerify = true
			break
		}
	}
	if !opts.InsecureSkipVerify {
		opts.OriginPatterns = allowedOrigins
	}

	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		user, err := users.ResolveToken(r.Context(), token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("websocket accept failed")
			return
		}

		client := NewClient(hub, conn, user.Username)
		if !hub.add(client) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}

		go client.WritePump()
		client.ReadPump(r.Context())
	}
}
