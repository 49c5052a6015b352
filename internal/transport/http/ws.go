package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/realtime"
)

var watchableTables = map[string]bool{
	"events":                 true,
	"igniters_registrations": true,
	"event_attendance":       true,
	"team_members":           true,
}

// ChangeFeed is the subscription side of the realtime hub.
type ChangeFeed interface {
	Subscribe(table string) (<-chan realtime.Change, func())
}

// HandleChangeFeed upgrades to a websocket and streams one table's
// changes. Browsers cannot set an Authorization header on a websocket
// handshake, so the bearer token rides in the token query parameter.
func HandleChangeFeed(feed ChangeFeed, tokens TokenVerifier, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: originChecker(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := tokens.Verify(r.URL.Query().Get("token")); err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
			return
		}

		table := r.URL.Query().Get("table")
		if !watchableTables[table] {
			writeError(w, http.StatusBadRequest, codeInvalidID, "unknown table")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the handshake failure.
			return
		}

		changes, cancel := feed.Subscribe(table)
		defer cancel()

		// Reads are discarded; a read error is how we learn the client
		// went away.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		defer conn.Close()
		for {
			select {
			case change, ok := <-changes:
				if !ok {
					return
				}
				if err := conn.WriteJSON(change); err != nil {
					return
				}
			case <-closed:
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}

func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if allowAll {
			return true
		}
		if !allowed[origin] {
			slog.Warn("origin rejected", "origin", origin)
			return false
		}
		return true
	}
}
