package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/realtime"
)

var errTest = errors.New("invalid token")

func TestHandleChangeFeed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	identity := domain.AdminIdentity{ID: "admin-1", Level: domain.AdminLevelAdmin}

	t.Run("streams published changes", func(t *testing.T) {
		t.Parallel()

		hub := realtime.NewHub(clock.NewFixed(now))
		srv := httptest.NewServer(HandleChangeFeed(hub, stubVerifier{identity: identity}, []string{"*"}))
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?table=events&token=token-1"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		// Dial returns when the handshake completes, which can be before
		// the handler reaches Subscribe. Republish until the read lands.
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(20 * time.Millisecond)
			defer ticker.Stop()
			for {
				hub.Publish("events", "INSERT", "event-1")
				select {
				case <-done:
					return
				case <-ticker.C:
				}
			}
		}()

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var change realtime.Change
		if err := conn.ReadJSON(&change); err != nil {
			t.Fatalf("read change: %v", err)
		}
		if change.Table != "events" || change.Action != "INSERT" || change.ID != "event-1" {
			t.Fatalf("unexpected change: %+v", change)
		}
	})

	t.Run("rejects a bad token before upgrading", func(t *testing.T) {
		t.Parallel()

		hub := realtime.NewHub(clock.NewFixed(now))
		srv := httptest.NewServer(HandleChangeFeed(hub, stubVerifier{err: errTest}, []string{"*"}))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "?table=events&token=bad")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("rejects an unknown table", func(t *testing.T) {
		t.Parallel()

		hub := realtime.NewHub(clock.NewFixed(now))
		srv := httptest.NewServer(HandleChangeFeed(hub, stubVerifier{identity: identity}, []string{"*"}))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "?table=secrets&token=token-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})
}
