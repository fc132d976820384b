package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/service"
)

const (
	keepAliveInterval = 15 * time.Second
	writeWait         = 10 * time.Second
	pongWait          = 2 * keepAliveInterval
)

// feedMessage is one frame of the live status feed.
type feedMessage struct {
	Type     string                 `json:"type"`
	Snapshot *domain.StatusSnapshot `json:"snapshot,omitempty"`
	Event    *domain.Event          `json:"event,omitempty"`
}

// StatusFeed streams a source's status snapshot followed by its derivative
// events. WebSocket upgrades are served over websocket, everything else
// as server-sent events.
type StatusFeed struct {
	bus       *service.EventBus
	svc       DerivativeService
	upgrader  websocket.Upgrader
	keepAlive time.Duration
	log       zerolog.Logger
}

func NewStatusFeed(bus *service.EventBus, svc DerivativeService, log zerolog.Logger) *StatusFeed {
	return &StatusFeed{
		bus: bus,
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		keepAlive: keepAliveInterval,
		log:       logger.Component(log, "status-feed"),
	}
}

func (f *StatusFeed) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sourceID := chi.URLParam(r, "sourceId")

		// Subscribe before reading the snapshot so no transition is lost
		// between the two.
		ch := f.bus.Subscribe(sourceID)
		defer f.bus.Unsubscribe(sourceID, ch)

		snap, err := f.svc.GetStatus(r.Context(), sourceID)
		if err != nil {
			writeServiceError(w, f.log, err)
			return
		}

		if websocket.IsWebSocketUpgrade(r) {
			f.serveWebSocket(w, r, sourceID, snap, ch)
			return
		}
		f.serveSSE(w, r, sourceID, snap, ch)
	}
}

func (f *StatusFeed) serveSSE(w http.ResponseWriter, r *http.Request, sourceID string, snap *domain.StatusSnapshot, ch <-chan domain.Event) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	send := func(m feedMessage) error { return sseWrite(w, m) }
	ping := func() error { return sendKeepAlive(w) }
	f.follow(r.Context(), sourceID, snap, ch, send, ping)
}

func (f *StatusFeed) serveWebSocket(w http.ResponseWriter, r *http.Request, sourceID string, snap *domain.StatusSnapshot, ch <-chan domain.Event) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		f.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends anything we act on; reading only surfaces
	// pongs and the close frame.
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(m feedMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(m)
	}
	ping := func() error {
		return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
	}
	f.follow(ctx, sourceID, snap, ch, send, ping)

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// follow sends the snapshot, then every event with a refreshed snapshot,
// until the client goes away or a write fails.
func (f *StatusFeed) follow(ctx context.Context, sourceID string, snap *domain.StatusSnapshot, ch <-chan domain.Event, send func(feedMessage) error, ping func() error) {
	if err := send(feedMessage{Type: "snapshot", Snapshot: snap}); err != nil {
		return
	}

	keepAlive := time.NewTicker(f.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			if err := ping(); err != nil {
				return
			}
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := send(feedMessage{Type: "event", Event: &event}); err != nil {
				return
			}
			fresh, err := f.svc.GetStatus(ctx, sourceID)
			if err != nil {
				f.log.Warn().Err(err).Str("source_id", logger.SanitizeForLog(sourceID)).Msg("refresh status failed")
				continue
			}
			if err := send(feedMessage{Type: "snapshot", Snapshot: fresh}); err != nil {
				return
			}
		}
	}
}

// sseWrite writes one server-sent event named after the frame type.
func sseWrite(w http.ResponseWriter, m feedMessage) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.Type, data); err != nil {
		return err
	}
	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
	return nil
}

// sendKeepAlive writes an SSE comment to keep proxies from closing the
// connection.
func sendKeepAlive(w http.ResponseWriter) error {
	if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
		return err
	}
	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
	return nil
}
