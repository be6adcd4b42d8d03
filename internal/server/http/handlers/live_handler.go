package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/polkiloo/eatery/internal/server/http/dto"
	"github.com/polkiloo/eatery/internal/worker"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

const snapshotMessageType = "snapshot"

// LiveHandler streams admin order snapshots over a websocket.
type LiveHandler struct {
	feed     LiveFeed
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewLiveHandler creates LiveHandler. Only same-origin browsers may connect,
// since the session rides on a cookie.
func NewLiveHandler(feed LiveFeed, logger *slog.Logger) *LiveHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: logger,
	}
}

// Orders handles GET /api/admin/live?search=&status=&date=.
func (h *LiveHandler) Orders(c *gin.Context) {
	sub, err := h.feed.Subscribe(filterFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the response.
		h.feed.Unsubscribe(sub)
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, sub, done)
	h.feed.Unsubscribe(sub)
}

// readPump discards client frames and closes done when the peer goes away.
func (h *LiveHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("live feed closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (h *LiveHandler) writePump(conn *websocket.Conn, sub *worker.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case snapshot, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteJSON(toSnapshotMessage(snapshot)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func toSnapshotMessage(snapshot worker.Snapshot) dto.SnapshotMessage {
	return dto.SnapshotMessage{
		Type:   snapshotMessageType,
		Orders: toOrderResponses(snapshot.Orders),
		Counts: toCountsResponse(snapshot.Counts),
		At:     snapshot.At,
	}
}
