package handler

import (
	"net/http"
	"strings"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// LiveHandler streams recorded attendance batches to admin dashboards
// over WebSocket, fed by the Redis Pub/Sub events channel.
type LiveHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "live_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AttendanceStream godoc
// WS /ws/admin/attendance
// Upgrades to WebSocket and forwards every attendance batch recorded
// while the connection is open.
func (h *LiveHandler) AttendanceStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	streamLog := h.log.With().Int("admin_id", claims.UserID).Logger()
	streamLog.Info().Msg("Admin connected to live feed")

	sub := h.rdb.Subscribe(c.Request.Context(), config.RedisKey.AttendanceEventsChannel())
	defer sub.Close()

	// Drain the client side so close frames and pings are handled;
	// the feed is one-way, inbound payloads are discarded.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events := sub.Channel()
	for {
		select {
		case <-done:
			streamLog.Debug().Msg("Connection closed")
			return
		case msg, ok := <-events:
			if !ok {
				streamLog.Warn().Msg("Events subscription closed")
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					streamLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
		}
	}
}
