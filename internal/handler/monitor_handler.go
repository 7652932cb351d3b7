package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/middleware"
	"github.com/acadex/acadex-backend/internal/service"
	ws "github.com/acadex/acadex-backend/internal/websocket"
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

// MonitorHandler streams live attempt progress of an exam to its author over
// WebSocket. Events originate from the attempt service via Redis PubSub, so
// the stream works across multiple server instances.
type MonitorHandler struct {
	rdb         *redis.Client
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(rdb *redis.Client, examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		rdb:         rdb,
		examService: examService,
		log:         log.With().Str("component", "monitor_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// Stream handles WS /ws/v1/doctor/exams/:id/monitor.
func (h *MonitorHandler) Stream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	examID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	// Only the exam's author may monitor it.
	if _, err := h.examService.Get(c.Request.Context(), examID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("doctor_id", claims.UserID.String()).
		Str("exam_id", examID.String()).
		Logger()
	wsLog.Info().Msg("monitor connected")

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.ExamMonitorChannel(examID))
	defer sub.Close()

	// Drain client frames so pings and closes are processed; the stream is
	// one-way otherwise.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("monitor context done")
			return
		case msg, open := <-ch:
			if !open {
				wsLog.Debug().Msg("monitor disconnected")
				return
			}
			if err := ws.WriteRaw(conn, []byte(msg.Payload)); err != nil {
				wsLog.Warn().Err(err).Msg("monitor write failed")
				return
			}
		}
	}
}
