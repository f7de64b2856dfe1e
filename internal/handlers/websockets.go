package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"incomfort/internal/logger"
	"incomfort/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12 // 4 KB
	defaultInterval = 5 * time.Second
	maxInterval     = 10 * time.Minute
)

// wsEnvelope is every frame the stream writes.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stateStream pushes one heater's state over a single connection.
type stateStream struct {
	conn       *websocket.Conn
	monitoring service.Monitoring
	log        *logger.Logger
	heater     int
	interval   time.Duration
}

// @Summary      Heater state stream
// @Description  Pushes {"type":"state","data":...} every interval (default 5s, at most 10m)
// @Tags         heaters
// @Param        heater       query  int     false  "Heater index (default 0)"
// @Param        interval     query  string  false  "Push interval, e.g. 5s"
// @Param        interval_ms  query  int     false  "Push interval in milliseconds"
// @Failure      401  {object}  map[string]string
// @Router       /ws [get]
// @Security     BearerAuth
func (h *Handler) wsConnect(c *gin.Context) {
	heater, err := strconv.Atoi(c.DefaultQuery("heater", "0"))
	if err != nil || heater < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidHeater})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	log := h.log
	if log == nil {
		log = logger.Nop()
	}
	s := &stateStream{
		conn:       conn,
		monitoring: h.services.Monitoring,
		log:        log.ForHeater(heater),
		heater:     heater,
		interval:   streamInterval(c),
	}
	s.run(c.Request.Context())
}

// streamInterval reads ?interval=2s, then ?interval_ms=2000. Out of range
// or malformed values fall back to the default.
func streamInterval(c *gin.Context) time.Duration {
	if v := c.Query("interval"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if v := c.Query("interval_ms"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			if d := time.Duration(ms) * time.Millisecond; d <= maxInterval {
				return d
			}
		}
	}
	return defaultInterval
}

func (s *stateStream) run(ctx context.Context) {
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	closed := make(chan struct{})
	go s.drain(closed)

	push := time.NewTicker(s.interval)
	defer push.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := s.push(ctx); err != nil {
		s.log.Infow("ws_first_push_failed", "err", err)
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-push.C:
			if err := s.push(ctx); err != nil {
				s.log.Infow("ws_push_failed", "err", err)
				return
			}
		}
	}
}

// drain reads until the peer goes away so control frames get processed.
func (s *stateStream) drain(closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// push writes the last known state. An unknown heater gets an error
// envelope and ends the stream.
func (s *stateStream) push(ctx context.Context) error {
	st, err := s.monitoring.GetState(ctx, s.heater)
	if err != nil {
		if errors.Is(err, service.ErrUnknownHeater) {
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error()})
		}
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: "state", Data: st})
}
