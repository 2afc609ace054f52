// Package signal is the websocket transport adapter: it upgrades
// connections, mints their identities, runs the read/write pumps and
// bridges inbound requests into the per-connection session state machine.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/app"
	"github.com/dkeye/parley/internal/config"
	"github.com/dkeye/parley/internal/core"
	"github.com/dkeye/parley/internal/domain"
	"github.com/dkeye/parley/pkg/metrics"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	Relay *app.Relay
	Cfg   *config.Config
}

func NewController(relay *app.Relay, cfg *config.Config) *Controller {
	return &Controller{Relay: relay, Cfg: cfg}
}

// WsConn wraps one websocket with a bounded send queue. TrySend never
// blocks: a full queue is reported as backpressure and the caller decides
// what to do with the member.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and starts the connection lifecycle.
// The session id lives exactly as long as this physical connection.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Cfg.SendBuffer),
	}

	ctl.Relay.Conns.Bind(sid, conn)
	sess := ctl.Relay.NewSession(sid)
	metrics.ActiveConnections.Inc()

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sess, conn)
}
