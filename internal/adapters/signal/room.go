package signal

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/app"
	"github.com/dkeye/parley/internal/core"
)

var errUnknownRequest = errors.New("unknown request type")

// ack answers one request that carried an id, exactly once. Requests
// without an id get no ack.
func (ctl *Controller) ack(c *WsConn, id *int64, err error) {
	if id == nil {
		return
	}
	ctl.sendJSON(c, core.NewAck(*id, err))
}

func (ctl *Controller) handleJoin(sess *app.Session, c *WsConn, req request) {
	err := sess.Join(req.DisplayName, req.RoomID)
	if err != nil {
		log.Info().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Msg("join rejected")
	}
	// Welcome, userJoined and roster were already emitted by the session on
	// success; the ack closes out the request either way.
	ctl.ack(c, req.ID, err)
}

func (ctl *Controller) handleLeave(sess *app.Session, c *WsConn, req request) {
	// The session is terminal after a leave but the transport stays open
	// until the client drops it; later requests are refused via their acks.
	err := sess.Leave()
	ctl.ack(c, req.ID, err)
}
