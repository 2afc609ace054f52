package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/app"
)

func (ctl *Controller) handleSendMessage(sess *app.Session, c *WsConn, req request) {
	// Empty bodies are relayed as-is; filtering them is a client concern.
	err := sess.SendMessage(req.Body)
	if err != nil {
		log.Info().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Msg("send rejected")
	}
	ctl.ack(c, req.ID, err)
}
