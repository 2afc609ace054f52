package signal

import "github.com/dkeye/parley/internal/core"

func (ctl *Controller) handlePing(c *WsConn) {
	ctl.sendJSON(c, core.NewPong())
}
