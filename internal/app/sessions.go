package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/core"
	"github.com/dkeye/parley/internal/domain"
)

// SessionTable maps connection identities to their live transport
// endpoints. The signal adapter binds on upgrade and unbinds when the read
// pump exits; fan-out resolves connections through it, so a member whose
// transport is already gone is simply skipped.
type SessionTable struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]core.SignalConnection
}

func NewSessionTable() *SessionTable {
	return &SessionTable{conns: make(map[domain.ConnID]core.SignalConnection)}
}

func (t *SessionTable) Bind(sid domain.ConnID, conn core.SignalConnection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conns[sid] = conn
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("bound connection")
}

func (t *SessionTable) Unbind(sid domain.ConnID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.conns, sid)
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("unbound connection")
}

func (t *SessionTable) Get(sid domain.ConnID) (core.SignalConnection, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	conn, ok := t.conns[sid]
	return conn, ok
}
