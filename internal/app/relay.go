package app

import "github.com/dkeye/parley/internal/domain"

// Relay bundles the shared pieces of the core — registry, connection table
// and fan-out — and mints one Session per incoming connection.
type Relay struct {
	Registry *Registry
	Conns    *SessionTable
	Fanout   *Fanout
}

func NewRelay(policy Policy) *Relay {
	reg := NewRegistry()
	conns := NewSessionTable()
	return &Relay{
		Registry: reg,
		Conns:    conns,
		Fanout:   NewFanout(reg, conns, policy),
	}
}

func (r *Relay) NewSession(sid domain.ConnID) *Session {
	return &Session{sid: sid, reg: r.Registry, out: r.Fanout}
}
