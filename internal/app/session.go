package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/core"
	"github.com/dkeye/parley/internal/domain"
	"github.com/dkeye/parley/pkg/metrics"
)

type SessionState int

const (
	StateUnjoined SessionState = iota
	StateActive
	StateClosed
)

// Session is the per-connection state machine:
//
//	Unjoined --Join--> Active --Leave/Disconnect--> Closed
//
// Every inbound event has exactly one dispatch point per state; the adapter
// holds one Session per connection and discards it once Closed. Disconnect
// may arrive as the very next event after any transition, so every path
// must tolerate it without assuming intervening state.
type Session struct {
	sid domain.ConnID
	reg *Registry
	out *Fanout

	mu    sync.Mutex
	state SessionState
}

func (s *Session) ID() domain.ConnID { return s.sid }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Join registers the connection in a room. On success the joiner gets a
// welcome, the rest of the room a userJoined, and everyone a fresh roster.
// On failure the session stays Unjoined and the connection may retry.
func (s *Session) Join(rawName, rawRoom string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return ErrSessionClosed
	case StateActive:
		return ErrAlreadyJoined
	}

	rec, err := s.reg.Add(s.sid, rawName, rawRoom)
	if err != nil {
		return err
	}
	s.state = StateActive
	metrics.JoinsTotal.Inc()

	// All deliveries happen after the registry mutation returned, outside
	// its lock, in mutation order.
	welcome := fmt.Sprintf("Welcome to %s, %s!", rec.Room, rec.Name)
	_ = s.out.SendTo(s.sid, core.NewWelcome(welcome))
	s.out.Broadcast(rec.Room, core.NewUserJoined(rec.Name), s.sid)
	s.out.Broadcast(rec.Room, core.NewRoomRoster(s.reg.RoomNames(string(rec.Room))), "")

	log.Info().Str("module", "app.session").Str("sid", string(s.sid)).
		Str("name", rec.Name).Str("room", string(rec.Room)).Msg("joined")
	return nil
}

// SendMessage fans one chat line out to the sender's room, sender
// included. Empty bodies pass through untouched; suppressing them is the
// client's call.
func (s *Session) SendMessage(body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return ErrSessionClosed
	case StateUnjoined:
		return ErrNotJoined
	}

	// Should not be reachable while Active, but a missing record must fail
	// an ack, not crash.
	rec, ok := s.reg.Get(s.sid)
	if !ok {
		return ErrNotJoined
	}

	env := domain.Envelope{Sender: rec.Name, Body: body}
	metrics.MessagesTotal.Inc()
	s.out.Broadcast(rec.Room, core.NewChatMessage(env.Sender, env.Body), "")
	return nil
}

// Leave exits the room on request, without waiting for the transport to
// drop. The session is terminal afterwards.
func (s *Session) Leave() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return ErrSessionClosed
	case StateUnjoined:
		return ErrNotJoined
	}
	s.closeLocked()
	return nil
}

// Disconnect is the transport telling us the connection is gone. Safe to
// call any number of times, from any state; a session that never joined
// leaves no trace.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.closeLocked()
}

func (s *Session) closeLocked() {
	prev := s.state
	s.state = StateClosed
	if prev != StateActive {
		return
	}
	rec, ok := s.reg.Remove(s.sid)
	if !ok {
		return
	}
	s.out.Broadcast(rec.Room, core.NewUserLeft(rec.Name), "")
	s.out.Broadcast(rec.Room, core.NewRoomRoster(s.reg.RoomNames(string(rec.Room))), "")
	log.Info().Str("module", "app.session").Str("sid", string(s.sid)).
		Str("room", string(rec.Room)).Msg("left")
}
