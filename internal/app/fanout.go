package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/core"
	"github.com/dkeye/parley/internal/domain"
	"github.com/dkeye/parley/pkg/metrics"
)

// Fanout delivers events to every live member of a room. It resolves the
// member snapshot from the registry first and only then touches transport,
// so no send ever happens under the registry lock and a stalled connection
// cannot stall joins or leaves elsewhere.
type Fanout struct {
	Registry *Registry
	Conns    *SessionTable
	Policy   Policy
}

func NewFanout(reg *Registry, conns *SessionTable, policy Policy) *Fanout {
	return &Fanout{Registry: reg, Conns: conns, Policy: policy}
}

// Broadcast encodes ev once and TrySends it to every member of room,
// skipping exclude when non-empty. Deliveries are issued synchronously in
// snapshot order, which preserves the relative order of causally related
// broadcasts for all recipients.
func (f *Fanout) Broadcast(room domain.RoomID, ev any, exclude domain.ConnID) core.PublishResult {
	res := core.PublishResult{}
	frame, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.fanout").Msg("encode event")
		return res
	}

	for _, member := range f.Registry.RoomMembers(string(room)) {
		if member.Conn == exclude {
			continue
		}
		conn, ok := f.Conns.Get(member.Conn)
		if !ok {
			res.Dropped = append(res.Dropped, member.Conn)
			continue
		}
		if err := conn.TrySend(core.Frame(frame)); err != nil {
			res.Dropped = append(res.Dropped, member.Conn)
			f.onBackpressure(room, member.Conn, conn)
			continue
		}
		res.SentTo++
	}

	if len(res.Dropped) > 0 {
		metrics.DroppedFramesTotal.Add(float64(len(res.Dropped)))
		log.Debug().Str("module", "app.fanout").Str("room", string(room)).
			Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	}
	return res
}

// SendTo delivers ev to a single connection (welcome and other
// one-recipient events).
func (f *Fanout) SendTo(sid domain.ConnID, ev any) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.fanout").Msg("encode event")
		return err
	}
	conn, ok := f.Conns.Get(sid)
	if !ok {
		return nil
	}
	if err := conn.TrySend(core.Frame(frame)); err != nil {
		metrics.DroppedFramesTotal.Inc()
		f.onBackpressure("", sid, conn)
		return err
	}
	return nil
}

func (f *Fanout) onBackpressure(room domain.RoomID, sid domain.ConnID, conn core.SignalConnection) {
	if f.Policy == nil {
		return
	}
	if f.Policy.OnBackpressure(room, sid) == KickMember {
		log.Warn().Str("module", "app.fanout").Str("sid", string(sid)).Msg("kicking slow member")
		conn.Close()
	}
}
