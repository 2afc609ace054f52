package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/domain"
)

// RoomInfo is a read-only view of one derived room for the REST surface.
type RoomInfo struct {
	Room        domain.RoomID `json:"room"`
	MemberCount int           `json:"memberCount"`
}

// Registry is the single owner of all live UserRecords. One coarse mutex
// guards the record map together with the per-room join-order index, so
// the check-then-insert inside Add is atomic: of two concurrent joins
// colliding on (name, room), exactly one gets ErrNameTaken.
//
// No network I/O ever happens under this lock.
type Registry struct {
	mu    sync.Mutex
	users map[domain.ConnID]*domain.UserRecord

	// Incrementally maintained room index, updated in the same critical
	// section as users: member ids in join order plus a name set for the
	// uniqueness check.
	order map[domain.RoomID][]domain.ConnID
	names map[domain.RoomID]map[string]domain.ConnID
}

func NewRegistry() *Registry {
	return &Registry{
		users: make(map[domain.ConnID]*domain.UserRecord),
		order: make(map[domain.RoomID][]domain.ConnID),
		names: make(map[domain.RoomID]map[string]domain.ConnID),
	}
}

// Add normalizes the raw name and room, enforces per-room name uniqueness
// and inserts a new record. A connection may hold at most one record; the
// session state machine guarantees Add is not called twice for a live sid.
func (r *Registry) Add(sid domain.ConnID, rawName, rawRoom string) (*domain.UserRecord, error) {
	rec, err := domain.NewUserRecord(sid, rawName, rawRoom)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taken := r.names[rec.Room]
	if _, ok := taken[rec.Name]; ok {
		return nil, ErrNameTaken
	}
	if taken == nil {
		taken = make(map[string]domain.ConnID)
		r.names[rec.Room] = taken
	}
	taken[rec.Name] = sid
	r.users[sid] = rec
	r.order[rec.Room] = append(r.order[rec.Room], sid)

	log.Info().Str("module", "app.registry").Str("sid", string(sid)).
		Str("name", rec.Name).Str("room", string(rec.Room)).Msg("user added")
	return r.copyLocked(rec), nil
}

// Remove deletes the record for sid and returns it. Calling it again for
// the same sid is a no-op returning false, so the disconnect path may race
// an explicit leave without harm.
func (r *Registry) Remove(sid domain.ConnID) (*domain.UserRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[sid]
	if !ok {
		return nil, false
	}
	delete(r.users, sid)
	delete(r.names[rec.Room], rec.Name)
	if len(r.names[rec.Room]) == 0 {
		delete(r.names, rec.Room)
	}
	r.order[rec.Room] = removeID(r.order[rec.Room], sid)
	if len(r.order[rec.Room]) == 0 {
		delete(r.order, rec.Room)
	}

	log.Info().Str("module", "app.registry").Str("sid", string(sid)).
		Str("room", string(rec.Room)).Msg("user removed")
	return rec, true
}

// Get is a read-only lookup by connection identity.
func (r *Registry) Get(sid domain.ConnID) (*domain.UserRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.users[sid]
	if !ok {
		return nil, false
	}
	return r.copyLocked(rec), true
}

// RoomMembers returns a snapshot of the live records in roomID, in join
// order. The raw input is normalized first. Later registry mutation never
// changes an already returned snapshot.
func (r *Registry) RoomMembers(rawRoom string) []domain.UserRecord {
	room := domain.NormalizeRoom(rawRoom)
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.order[room]
	out := make([]domain.UserRecord, 0, len(ids))
	for _, sid := range ids {
		if rec, ok := r.users[sid]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

// RoomNames returns the roster of display names in roomID, in join order.
func (r *Registry) RoomNames(rawRoom string) []string {
	members := r.RoomMembers(rawRoom)
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

// Rooms lists the currently derived rooms. A room exists exactly while it
// has members; nothing here is stored beyond the records themselves.
func (r *Registry) Rooms() []RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RoomInfo, 0, len(r.order))
	for room, ids := range r.order {
		out = append(out, RoomInfo{Room: room, MemberCount: len(ids)})
	}
	return out
}

func (r *Registry) copyLocked(rec *domain.UserRecord) *domain.UserRecord {
	cp := *rec
	return &cp
}

func removeID(ids []domain.ConnID, sid domain.ConnID) []domain.ConnID {
	for i, id := range ids {
		if id == sid {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
