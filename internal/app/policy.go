package app

import "github.com/dkeye/parley/internal/domain"

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a member whose send buffer is full.
type Policy interface {
	OnBackpressure(room domain.RoomID, slow domain.ConnID) BackpressureAction
}

// DropPolicy sheds the frame and keeps the member. Default: the room stays
// unbounded and a stalled reader only hurts itself.
type DropPolicy struct{}

func (DropPolicy) OnBackpressure(domain.RoomID, domain.ConnID) BackpressureAction {
	return DropFrame
}

// KickPolicy closes the slow member's transport, which runs its normal
// disconnect path and frees the membership.
type KickPolicy struct{}

func (KickPolicy) OnBackpressure(domain.RoomID, domain.ConnID) BackpressureAction {
	return KickMember
}
