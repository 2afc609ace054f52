// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

var (
	ErrNameEmpty = errors.New("display name empty")
	ErrRoomEmpty = errors.New("room id empty")
)

// ConnID is the opaque per-connection identity minted by the transport
// adapter. It is stable for the lifetime of one physical connection and
// never reused for another.
type ConnID string

// UserRecord binds one live connection to a normalized display name and
// room. Exactly one record exists per joined connection.
type UserRecord struct {
	Conn ConnID `json:"-"`
	Name string `json:"displayName"`
	Room RoomID `json:"roomId"`
}

// NewUserRecord normalizes the raw inputs and rejects blank ones.
// Per-room name uniqueness is the registry's job, not the record's.
func NewUserRecord(conn ConnID, rawName, rawRoom string) (*UserRecord, error) {
	name := NormalizeName(rawName)
	if name == "" {
		return nil, ErrNameEmpty
	}
	room := NormalizeRoom(rawRoom)
	if room == "" {
		return nil, ErrRoomEmpty
	}
	return &UserRecord{Conn: conn, Name: name, Room: room}, nil
}

// NormalizeName trims surrounding whitespace and case-folds, so "  Alice "
// and "ALICE" collide inside the same room.
func NormalizeName(raw string) string {
	return cases.Fold().String(strings.TrimSpace(raw))
}

// NormalizeRoom applies the same trim + case-fold rule to room ids.
func NormalizeRoom(raw string) RoomID {
	return RoomID(cases.Fold().String(strings.TrimSpace(raw)))
}
