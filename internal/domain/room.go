package domain

// RoomID names a room. Rooms are not materialized entities: a room is the
// set of live UserRecords sharing a RoomID, born with its first member and
// gone with its last.
type RoomID string
