package app

import "errors"

// Session-facing errors. All of them travel back to the originating
// connection inside an ack; none is fatal.
var (
	// ErrNameTaken rejects a join whose normalized name is already live in
	// the normalized room. The caller may retry with another name.
	ErrNameTaken = errors.New("name already taken in this room")

	// ErrAlreadyJoined rejects a second join on an active session instead
	// of silently re-joining, which would orphan the old membership.
	ErrAlreadyJoined = errors.New("session already joined a room")

	// ErrNotJoined rejects a send before a successful join.
	ErrNotJoined = errors.New("session has not joined a room")

	// ErrSessionClosed rejects any request after the session reached its
	// terminal state.
	ErrSessionClosed = errors.New("session closed")
)
