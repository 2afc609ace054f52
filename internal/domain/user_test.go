package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "alice", NormalizeName("  Alice "))
	assert.Equal(t, "alice", NormalizeName("ALICE"))
	assert.Equal(t, "éclair", NormalizeName("ÉCLAIR"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeRoom(t *testing.T) {
	assert.Equal(t, RoomID("lobby"), NormalizeRoom(" LOBBY "))
	assert.Equal(t, RoomID("other-room"), NormalizeRoom("other-room"))
}

func TestNewUserRecord(t *testing.T) {
	rec, err := NewUserRecord("c1", " Alice ", "LOBBY")
	require.NoError(t, err)
	assert.Equal(t, ConnID("c1"), rec.Conn)
	assert.Equal(t, "alice", rec.Name)
	assert.Equal(t, RoomID("lobby"), rec.Room)
}

func TestNewUserRecordRejectsBlank(t *testing.T) {
	_, err := NewUserRecord("c1", "   ", "lobby")
	assert.ErrorIs(t, err, ErrNameEmpty)

	_, err = NewUserRecord("c1", "alice", "  ")
	assert.ErrorIs(t, err, ErrRoomEmpty)
}
