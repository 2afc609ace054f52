package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/parley/internal/core"
	"github.com/dkeye/parley/internal/domain"
)

func newSessionWithConn(relay *Relay, sid domain.ConnID) (*Session, *fakeConn) {
	conn := &fakeConn{}
	relay.Conns.Bind(sid, conn)
	return relay.NewSession(sid), conn
}

func TestJoinGreetsAndPublishesRoster(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	sess, conn := newSessionWithConn(relay, "a")

	require.NoError(t, sess.Join(" Alice ", "Lobby"))
	assert.Equal(t, StateActive, sess.State())

	// The joiner gets a welcome and the fresh roster, but not its own
	// userJoined echo.
	assert.Equal(t, []string{core.KindWelcome, core.KindRoomRoster}, conn.kinds(t))

	var roster core.RoomRoster
	conn.last(t, &roster)
	assert.Equal(t, []string{"alice"}, roster.Members)
}

func TestJoinNotifiesExistingMembers(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	alice, aliceConn := newSessionWithConn(relay, "a")
	require.NoError(t, alice.Join("alice", "lobby"))

	bob, bobConn := newSessionWithConn(relay, "b")
	require.NoError(t, bob.Join("Bob", "LOBBY"))

	assert.Equal(t, []string{core.KindWelcome, core.KindRoomRoster, core.KindUserJoined, core.KindRoomRoster}, aliceConn.kinds(t))

	var roster core.RoomRoster
	aliceConn.last(t, &roster)
	assert.Equal(t, []string{"alice", "bob"}, roster.Members)

	assert.Equal(t, []string{core.KindWelcome, core.KindRoomRoster}, bobConn.kinds(t))
	bobConn.last(t, &roster)
	assert.Equal(t, []string{"alice", "bob"}, roster.Members)
}

func TestJoinNameTakenLeavesSessionUsable(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	alice, _ := newSessionWithConn(relay, "a")
	require.NoError(t, alice.Join("Alice", "lobby"))

	sess, conn := newSessionWithConn(relay, "b")
	err := sess.Join("alice", "LOBBY")
	assert.ErrorIs(t, err, ErrNameTaken)
	assert.Equal(t, StateUnjoined, sess.State())
	assert.Zero(t, conn.count())

	// Retry with a fresh name on the same connection.
	require.NoError(t, sess.Join("bob", "lobby"))
	assert.Equal(t, StateActive, sess.State())
}

func TestJoinTwiceIsRejected(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	sess, _ := newSessionWithConn(relay, "a")
	require.NoError(t, sess.Join("alice", "lobby"))

	err := sess.Join("alice2", "lobby")
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	// The original membership is untouched.
	rec, ok := relay.Registry.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alice", rec.Name)
}

func TestSendMessageRequiresJoin(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	sess, _ := newSessionWithConn(relay, "a")

	assert.ErrorIs(t, sess.SendMessage("hi"), ErrNotJoined)
}

func TestChatMessageReachesRoomIncludingSender(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	alice, aliceConn := newSessionWithConn(relay, "a")
	require.NoError(t, alice.Join("Alice", "lobby"))
	bob, bobConn := newSessionWithConn(relay, "b")
	require.NoError(t, bob.Join("bob", "lobby"))

	require.NoError(t, alice.SendMessage("hi"))

	for _, conn := range []*fakeConn{aliceConn, bobConn} {
		var msg core.ChatMessage
		conn.last(t, &msg)
		assert.Equal(t, core.KindChatMessage, msg.Type)
		assert.Equal(t, "alice", msg.SenderDisplayName)
		assert.Equal(t, "hi", msg.Body)
	}
}

func TestEmptyBodyPassesThrough(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	sess, conn := newSessionWithConn(relay, "a")
	require.NoError(t, sess.Join("alice", "lobby"))

	require.NoError(t, sess.SendMessage("   "))

	var msg core.ChatMessage
	conn.last(t, &msg)
	assert.Equal(t, "   ", msg.Body)
}

func TestDisconnectAnnouncesDeparture(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	alice, _ := newSessionWithConn(relay, "a")
	require.NoError(t, alice.Join("Alice", "lobby"))
	bob, bobConn := newSessionWithConn(relay, "b")
	require.NoError(t, bob.Join("bob", "lobby"))

	relay.Conns.Unbind("a")
	alice.Disconnect()

	kinds := bobConn.kinds(t)
	assert.Equal(t, core.KindUserLeft, kinds[len(kinds)-2])
	assert.Equal(t, core.KindRoomRoster, kinds[len(kinds)-1])

	var roster core.RoomRoster
	bobConn.last(t, &roster)
	assert.Equal(t, []string{"bob"}, roster.Members)

	_, ok := relay.Registry.Get("a")
	assert.False(t, ok)

	// A second disconnect is a silent no-op.
	before := bobConn.count()
	alice.Disconnect()
	assert.Equal(t, before, bobConn.count())
}

func TestUnjoinedDisconnectLeavesNoTrace(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	alice, aliceConn := newSessionWithConn(relay, "a")
	require.NoError(t, alice.Join("alice", "lobby"))

	ghost, _ := newSessionWithConn(relay, "g")
	relay.Conns.Unbind("g")
	ghost.Disconnect()

	// Alice saw nothing beyond her own join.
	assert.Equal(t, []string{core.KindWelcome, core.KindRoomRoster}, aliceConn.kinds(t))
	assert.Len(t, relay.Registry.RoomMembers("lobby"), 1)
}

func TestLeaveIsTerminal(t *testing.T) {
	relay := NewRelay(DropPolicy{})
	sess, _ := newSessionWithConn(relay, "a")

	assert.ErrorIs(t, sess.Leave(), ErrNotJoined)

	require.NoError(t, sess.Join("alice", "lobby"))
	require.NoError(t, sess.Leave())
	assert.Equal(t, StateClosed, sess.State())

	assert.ErrorIs(t, sess.SendMessage("hi"), ErrSessionClosed)
	assert.ErrorIs(t, sess.Join("alice", "lobby"), ErrSessionClosed)
	assert.ErrorIs(t, sess.Leave(), ErrSessionClosed)

	_, ok := relay.Registry.Get("a")
	assert.False(t, ok)
}
