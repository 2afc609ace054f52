package core

// Outbound event kinds. Clients discriminate on the "type" field.
const (
	KindWelcome     = "welcome"
	KindChatMessage = "chatMessage"
	KindUserJoined  = "userJoined"
	KindUserLeft    = "userLeft"
	KindRoomRoster  = "roomRoster"
	KindAck         = "ack"
	KindPong        = "pong"
)

// Welcome greets the joining connection only; it is never broadcast.
type Welcome struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewWelcome(text string) Welcome {
	return Welcome{Type: KindWelcome, Text: text}
}

// ChatMessage carries one chat line to the whole room, sender included,
// so every client renders from a single source of truth.
type ChatMessage struct {
	Type              string `json:"type"`
	SenderDisplayName string `json:"senderDisplayName"`
	Body              string `json:"body"`
}

func NewChatMessage(sender, body string) ChatMessage {
	return ChatMessage{Type: KindChatMessage, SenderDisplayName: sender, Body: body}
}

type UserJoined struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

func NewUserJoined(name string) UserJoined {
	return UserJoined{Type: KindUserJoined, DisplayName: name}
}

type UserLeft struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

func NewUserLeft(name string) UserLeft {
	return UserLeft{Type: KindUserLeft, DisplayName: name}
}

// RoomRoster is the full current member list in join order, rebroadcast on
// every membership change.
type RoomRoster struct {
	Type    string   `json:"type"`
	Members []string `json:"members"`
}

func NewRoomRoster(members []string) RoomRoster {
	return RoomRoster{Type: KindRoomRoster, Members: members}
}

// Ack answers one inbound request that carried an id. Error is empty on
// success.
type Ack struct {
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Error string `json:"error,omitempty"`
}

func NewAck(id int64, err error) Ack {
	a := Ack{Type: KindAck, ID: id}
	if err != nil {
		a.Error = err.Error()
	}
	return a
}

type Pong struct {
	Type string `json:"type"`
}

func NewPong() Pong {
	return Pong{Type: KindPong}
}
