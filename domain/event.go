package domain

import "encoding/json"

// Wire event names, matching the relay protocol on both directions.
const (
	EventSession         = "session"
	EventUserList        = "users:list"
	EventGlobalMessage   = "globalMessage"
	EventPrivateMessage  = "privateMessage"
	EventJoinPrivateRoom = "joinPrivateRoom"
)

// Envelope is the frame every websocket message travels in.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Event is an outbound event before wire encoding. The transport layer
// marshals Payload into the envelope's data field.
type Event struct {
	Name    string
	Payload any
}

// PrivateDelivery is the server->client payload for a private message.
// Only the sender and the recipient ever receive it.
type PrivateDelivery struct {
	From    string `json:"from"`
	Message string `json:"message"`
}
