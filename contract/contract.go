package contract

import "relay-chat/domain"

// EventSink is one session's outbound path. Implementations must not
// block: an event that cannot be accepted right now is dropped and
// reported through the returned error.
type EventSink interface {
	Consume(e domain.Event) error
}

// Session pairs a live session id with its outbound sink.
type Session struct {
	ID   string
	Sink EventSink
}

type IRegistry interface {
	Add(id string, sink EventSink) error
	Remove(id string) bool
	Snapshot() []string
	Sessions() []Session
	Sink(id string) (EventSink, bool)
}

type IRouter interface {
	Route(msg domain.Message) error
}

// ILifecycle is what the transport layer drives: one Connect per
// accepted connection, one Disconnect per close, Inbound per frame.
type ILifecycle interface {
	Connect(id string, sink EventSink) error
	Disconnect(id string)
	Inbound(id string, raw []byte)
}
