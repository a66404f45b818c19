package runtime

import (
	"encoding/json"
	"log/slog"

	"relay-chat/contract"
	"relay-chat/domain"
)

// Lifecycle wires transport events to the core: connection open and
// close mutate the registry and trigger a roster publish, inbound frames
// are decoded and routed. No failure in here may terminate a connection
// or crash the registry; everything is contained at the operation
// boundary.
type Lifecycle struct {
	log      *slog.Logger
	registry contract.IRegistry
	presence *Publisher
	router   contract.IRouter
	rooms    *Rooms
}

func NewLifecycle(log *slog.Logger, registry contract.IRegistry, presence *Publisher, router contract.IRouter, rooms *Rooms) *Lifecycle {
	return &Lifecycle{
		log:      log,
		registry: registry,
		presence: presence,
		router:   router,
		rooms:    rooms,
	}
}

// Connect registers a new session, hands it its id, and publishes the
// grown roster. A duplicate id is an internal-consistency fault: the
// transport guarantees unique ids, so the connection is rejected and the
// existing session is left untouched.
func (l *Lifecycle) Connect(id string, sink contract.EventSink) error {
	if err := l.registry.Add(id, sink); err != nil {
		l.log.Error("session rejected", "session", id, "error", err)
		return err
	}
	l.log.Info("session connected", "session", id)

	if err := sink.Consume(domain.Event{Name: domain.EventSession, Payload: id}); err != nil {
		l.log.Debug("handshake delivery skipped", "session", id, "error", err)
	}
	l.presence.Publish()
	return nil
}

// Disconnect removes a session. Publishing only happens when membership
// actually changed, so late duplicate notifications stay silent.
func (l *Lifecycle) Disconnect(id string) {
	if !l.registry.Remove(id) {
		return
	}
	l.log.Info("session disconnected", "session", id)
	l.presence.Publish()
}

// Inbound decodes one frame and dispatches it. Malformed frames and
// rejected messages are dropped with a log line; the connection stays
// open either way.
func (l *Lifecycle) Inbound(id string, raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		l.log.Debug("frame dropped", "session", id, "error", err)
		return
	}

	switch env.Event {
	case domain.EventGlobalMessage:
		var payload domain.GlobalSend
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			l.log.Debug("global payload dropped", "session", id, "error", err)
			return
		}
		l.route(id, domain.Message{
			Sender: senderOr(payload.From, id),
			Scope:  domain.ScopeGlobal,
			Body:   payload.Message,
		})

	case domain.EventPrivateMessage:
		var payload domain.PrivateSend
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			l.log.Debug("private payload dropped", "session", id, "error", err)
			return
		}
		l.route(id, domain.Message{
			Sender:    senderOr(payload.From, id),
			Scope:     domain.ScopePrivate,
			Recipient: payload.To,
			Body:      payload.Message,
		})

	case domain.EventJoinPrivateRoom:
		var payload domain.JoinRoomRequest
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			l.log.Debug("join payload dropped", "session", id, "error", err)
			return
		}
		room, err := domain.ResolveRoom(payload.UserID1, payload.UserID2)
		if err != nil {
			l.log.Debug("join rejected", "session", id, "error", err)
			return
		}
		l.rooms.Enroll(id, room)
		l.log.Debug("session enrolled", "session", id, "room", room)

	default:
		l.log.Debug("unknown event dropped", "session", id, "event", env.Event)
	}
}

func (l *Lifecycle) route(id string, msg domain.Message) {
	if err := l.router.Route(msg); err != nil {
		// No error channel back to the sender exists in this protocol;
		// rejection manifests as absence of delivery.
		l.log.Debug("message rejected", "session", id, "error", err)
	}
}

// senderOr falls back to the connection's own id when the payload omits
// the from field, as thin clients do.
func senderOr(from, id string) string {
	if from == "" {
		return id
	}
	return from
}
