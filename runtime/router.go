package runtime

import (
	"fmt"
	"log/slog"

	"relay-chat/contract"
	"relay-chat/domain"
	errs "relay-chat/errors"
)

// Router classifies inbound messages and delivers them. Delivery is
// fire-and-forget: no retry, no queueing for later, no acknowledgement
// back to the sender. A recipient that vanished between dispatch and
// delivery is skipped silently.
type Router struct {
	log      *slog.Logger
	registry contract.IRegistry
}

func NewRouter(log *slog.Logger, registry contract.IRegistry) *Router {
	return &Router{log: log, registry: registry}
}

func (r *Router) Route(msg domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	switch msg.Scope {
	case domain.ScopeGlobal:
		r.routeGlobal(msg)
		return nil
	case domain.ScopePrivate:
		return r.routePrivate(msg)
	}
	// Unreachable after validation, kept so a new scope cannot slip
	// through as a silent no-op.
	return fmt.Errorf("%w: scope %q", errs.ErrValidation, msg.Scope)
}

func (r *Router) routeGlobal(msg domain.Message) {
	evt := domain.Event{
		Name:    domain.EventGlobalMessage,
		Payload: fmt.Sprintf("[Global] %s %s", msg.Sender, msg.Body),
	}
	// One consistent roster view for the whole broadcast. Sessions that
	// connect mid-broadcast catch the next one.
	for _, s := range r.registry.Sessions() {
		if err := s.Sink.Consume(evt); err != nil {
			r.log.Debug("global delivery skipped", "session", s.ID, "error", err)
		}
	}
}

func (r *Router) routePrivate(msg domain.Message) error {
	if msg.Recipient == msg.Sender {
		return fmt.Errorf("%w: %s messaging itself", errs.ErrInvalidPair, msg.Sender)
	}

	// A vanished recipient drops the whole send: nobody receives it and
	// the sender gets no error. Private sends are fire-and-forget.
	recipient, ok := r.registry.Sink(msg.Recipient)
	if !ok {
		r.log.Debug("delivery miss", "session", msg.Recipient)
		return nil
	}

	evt := domain.Event{
		Name:    domain.EventPrivateMessage,
		Payload: domain.PrivateDelivery{From: msg.Sender, Message: msg.Body},
	}
	if sender, ok := r.registry.Sink(msg.Sender); ok {
		if err := sender.Consume(evt); err != nil {
			r.log.Debug("private delivery skipped", "session", msg.Sender, "error", err)
		}
	}
	if err := recipient.Consume(evt); err != nil {
		r.log.Debug("private delivery skipped", "session", msg.Recipient, "error", err)
	}
	return nil
}
