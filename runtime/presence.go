package runtime

import (
	"log/slog"

	"github.com/samber/lo"

	"relay-chat/contract"
	"relay-chat/domain"
)

// Publisher pushes the full roster to every connected session after a
// membership change. Each publish works from a single registry view, so
// all recipients of one publish see the same roster.
type Publisher struct {
	log      *slog.Logger
	registry contract.IRegistry
}

func NewPublisher(log *slog.Logger, registry contract.IRegistry) *Publisher {
	return &Publisher{log: log, registry: registry}
}

func (p *Publisher) Publish() {
	sessions := p.registry.Sessions()
	roster := lo.Map(sessions, func(s contract.Session, _ int) string {
		return s.ID
	})
	evt := domain.Event{Name: domain.EventUserList, Payload: roster}

	for _, s := range sessions {
		if err := s.Sink.Consume(evt); err != nil {
			// The session vanished or its queue is full. Presence is
			// best-effort; the next membership change resyncs everyone.
			p.log.Debug("roster delivery skipped", "session", s.ID, "error", err)
		}
	}
}
