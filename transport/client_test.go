package transport

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"relay-chat/domain"
	errs "relay-chat/errors"
)

func TestClient_Consume_Drops_When_Queue_Is_Full(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient("s1", nil, 1, log)
	evt := domain.Event{Name: domain.EventGlobalMessage, Payload: "[Global] s1 hi"}

	// Given the single-slot queue is occupied
	req.NoError(client.Consume(evt))

	// When another event arrives before the write pump drains
	err := client.Consume(evt)

	// Then the relay does not block; the frame is dropped with a reason
	req.True(errors.Is(err, errs.ErrSendQueueFull))
}

func TestClient_Consume_After_Close_Reports_Session_Closed(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient("s1", nil, 4, log)

	client.close()

	err := client.Consume(domain.Event{Name: domain.EventSession, Payload: "s1"})
	req.True(errors.Is(err, errs.ErrSessionClosed))
}

func TestClient_Consume_Rejects_Unencodable_Payload(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient("s1", nil, 4, log)

	err := client.Consume(domain.Event{Name: domain.EventSession, Payload: func() {}})
	req.Error(err)
}
