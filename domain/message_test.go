package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	errs "relay-chat/errors"
)

func TestMessage_Validate_Accepts_Global(t *testing.T) {
	req := require.New(t)

	msg := Message{Sender: "s1", Scope: ScopeGlobal, Body: "hi"}

	req.NoError(msg.Validate())
}

func TestMessage_Validate_Accepts_Private(t *testing.T) {
	req := require.New(t)

	msg := Message{Sender: "s1", Scope: ScopePrivate, Recipient: "s2", Body: "secret"}

	req.NoError(msg.Validate())
}

func TestMessage_Validate_Rejects_Empty_Body(t *testing.T) {
	req := require.New(t)

	err := Message{Sender: "s1", Scope: ScopeGlobal}.Validate()

	req.True(errors.Is(err, errs.ErrValidation))
}

func TestMessage_Validate_Rejects_Missing_Sender(t *testing.T) {
	req := require.New(t)

	err := Message{Scope: ScopeGlobal, Body: "hi"}.Validate()

	req.True(errors.Is(err, errs.ErrValidation))
}

func TestMessage_Validate_Rejects_Unknown_Scope(t *testing.T) {
	req := require.New(t)

	err := Message{Sender: "s1", Scope: "whisper", Body: "hi"}.Validate()

	req.True(errors.Is(err, errs.ErrValidation))
}

func TestMessage_Validate_Rejects_Private_Without_Recipient(t *testing.T) {
	req := require.New(t)

	err := Message{Sender: "s1", Scope: ScopePrivate, Body: "secret"}.Validate()

	req.True(errors.Is(err, errs.ErrValidation))
}
