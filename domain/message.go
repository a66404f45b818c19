package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	errs "relay-chat/errors"
)

var validate = validator.New()

// Scope classifies where a message is delivered.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopePrivate Scope = "private"
)

// Message is an inbound message for one routing operation. It is never
// stored; it lives only between decode and dispatch.
type Message struct {
	Sender    string `validate:"required"`
	Scope     Scope  `validate:"required,oneof=global private"`
	Recipient string `validate:"required_if=Scope private"`
	Body      string `validate:"required"`
}

// Validate checks the structural invariants before routing. A failure
// means zero deliveries, never a crash.
func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	return nil
}

// GlobalSend is the client->server payload requesting a broadcast.
type GlobalSend struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// PrivateSend is the client->server payload requesting a private send.
type PrivateSend struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// JoinRoomRequest asks to enroll the requesting session in the canonical
// room for a session pair.
type JoinRoomRequest struct {
	UserID1 string `json:"userId1"`
	UserID2 string `json:"userId2"`
}
