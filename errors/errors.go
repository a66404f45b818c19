package errors

import "fmt"

var (
	ErrDuplicateSession = fmt.Errorf("duplicate session id")
	ErrInvalidPair      = fmt.Errorf("invalid session pair")
	ErrValidation       = fmt.Errorf("invalid message")
	ErrSessionClosed    = fmt.Errorf("session closed")
	ErrSendQueueFull    = fmt.Errorf("send queue full")
)
