package domain

import (
	"fmt"

	errs "relay-chat/errors"
)

type RoomID string

// ResolveRoom derives the canonical room id for two sessions by sorting
// the ids and joining them with "-". Both orderings of the same pair map
// to the same room. A session cannot form a room with itself.
func ResolveRoom(a, b string) (RoomID, error) {
	if a == "" || b == "" {
		return "", fmt.Errorf("%w: empty session id", errs.ErrInvalidPair)
	}
	if a == b {
		return "", fmt.Errorf("%w: %s paired with itself", errs.ErrInvalidPair, a)
	}
	if b < a {
		a, b = b, a
	}
	return RoomID(a + "-" + b), nil
}
