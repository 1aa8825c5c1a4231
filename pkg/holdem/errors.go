package holdem

import (
	"errors"
	"fmt"
)

// RejectedActionError is an error for an illegal player action.
// It is safe to send to the originating client; game state is untouched.
type RejectedActionError string

func (r RejectedActionError) Error() string {
	return string(r)
}

// errors for unknown identities
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
)

// InvariantViolationError indicates the game state failed a consistency check.
// The match is marked corrupted and will reject all further actions.
type InvariantViolationError struct {
	Reason string
}

func (i *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", i.Reason)
}

// ErrGameCorrupted is returned for any action against a corrupted match
var ErrGameCorrupted = errors.New("game is corrupted and can no longer be played")
