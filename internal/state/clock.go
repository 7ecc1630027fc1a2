package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID = uuid.NewString()
	sequence  uint64
)

func nextSequence() uint64 {
	return atomic.AddUint64(&sequence, 1)
}

// newCommandID returns a unique identifier for a command.
func newCommandID() string {
	return uuid.NewString()
}

// SessionID identifies this process in log output.
func SessionID() string {
	return sessionID
}
