package history

import (
	"errors"

	"github.com/NordCoder/Uptimer/internal/domain/probe"
)

var (
	ErrMissingKey  = errors.New("history key not initialized")
	ErrDecode      = errors.New("history value is malformed")
	ErrWrite       = errors.New("history write failed")
	ErrConflict    = errors.New("history changed since it was read")
	ErrUnavailable = errors.New("history store unavailable")
)

// History is newest-first.
type History []probe.Record

// Snapshot is a history together with the store version it was read at.
// Version 0 means the key did not exist.
type Snapshot struct {
	Records History
	Version int64
}

// Prepend returns a new history with r in front. h is not modified.
func Prepend(h History, r probe.Record) History {
	out := make(History, 0, len(h)+1)
	out = append(out, r)
	return append(out, h...)
}

func (h History) Latest() (probe.Record, bool) {
	if len(h) == 0 {
		return probe.Record{}, false
	}
	return h[0], true
}
