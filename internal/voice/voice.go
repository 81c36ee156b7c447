// Package voice wraps an optional speech-to-text capability behind a small
// state machine. The runtime may not provide a recognizer at all; that is
// detected up front and surfaced as a capability error instead of a crash.
package voice

import (
	"context"
	"fmt"
	"sync"

	apperrors "chat-assistant/internal/errors"
)

// Recognizer is the external speech-to-text capability. Start begins one
// capture session: recognized text is delivered through onText (possibly
// several times), a recognition fault through onErr, after which the session
// is over. The returned stop function ends the session early.
type Recognizer interface {
	Start(ctx context.Context, onText func(string), onErr func(error)) (stop func(), err error)
}

type captureState int

const (
	stateIdle captureState = iota
	stateListening
)

// Adapter enforces the capture-session invariants over a Recognizer: at most
// one session at a time, a clean return to idle on error or stop, and a
// capability error when no recognizer exists.
type Adapter struct {
	mu    sync.Mutex
	rec   Recognizer
	state captureState
	stop  func()
}

// NewAdapter wraps rec, which may be nil when the runtime has no
// speech-to-text support.
func NewAdapter(rec Recognizer) *Adapter {
	return &Adapter{rec: rec}
}

// Supported reports whether a recognizer is available.
func (a *Adapter) Supported() bool {
	return a.rec != nil
}

// Listening reports whether a capture session is active.
func (a *Adapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == stateListening
}

// Start begins a capture session. Recognized text goes to onText; a fault
// ends the session, resets the listening indicator, and is passed to onErr.
func (a *Adapter) Start(ctx context.Context, onText func(string), onErr func(error)) error {
	if a.rec == nil {
		return fmt.Errorf("%w: speech recognition is not available on this runtime", apperrors.ErrUnsupported)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == stateListening {
		return fmt.Errorf("%w: a capture session is already active", apperrors.ErrConflict)
	}

	stop, err := a.rec.Start(ctx, onText, func(err error) {
		a.endSession()
		if onErr != nil {
			onErr(err)
		}
	})
	if err != nil {
		return fmt.Errorf("could not start capture session: %w", err)
	}

	a.state = stateListening
	a.stop = stop
	return nil
}

// Stop ends the active capture session, if any.
func (a *Adapter) Stop() {
	a.mu.Lock()
	stop := a.stop
	a.state = stateIdle
	a.stop = nil
	a.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (a *Adapter) endSession() {
	a.mu.Lock()
	a.state = stateIdle
	a.stop = nil
	a.mu.Unlock()
}
