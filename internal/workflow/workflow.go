// Package workflow implements the two-phase data-entry flow shared by the
// add-match, add-team, and add-stadium forms: edit a draft, review it on a
// confirmation screen, then submit exactly once. The same machine backs all
// three, parameterized by the flow's draft type, validator, and create call.
package workflow

import (
	"context"
	"errors"
	"sync"
)

// State of a form.
type State int

const (
	StateEditing State = iota
	StateConfirming
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

var (
	ErrNotConfirming = errors.New("form is not awaiting confirmation")
	ErrAlreadyDone   = errors.New("form already submitted")
)

// Form is one in-flight data-entry workflow. The draft survives every
// transition: cancel returns to editing with the data intact, and a failed
// submission returns to confirming so the user can retry without re-entering
// anything.
type Form[D any] struct {
	mu       sync.Mutex
	state    State
	draft    D
	message  string
	validate func(D) error
	submit   func(context.Context, D) error
}

// New returns a Form in the editing state. validate guards the transition to
// confirming and returns a single human-readable message on failure; submit
// performs the one create call.
func New[D any](validate func(D) error, submit func(context.Context, D) error) *Form[D] {
	return &Form[D]{validate: validate, submit: submit}
}

func (f *Form[D]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Update mutates the draft in place. Only meaningful while editing, but never
// rejected: a stale browser tab posting field edits must not lose data.
func (f *Form[D]) Update(fn func(*D)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// Message returns the most recent validation or submission failure. Only one
// message is held at a time; each new failure replaces the previous one.
func (f *Form[D]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Review validates the draft and moves editing → confirming. On validation
// failure the form stays in editing with the failure message set.
func (f *Form[D]) Review() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateDone {
		return ErrAlreadyDone
	}
	if err := f.validate(f.draft); err != nil {
		f.state = StateEditing
		f.message = err.Error()
		return err
	}
	f.state = StateConfirming
	f.message = ""
	return nil
}

// Cancel moves confirming → editing. The confirmation screen is a read-only
// preview, so nothing is discarded.
func (f *Form[D]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateConfirming {
		f.state = StateEditing
		f.message = ""
	}
}

// Confirm performs the create call. Success ends the workflow in done;
// failure returns to confirming with the error message and the draft intact.
func (f *Form[D]) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateDone {
		f.mu.Unlock()
		return ErrAlreadyDone
	}
	if f.state != StateConfirming {
		f.mu.Unlock()
		return ErrNotConfirming
	}
	f.state = StateSubmitting
	draft := f.draft
	f.mu.Unlock()

	err := f.submit(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateConfirming
		f.message = err.Error()
		return err
	}
	f.state = StateDone
	f.message = ""
	return nil
}
