// Package rejection implements the rejection-reason workflow for blood
// requests: a locally edited draft, validated and handed to an injected
// confirmer while duplicate submits are held off.
package rejection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	// MinReasonLength is the minimum number of runes in a trimmed reason.
	MinReasonLength = 5
	// DisplayLimit is the soft limit shown next to the draft. It is not enforced.
	DisplayLimit = 500
)

// State is the submission state of a workflow.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Confirmer performs the actual rejection. It is only ever called with a
// trimmed reason of at least MinReasonLength runes.
type Confirmer interface {
	Confirm(ctx context.Context, reason string) error
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, reason string) error

func (f ConfirmFunc) Confirm(ctx context.Context, reason string) error { return f(ctx, reason) }

// Closer hides whatever is presenting the workflow.
type Closer interface {
	Close()
}

// CloseFunc adapts a function to Closer.
type CloseFunc func()

func (f CloseFunc) Close() { f() }

// Notifier shows user-facing validation notices.
type Notifier interface {
	Notify(message string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(message string)

func (f NotifyFunc) Notify(message string) { f(message) }

// Workflow holds the draft and submission state for rejecting one request.
// A Workflow is owned by a single goroutine and is not safe for concurrent use.
type Workflow struct {
	requestCode string
	draft       string
	state       State

	confirmer Confirmer
	closer    Closer
	notifier  Notifier
	logger    *slog.Logger
}

// NewWorkflow creates an idle workflow for the request identified by code.
// A nil logger falls back to slog.Default.
func NewWorkflow(code string, confirmer Confirmer, closer Closer, notifier Notifier, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		requestCode: code,
		state:       Idle,
		confirmer:   confirmer,
		closer:      closer,
		notifier:    notifier,
		logger:      logger,
	}
}

func (w *Workflow) RequestCode() string { return w.requestCode }

func (w *Workflow) Draft() string { return w.draft }

func (w *Workflow) State() State { return w.state }

func (w *Workflow) Submitting() bool { return w.state == Submitting }

// CanSubmit reports whether the submit control should be enabled.
func (w *Workflow) CanSubmit() bool {
	return w.state == Idle && strings.TrimSpace(w.draft) != ""
}

// UpdateDraft replaces the draft. No validation happens on edit.
func (w *Workflow) UpdateDraft(text string) {
	w.draft = text
}

// SelectQuickReason fills the draft with a canned reason. It is ignored while
// a submission is in flight or when the preset is unknown.
func (w *Workflow) SelectQuickReason(q QuickReason) bool {
	if w.state == Submitting || !q.Valid() {
		return false
	}
	w.draft = q.Text()
	return true
}

// Validate checks a draft and returns the trimmed reason.
func Validate(draft string) (string, error) {
	reason := strings.TrimSpace(draft)
	if reason == "" {
		return "", &ValidationError{Message: MsgEmptyReason, Err: ErrEmptyReason}
	}
	if utf8.RuneCountInString(reason) < MinReasonLength {
		return "", &ValidationError{Message: MsgReasonTooShort, Err: ErrReasonTooShort}
	}
	return reason, nil
}

// BeginSubmit validates the draft and moves the workflow to Submitting. The
// returned reason must be passed to the confirmer, and CompleteSubmit must
// be called once the confirmer returns.
func (w *Workflow) BeginSubmit() (string, error) {
	if w.state == Submitting {
		return "", ErrSubmitInFlight
	}
	reason, err := Validate(w.draft)
	if err != nil {
		if w.notifier != nil {
			w.notifier.Notify(err.Error())
		}
		return "", err
	}
	w.state = Submitting
	return reason, nil
}

// CompleteSubmit finishes a submission started with BeginSubmit. A failed
// confirmation is logged and swallowed; the draft survives for a retry.
func (w *Workflow) CompleteSubmit(err error) {
	defer func() { w.state = Idle }()

	if err != nil {
		w.logger.Error("rejection confirmation failed",
			"request", w.requestCode,
			"error", err,
		)
		return
	}
	w.draft = ""
}

// Submit runs the whole submission synchronously. Only validation errors and
// ErrSubmitInFlight are returned; confirmer failures never reach the caller.
func (w *Workflow) Submit(ctx context.Context) error {
	reason, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	w.CompleteSubmit(w.confirm(ctx, reason))
	return nil
}

// confirm calls the confirmer, turning a panic into an error so the
// workflow can always return to Idle.
func (w *Workflow) confirm(ctx context.Context, reason string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("confirmer panicked: %v", r)
		}
	}()
	if w.confirmer == nil {
		return fmt.Errorf("no confirmer configured for request %s", w.requestCode)
	}
	return w.confirmer.Confirm(ctx, reason)
}

// Cancel clears the draft and closes, whatever the submission state. An
// in-flight confirmation is not interrupted.
func (w *Workflow) Cancel() {
	w.draft = ""
	if w.closer != nil {
		w.closer.Close()
	}
}
