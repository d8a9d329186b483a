package rejection

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConfirmer struct {
	calls   []string
	err     error
	panicOn bool
	during  func()
}

func (r *recordingConfirmer) Confirm(_ context.Context, reason string) error {
	r.calls = append(r.calls, reason)
	if r.during != nil {
		r.during()
	}
	if r.panicOn {
		panic("backend exploded")
	}
	return r.err
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(message string) {
	r.messages = append(r.messages, message)
}

func newTestWorkflow(confirmer Confirmer) (*Workflow, *recordingNotifier, *int, *bytes.Buffer) {
	notifier := &recordingNotifier{}
	closed := 0
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	wf := NewWorkflow("BR-1001", confirmer, CloseFunc(func() { closed++ }), notifier, logger)
	return wf, notifier, &closed, &logs
}

func TestSubmit_RejectsEmptyDrafts(t *testing.T) {
	for _, draft := range []string{"", "  ", "\t\n", "   "} {
		confirmer := &recordingConfirmer{}
		wf, notifier, _, _ := newTestWorkflow(confirmer)
		wf.UpdateDraft(draft)

		err := wf.Submit(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyReason)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Please provide a reason for rejection", vErr.Message)
		assert.Equal(t, []string{"Please provide a reason for rejection"}, notifier.messages)
		assert.Empty(t, confirmer.calls)
		assert.Equal(t, Idle, wf.State())
		assert.Equal(t, draft, wf.Draft())
	}
}

func TestSubmit_RejectsShortDrafts(t *testing.T) {
	for _, draft := range []string{"a", "bad", "  abcd  ", "ñüéß"} {
		confirmer := &recordingConfirmer{}
		wf, notifier, _, _ := newTestWorkflow(confirmer)
		wf.UpdateDraft(draft)

		err := wf.Submit(context.Background())

		assert.ErrorIs(t, err, ErrReasonTooShort)
		assert.Equal(t, []string{"Reason must be at least 5 characters long"}, notifier.messages)
		assert.Empty(t, confirmer.calls, "draft %q must not reach the confirmer", draft)
		assert.Equal(t, Idle, wf.State())
	}
}

func TestSubmit_ConfirmsTrimmedReasonOnce(t *testing.T) {
	tests := []struct {
		draft string
		want  string
	}{
		{"abcde", "abcde"},
		{"   Donor unit expired   ", "Donor unit expired"},
		{"\nñüéßø\t", "ñüéßø"},
		{"line one\nline two", "line one\nline two"},
	}

	for _, tt := range tests {
		confirmer := &recordingConfirmer{}
		wf, notifier, closed, _ := newTestWorkflow(confirmer)
		wf.UpdateDraft(tt.draft)

		require.NoError(t, wf.Submit(context.Background()))

		assert.Equal(t, []string{tt.want}, confirmer.calls)
		assert.Empty(t, notifier.messages)
		assert.Equal(t, "", wf.Draft())
		assert.Equal(t, Idle, wf.State())
		assert.Equal(t, 0, *closed, "success must not close on its own")
	}
}

func TestSubmit_IsSubmittingDuringConfirm(t *testing.T) {
	confirmer := &recordingConfirmer{}
	wf, _, _, _ := newTestWorkflow(confirmer)
	var seen State
	var canSubmit bool
	confirmer.during = func() {
		seen = wf.State()
		canSubmit = wf.CanSubmit()
	}
	wf.UpdateDraft("Request exceeds approved limits")

	assert.Equal(t, Idle, wf.State())
	require.NoError(t, wf.Submit(context.Background()))

	assert.Equal(t, Submitting, seen)
	assert.False(t, canSubmit)
	assert.Equal(t, Idle, wf.State())
}

func TestSubmit_QuickReasonScenario(t *testing.T) {
	confirmer := &recordingConfirmer{}
	wf, _, _, _ := newTestWorkflow(confirmer)

	require.True(t, wf.SelectQuickReason(IncorrectBloodGroup))
	assert.Equal(t, "Incorrect blood group specified", wf.Draft())

	require.NoError(t, wf.Submit(context.Background()))

	assert.Equal(t, []string{"Incorrect blood group specified"}, confirmer.calls)
	assert.Equal(t, "", wf.Draft())
}

func TestSubmit_ConfirmFailureIsAbsorbed(t *testing.T) {
	confirmer := &recordingConfirmer{err: errors.New("hospital api unavailable")}
	wf, notifier, closed, logs := newTestWorkflow(confirmer)
	wf.UpdateDraft("Cannot fulfill at this time")

	err := wf.Submit(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, Idle, wf.State())
	assert.Equal(t, "Cannot fulfill at this time", wf.Draft(), "draft stays for a retry")
	assert.Empty(t, notifier.messages)
	assert.Equal(t, 0, *closed)
	assert.Contains(t, logs.String(), "rejection confirmation failed")
	assert.Contains(t, logs.String(), "hospital api unavailable")
	assert.Contains(t, logs.String(), "BR-1001")

	// retry goes through once the backend recovers
	confirmer.err = nil
	require.NoError(t, wf.Submit(context.Background()))
	assert.Len(t, confirmer.calls, 2)
	assert.Equal(t, "", wf.Draft())
}

func TestSubmit_ConfirmPanicStillReturnsToIdle(t *testing.T) {
	confirmer := &recordingConfirmer{panicOn: true}
	wf, _, _, logs := newTestWorkflow(confirmer)
	wf.UpdateDraft("Insufficient blood stock available")

	assert.NotPanics(t, func() {
		assert.NoError(t, wf.Submit(context.Background()))
	})
	assert.Equal(t, Idle, wf.State())
	assert.Equal(t, "Insufficient blood stock available", wf.Draft())
	assert.Contains(t, logs.String(), "backend exploded")
}

func TestSubmit_NilConfirmerIsAFailure(t *testing.T) {
	wf, _, _, logs := newTestWorkflow(nil)
	wf.UpdateDraft("Cannot fulfill at this time")

	assert.NoError(t, wf.Submit(context.Background()))
	assert.Equal(t, Idle, wf.State())
	assert.Equal(t, "Cannot fulfill at this time", wf.Draft())
	assert.Contains(t, logs.String(), "no confirmer configured")
}

func TestBeginSubmit_RefusesWhileInFlight(t *testing.T) {
	wf, notifier, _, _ := newTestWorkflow(&recordingConfirmer{})
	wf.UpdateDraft("Insufficient blood stock available")

	reason, err := wf.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "Insufficient blood stock available", reason)
	assert.True(t, wf.Submitting())

	_, err = wf.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.ErrorIs(t, wf.Submit(context.Background()), ErrSubmitInFlight)
	assert.Empty(t, notifier.messages)

	wf.CompleteSubmit(nil)
	assert.Equal(t, Idle, wf.State())
}

func TestSelectQuickReason_IgnoredWhileSubmitting(t *testing.T) {
	wf, _, _, _ := newTestWorkflow(&recordingConfirmer{})
	wf.UpdateDraft("Patient transferred elsewhere")
	_, err := wf.BeginSubmit()
	require.NoError(t, err)

	assert.False(t, wf.SelectQuickReason(CannotFulfill))
	assert.Equal(t, "Patient transferred elsewhere", wf.Draft())
}

func TestSelectQuickReason_UnknownPreset(t *testing.T) {
	wf, _, _, _ := newTestWorkflow(&recordingConfirmer{})
	wf.UpdateDraft("keep me")

	assert.False(t, wf.SelectQuickReason(QuickReason(7)))
	assert.False(t, wf.SelectQuickReason(QuickReason(-1)))
	assert.Equal(t, "keep me", wf.Draft())
}

func TestQuickReasons(t *testing.T) {
	assert.Equal(t, []string{
		"Insufficient blood stock available",
		"Incorrect blood group specified",
		"Request exceeds approved limits",
		"Cannot fulfill at this time",
	}, QuickReasons())

	// callers get a copy
	reasons := QuickReasons()
	reasons[0] = "changed"
	assert.Equal(t, "Insufficient blood stock available", InsufficientStock.Text())
}

func TestUpdateDraft_NoValidationOnEdit(t *testing.T) {
	wf, notifier, _, _ := newTestWorkflow(&recordingConfirmer{})

	wf.UpdateDraft("")
	wf.UpdateDraft("ab")
	wf.UpdateDraft("   ")

	assert.Equal(t, "   ", wf.Draft())
	assert.Empty(t, notifier.messages)
	assert.False(t, wf.CanSubmit())
	wf.UpdateDraft(" x ")
	assert.True(t, wf.CanSubmit())
}

func TestCancel_AlwaysClearsDraft(t *testing.T) {
	drafts := []string{"", "bad", "Insufficient blood stock available", "   "}
	for _, draft := range drafts {
		wf, _, closed, _ := newTestWorkflow(&recordingConfirmer{})
		wf.UpdateDraft(draft)

		wf.Cancel()
		wf.Cancel()

		assert.Equal(t, "", wf.Draft())
		assert.Equal(t, 2, *closed)
	}
}

func TestCancel_DuringSubmitLetsConfirmationFinish(t *testing.T) {
	confirmer := &recordingConfirmer{}
	wf, _, closed, _ := newTestWorkflow(confirmer)
	confirmer.during = func() {
		wf.Cancel()
	}
	wf.UpdateDraft("Request exceeds approved limits")

	require.NoError(t, wf.Submit(context.Background()))

	assert.Equal(t, 1, *closed)
	assert.Equal(t, []string{"Request exceeds approved limits"}, confirmer.calls)
	assert.Equal(t, Idle, wf.State())
	assert.Equal(t, "", wf.Draft())
}

func TestCancel_DuringSubmitThenFailureKeepsIdle(t *testing.T) {
	wf, _, closed, _ := newTestWorkflow(&recordingConfirmer{})
	wf.UpdateDraft("Request exceeds approved limits")
	_, err := wf.BeginSubmit()
	require.NoError(t, err)

	wf.Cancel()
	assert.Equal(t, 1, *closed)
	assert.Equal(t, Submitting, wf.State())

	wf.CompleteSubmit(errors.New("timeout"))
	assert.Equal(t, Idle, wf.State())
	assert.Equal(t, "", wf.Draft())
}

func TestCancel_NilCloser(t *testing.T) {
	wf := NewWorkflow("BR-1", nil, nil, nil, nil)
	wf.UpdateDraft("something")
	assert.NotPanics(t, wf.Cancel)
	assert.Equal(t, "", wf.Draft())
}

func TestValidate(t *testing.T) {
	reason, err := Validate("  Cannot fulfill at this time \n")
	require.NoError(t, err)
	assert.Equal(t, "Cannot fulfill at this time", reason)

	_, err = Validate("    ")
	assert.ErrorIs(t, err, ErrEmptyReason)

	_, err = Validate("1234")
	assert.ErrorIs(t, err, ErrReasonTooShort)

	reason, err = Validate("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", reason)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "State(9)", State(9).String())
}
