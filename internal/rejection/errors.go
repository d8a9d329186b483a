package rejection

import "errors"

// User-facing validation notices.
const (
	MsgEmptyReason    = "Please provide a reason for rejection"
	MsgReasonTooShort = "Reason must be at least 5 characters long"
)

var (
	ErrEmptyReason    = errors.New("rejection reason is empty")
	ErrReasonTooShort = errors.New("rejection reason is too short")

	// ErrSubmitInFlight is returned when a submit is attempted while a
	// previous confirmation has not completed yet.
	ErrSubmitInFlight = errors.New("rejection already being submitted")
)

// ValidationError represents a draft that failed local validation.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
