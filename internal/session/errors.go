package session

import "errors"

var (
	// ErrNoPractice is returned when leaving setup without a practice.
	ErrNoPractice = errors.New("no practice selected")
	// ErrWrongState is returned when an action does not apply to the current state.
	ErrWrongState = errors.New("action not allowed in current state")
	// ErrMoodRange is returned for moods outside 1-5.
	ErrMoodRange = errors.New("mood out of range")
)
