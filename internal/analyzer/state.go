package analyzer

import (
	"github.com/yildizm/spamscope/internal/analysis"
)

// Phase is the variant of a view state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// String returns the lowercase phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// FailureKind tells the two user-visible error kinds apart
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureService
)

// State is the view state. Exactly one of result or message is set, and
// only in the Success and Error phases respectively.
type State struct {
	phase   Phase
	result  *analysis.Result
	message string
	failure FailureKind
}

// Idle is the state before any submission
func Idle() State {
	return State{phase: PhaseIdle}
}

// Loading is the state while a request is in flight
func Loading() State {
	return State{phase: PhaseLoading}
}

// Succeeded holds a parsed result
func Succeeded(result *analysis.Result) State {
	return State{phase: PhaseSuccess, result: result}
}

// Failed holds a user-facing error message
func Failed(kind FailureKind, message string) State {
	return State{phase: PhaseError, message: message, failure: kind}
}

// Phase returns the state variant
func (s State) Phase() Phase {
	return s.phase
}

// IsLoading reports whether a request is in flight
func (s State) IsLoading() bool {
	return s.phase == PhaseLoading
}

// Result returns the result of a successful submission
func (s State) Result() (*analysis.Result, bool) {
	return s.result, s.phase == PhaseSuccess
}

// Message returns the error banner text of a failed submission
func (s State) Message() (string, bool) {
	return s.message, s.phase == PhaseError
}

// Failure returns the kind of error, FailureNone outside the Error phase
func (s State) Failure() FailureKind {
	return s.failure
}
