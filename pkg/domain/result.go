package domain

import "fmt"

// FailureKind classifies an execution failure.
type FailureKind string

const (
	KindAuth       FailureKind = "AuthError"
	KindConnection FailureKind = "ConnectionError"
	KindWrite      FailureKind = "WriteError"
	KindConfig     FailureKind = "ConfigError"
	KindValidation FailureKind = "ValidationError"
	KindNotFound   FailureKind = "NotFound"
	KindInternal   FailureKind = "InternalError"
)

// Failure describes why an execution did not succeed.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`

	// Node identifies the node that produced the failure, filled in by the
	// Executor so chain reports can name the failing step.
	Node string `json:"node,omitempty"`
}

func (f *Failure) Error() string {
	if f.Node != "" {
		return fmt.Sprintf("%s: %s: %s", f.Node, f.Kind, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Result is the structured outcome of a single node invocation.
// Exactly one of Payload / Failure is meaningful, discriminated by OK.
type Result struct {
	OK      bool           `json:"ok"`
	Payload map[string]any `json:"payload,omitempty"`
	Failure *Failure       `json:"failure,omitempty"`
}

// Success builds a successful Result carrying the given payload.
func Success(payload map[string]any) Result {
	return Result{OK: true, Payload: payload}
}

// Fail builds a failed Result with the given kind and message.
func Fail(kind FailureKind, format string, args ...any) Result {
	return Result{OK: false, Failure: &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}}
}

// FailErr wraps an error as a failed Result of the given kind.
func FailErr(kind FailureKind, err error) Result {
	return Result{OK: false, Failure: &Failure{Kind: kind, Message: err.Error()}}
}

// Field looks up a payload field by name.
func (r Result) Field(name string) (any, bool) {
	if !r.OK || r.Payload == nil {
		return nil, false
	}
	v, ok := r.Payload[name]
	return v, ok
}
