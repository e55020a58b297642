// Package domain holds the cross-cutting pieces shared by every domain
// service: the success/failure result envelope and the message catalog.
// Expected business-rule violations travel through the envelope; plain Go
// errors are reserved for infrastructure faults (store unreachable, a
// constraint race lost) and pass through services untouched.
package domain

// Kind classifies the failure branch of a Result so transport adapters
// can pick an HTTP status without parsing the message.
type Kind int

const (
	KindNone     Kind = iota // success, no failure kind
	KindInvalid              // a validation rule rejected the request
	KindNotFound             // lookup by identifier matched nothing
	KindConflict             // the request conflicts with dependent state
)

// Result is the envelope every mutating domain operation returns. A
// successful result wraps the resulting model; a failed result carries a
// kind and a human-readable message. The two branches are mutually
// exclusive: failure implies a zero model and a non-empty message,
// success implies an empty message.
type Result[T any] struct {
	ok      bool
	model   T
	kind    Kind
	message string
}

// OK builds a success envelope wrapping the given model.
func OK[T any](model T) Result[T] {
	return Result[T]{ok: true, model: model}
}

// Fail builds a failure envelope of the given kind. An empty message is
// replaced with a generic one so the envelope invariant always holds.
func Fail[T any](kind Kind, message string) Result[T] {
	if kind == KindNone {
		kind = KindInvalid
	}
	if message == "" {
		message = "operation failed"
	}
	return Result[T]{kind: kind, message: message}
}

// Invalid is shorthand for Fail with KindInvalid.
func Invalid[T any](message string) Result[T] { return Fail[T](KindInvalid, message) }

// NotFound is shorthand for Fail with KindNotFound.
func NotFound[T any](message string) Result[T] { return Fail[T](KindNotFound, message) }

// Conflict is shorthand for Fail with KindConflict.
func Conflict[T any](message string) Result[T] { return Fail[T](KindConflict, message) }

// IsSuccessful reports whether the operation succeeded.
func (r Result[T]) IsSuccessful() bool { return r.ok }

// Model returns the wrapped model. For failed results it returns the
// zero value of T.
func (r Result[T]) Model() T { return r.model }

// ErrorMessage returns the failure message, or "" for a success.
func (r Result[T]) ErrorMessage() string {
	if r.ok {
		return ""
	}
	return r.message
}

// Kind returns the failure kind, KindNone for a success.
func (r Result[T]) Kind() Kind {
	if r.ok {
		return KindNone
	}
	return r.kind
}
