package result

import "net/http"

// Category classifies an error for the boundary layer.
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryNotFound     Category = "not_found"
	CategoryConflict     Category = "conflict"
	CategoryUnauthorized Category = "unauthorized"
	CategoryInternal     Category = "internal"
)

// Error is a structured business failure. Expected failures travel as values,
// never as panics or Go errors crossing the handler boundary.
type Error struct {
	Category Category `json:"category"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
}

// Status maps the category to its transport status hint.
func (e *Error) Status() int {
	switch e.Category {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) Error() string {
	return e.Message
}

// ValidationError reports a field-level rule violation.
func ValidationError(code, field, message string) *Error {
	return &Error{Category: CategoryValidation, Code: code, Field: field, Message: message}
}

// NotFoundError reports a missing aggregate.
func NotFoundError(code, message string) *Error {
	return &Error{Category: CategoryNotFound, Code: code, Message: message}
}

// ConflictError reports a business-rule violation against current state.
func ConflictError(code, message string) *Error {
	return &Error{Category: CategoryConflict, Code: code, Message: message}
}

// UnauthorizedError reports a missing or invalid caller identity.
func UnauthorizedError(code, message string) *Error {
	return &Error{Category: CategoryUnauthorized, Code: code, Message: message}
}

// InternalError reports an unexpected failure. The message handed out is
// deliberately generic; the underlying cause is for the caller to log.
func InternalError(code string) *Error {
	return &Error{Category: CategoryInternal, Code: code, Message: "an internal error occurred"}
}

// Result is the outcome of a command or query: either a value, or a non-empty
// ordered list of errors. The two states are mutually exclusive.
type Result[T any] struct {
	Value  T
	Errors []*Error
}

// Ok returns a successful result carrying a value.
func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Fail returns a failed result. Errors keep their encounter order and are
// never deduplicated.
func Fail[T any](errs ...*Error) Result[T] {
	return Result[T]{Errors: errs}
}

func (r Result[T]) IsSuccess() bool { return len(r.Errors) == 0 }
func (r Result[T]) IsFailed() bool  { return len(r.Errors) > 0 }

// FirstStatus returns the transport status of the first error, or 200.
// The boundary layer uses the first error because order is encounter order.
func (r Result[T]) FirstStatus() int {
	if r.IsSuccess() {
		return http.StatusOK
	}
	return r.Errors[0].Status()
}

// Empty is the value type for commands that succeed without a payload.
type Empty struct{}

// OkEmpty returns a successful result with no payload.
func OkEmpty() Result[Empty] {
	return Ok(Empty{})
}
