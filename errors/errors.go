package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the decode path the error occurred
type Phase string

const (
	PhaseFrame   Phase = "frame"   // segment table parsing
	PhasePointer Phase = "pointer" // pointer word classification
	PhaseStruct  Phase = "struct"  // struct layout decoding
	PhaseList    Phase = "list"    // list layout decoding
	PhaseText    Phase = "text"    // text post-processing
)

// Kind categorizes the violated format rule
type Kind string

const (
	KindTruncated     Kind = "truncated"      // declared size exceeds actual buffer
	KindOversize      Kind = "oversize"       // declared size exceeds the global ceiling
	KindTagMismatch   Kind = "tag_mismatch"   // pointer or element-size tag unexpected
	KindUnsupported   Kind = "unsupported"    // encoding feature not implemented
	KindBudget        Kind = "budget"         // read or depth budget exhausted
	KindMalformedText Kind = "malformed_text" // missing or misplaced NUL terminator
	KindSizeMismatch  Kind = "size_mismatch"  // composite list arithmetic inconsistency
)

// Error is the structured error type used throughout the decoder
type Error struct {
	Phase  Phase
	Kind   Kind
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Truncated creates a truncation error: a declared size walked past the
// actual end of the buffer or segment.
func Truncated(phase Phase, msg string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf(msg, args...),
	}
}

// Oversize creates an error for a declared count or byte length exceeding
// the fixed global ceiling, regardless of actual buffer length.
func Oversize(phase Phase, what string, declared, limit int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOversize,
		Detail: fmt.Sprintf("%s %d exceeds limit %d", what, declared, limit),
	}
}

// TagMismatch creates an error for a pointer or element-size tag that does
// not match what the calling context expected.
func TagMismatch(phase Phase, expected, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTagMismatch,
		Detail: fmt.Sprintf("expected %s, got %s", expected, got),
	}
}

// Unsupported creates an unsupported encoding error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// DepthExhausted creates a recursion budget error
func DepthExhausted(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBudget,
		Detail: "recursion depth limit reached",
	}
}

// ReadExhausted creates a cumulative read budget error
func ReadExhausted(phase Phase, wanted int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBudget,
		Detail: fmt.Sprintf("read limit reached (%d more bytes claimed)", wanted),
	}
}

// MalformedText creates an error for a byte list that is not a valid text value
func MalformedText(msg string, args ...any) *Error {
	return &Error{
		Phase:  PhaseText,
		Kind:   KindMalformedText,
		Detail: fmt.Sprintf(msg, args...),
	}
}

// SizeMismatch creates a composite-list arithmetic error
func SizeMismatch(msg string, args ...any) *Error {
	return &Error{
		Phase:  PhaseList,
		Kind:   KindSizeMismatch,
		Detail: fmt.Sprintf(msg, args...),
	}
}
