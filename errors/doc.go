// Package errors provides the structured format-error type used throughout capwire.
//
// Every decode failure is reported as a single error type categorized by
// Phase (where in the decode path the error occurred) and Kind (what rule
// was violated). All kinds are fatal: the decoder never recovers or returns
// partial results below a failed pointer, because lenient handling of a
// hostile buffer would mask exploitation attempts.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseList, errors.KindSizeMismatch).
//		Detail("composite list declares %d words, elements occupy %d", want, got).
//		Build()
//
// Or the convenience constructors for common patterns:
//
//	err := errors.Truncated(errors.PhaseStruct, "data section ends at %d, segment is %d bytes", end, n)
//	err := errors.Unsupported(errors.PhasePointer, "double-far pointer")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
