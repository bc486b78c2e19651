package capwire

import (
	"github.com/wippyai/capwire/wire"
)

// Decode frames buf and decodes its root struct in one call. It is the
// one-shot convenience over wire.NewReader plus wire.ReadRoot; callers that
// decode several values from one message should hold a Reader instead, so
// the budgets span the whole session.
func Decode[T any](buf []byte, fn wire.StructFunc[T], opts ...wire.Option) (T, error) {
	r, err := wire.NewReader(buf, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return wire.ReadRoot(r, fn)
}

// DecodeFlat is Decode over an unframed single-segment buffer.
func DecodeFlat[T any](buf []byte, fn wire.StructFunc[T], opts ...wire.Option) (T, error) {
	return wire.ReadRoot(wire.NewFlatReader(buf, opts...), fn)
}
