package wire

import (
	"math"

	"github.com/wippyai/capwire/errors"
	"github.com/wippyai/capwire/wire/internal/bits"
)

// NullOffset is the pointer offset for an absent field slot. Every Read
// operation treats a negative offset as a null pointer, which lets
// generated accessors pass Struct.Ptr results through unconditionally.
const NullOffset = -1

// StructFunc decodes one value of a user-defined type from its resolved
// layout window. Implementations are conventionally produced by a schema
// compilation step; the core never inspects field semantics itself, it only
// supplies validated windows.
type StructFunc[T any] func(*Reader, Struct) (T, error)

// Struct is a validated layout window over one struct's storage: the data
// section (fixed-width scalar fields) immediately followed by the pointer
// section. A zero Struct is the null struct, whose every field reads as its
// default.
type Struct struct {
	data    []byte // segment bytes, nil for the null struct
	dataOff int    // absolute byte offset of the data section
	dataLen int    // data section length in bytes
	ptrOff  int    // absolute byte offset of the pointer section
	ptrs    int    // pointer section length in words
}

// DataLen returns the data section length in bytes.
func (s Struct) DataLen() int {
	return s.dataLen
}

// PtrCount returns the pointer section length in words.
func (s Struct) PtrCount() int {
	return s.ptrs
}

// Ptr returns the absolute byte offset of the i-th pointer word, or
// NullOffset when the slot is beyond the encoded pointer section (an older
// schema encoded a shorter struct).
func (s Struct) Ptr(i int) int {
	if i < 0 || i >= s.ptrs {
		return NullOffset
	}
	return s.ptrOff + i*WordSize
}

// Scalar accessors read raw little-endian bits at a byte offset in the data
// section and XOR them with the schema default. The wire stores the XOR of
// actual value and default, so an all-zero section decodes to all defaults,
// and offsets beyond the encoded data length read as the default too.

// Uint64 reads an 8-byte unsigned field.
func (s Struct) Uint64(off int, def uint64) uint64 {
	if off < 0 || off+8 > s.dataLen {
		return def
	}
	return bits.U64(s.data, s.dataOff+off) ^ def
}

// Uint32 reads a 4-byte unsigned field.
func (s Struct) Uint32(off int, def uint32) uint32 {
	if off < 0 || off+4 > s.dataLen {
		return def
	}
	return bits.U32(s.data, s.dataOff+off) ^ def
}

// Uint16 reads a 2-byte unsigned field. Enum fields use this accessor with
// the enumerant number as the value.
func (s Struct) Uint16(off int, def uint16) uint16 {
	if off < 0 || off+2 > s.dataLen {
		return def
	}
	return bits.U16(s.data, s.dataOff+off) ^ def
}

// Uint8 reads a 1-byte unsigned field.
func (s Struct) Uint8(off int, def uint8) uint8 {
	if off < 0 || off+1 > s.dataLen {
		return def
	}
	return bits.U8(s.data, s.dataOff+off) ^ def
}

// Int64 reads an 8-byte signed field.
func (s Struct) Int64(off int, def int64) int64 {
	return int64(s.Uint64(off, uint64(def)))
}

// Int32 reads a 4-byte signed field.
func (s Struct) Int32(off int, def int32) int32 {
	return int32(s.Uint32(off, uint32(def)))
}

// Int16 reads a 2-byte signed field.
func (s Struct) Int16(off int, def int16) int16 {
	return int16(s.Uint16(off, uint16(def)))
}

// Int8 reads a 1-byte signed field.
func (s Struct) Int8(off int, def int8) int8 {
	return int8(s.Uint8(off, uint8(def)))
}

// Float64 reads an 8-byte float field. The default is combined by XOR on
// the bit pattern, not by numeric arithmetic.
func (s Struct) Float64(off int, def float64) float64 {
	return math.Float64frombits(s.Uint64(off, math.Float64bits(def)))
}

// Float32 reads a 4-byte float field.
func (s Struct) Float32(off int, def float32) float32 {
	return math.Float32frombits(s.Uint32(off, math.Float32bits(def)))
}

// Bool reads a single bit at the given byte offset and bit position.
func (s Struct) Bool(off int, bit uint, def bool) bool {
	if off < 0 || off >= s.dataLen {
		return def
	}
	return bits.Bit(s.data, s.dataOff+off, bit) != def
}

// structLayout validates a classified struct pointer against the current
// segment and returns its layout window. wordOff is the absolute byte
// offset of the pointer word itself.
func (r *Reader) structLayout(p pointer, wordOff int) (Struct, error) {
	if int64(p.dataWords) > MaxMessageBytes/WordSize {
		return Struct{}, errors.Oversize(errors.PhaseStruct, "data section words", int64(p.dataWords), MaxMessageBytes/WordSize)
	}
	if int64(p.ptrCount) > MaxMessageBytes {
		return Struct{}, errors.Oversize(errors.PhaseStruct, "pointer count", int64(p.ptrCount), MaxMessageBytes)
	}
	seg := r.cur()
	dataOff := body(p, wordOff)
	dataLen := int64(p.dataWords) * WordSize
	ptrLen := int64(p.ptrCount) * WordSize
	if dataOff < 0 || dataOff+dataLen+ptrLen > int64(seg.Len()) {
		return Struct{}, errors.Truncated(errors.PhaseStruct,
			"struct spans [%d, %d), segment %d is %d bytes", dataOff, dataOff+dataLen+ptrLen, r.seg, seg.Len())
	}
	return Struct{
		data:    seg.data,
		dataOff: int(dataOff),
		dataLen: int(dataLen),
		ptrOff:  int(dataOff + dataLen),
		ptrs:    int(p.ptrCount),
	}, nil
}

// ReadStruct decodes the struct referenced by the pointer word at byte
// offset off in the Reader's current segment, invoking fn with the resolved
// layout window. A null pointer (or negative off) yields fn applied to the
// null window, so every field decodes to its default without consuming
// budget.
func ReadStruct[T any](r *Reader, off int, fn StructFunc[T]) (T, error) {
	var zero T
	p, wordOff, null, restore, err := r.resolve(off)
	if err != nil {
		return zero, err
	}
	if null {
		return fn(r, Struct{})
	}
	defer restore()
	if p.kind != kindStruct {
		return zero, errors.TagMismatch(errors.PhaseStruct, "struct pointer", p.kind.String()+" pointer")
	}
	layout, err := r.structLayout(p, wordOff)
	if err != nil {
		return zero, err
	}
	release, err := r.enter(errors.PhaseStruct, int64(p.ptrCount)*WordSize+int64(p.ptrCount))
	if err != nil {
		return zero, err
	}
	defer release()
	return fn(r, layout)
}

// ReadRoot decodes the message's root struct, whose pointer occupies the
// first word of segment 0.
func ReadRoot[T any](r *Reader, fn StructFunc[T]) (T, error) {
	return ReadStruct(r, 0, fn)
}
